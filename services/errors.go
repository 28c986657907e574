package services

import "errors"

// Sentinel errors returned by the booking, billing and review services. All
// of them are recoverable at the request boundary; the routes layer maps them
// to HTTP status codes.
var (
	ErrInvalidDateFormat    = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrCapacityExceeded     = errors.New("no slots left for the selected dates")
	ErrInvalidTransition    = errors.New("booking status does not allow this action")
	ErrUnauthorized         = errors.New("not allowed to act on this record")
	ErrPaidAlready          = errors.New("bill has already been paid")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrNotEligible          = errors.New("an approved booking is required to review this property")
	ErrDuplicateReview      = errors.New("property already reviewed by this tenant")
	ErrNotFound             = errors.New("record not found")
)
