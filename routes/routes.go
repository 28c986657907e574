package routes

import (
	"errors"

	"github.com/Lebronlang/Boardify/services"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
)

// svc is the service registry the handlers call into, wired once from main.
var svc *services.Registry

func UseServices(r *services.Registry) { svc = r }

// handleServiceError maps the service error taxonomy to HTTP status codes.
// Everything here is recoverable at the request boundary.
func handleServiceError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.CreateNotFound(ctx)
	case errors.Is(err, services.ErrInvalidDateFormat),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrMissingPaymentMethod):
		utils.CreateError(iris.StatusBadRequest, "Validation Error", err.Error(), ctx)
	case errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrPaidAlready),
		errors.Is(err, services.ErrInvalidTransition):
		utils.CreateError(iris.StatusConflict, "Conflict", err.Error(), ctx)
	case errors.Is(err, services.ErrUnauthorized),
		errors.Is(err, services.ErrNotEligible):
		utils.CreateError(iris.StatusForbidden, "Forbidden", err.Error(), ctx)
	default:
		utils.CreateInternalServerError(ctx)
	}
}
