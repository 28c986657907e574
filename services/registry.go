package services

import "gorm.io/gorm"

// Registry bundles the constructed services for the routes layer. Everything
// the core needs is passed in here; the services hold no ambient state.
type Registry struct {
	Slots    *SlotService
	Bookings *BookingService
	Billing  *BillingService
	Reviews  *ReviewService
	Notifier Notifier
}

func NewRegistry(db *gorm.DB, notifier Notifier) *Registry {
	slots := NewSlotService(db)
	return &Registry{
		Slots:    slots,
		Bookings: NewBookingService(db, slots, notifier),
		Billing:  NewBillingService(db, notifier),
		Reviews:  NewReviewService(db),
		Notifier: notifier,
	}
}
