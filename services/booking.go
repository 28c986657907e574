package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Lebronlang/Boardify/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BookingService drives the booking state machine:
//
//	pending -> approved | rejected | cancelled
//
// Approved, rejected and cancelled are terminal; cancellation deletes the
// booking together with its bills.
type BookingService struct {
	db       *gorm.DB
	slots    *SlotService
	notifier Notifier
	clock    func() time.Time
}

func NewBookingService(db *gorm.DB, slots *SlotService, notifier Notifier) *BookingService {
	return &BookingService{
		db:       db,
		slots:    slots,
		notifier: notifier,
		clock:    time.Now,
	}
}

// Create admits a booking request and opens its unpaid bill in one
// transaction. The property row is locked for the duration of the capacity
// check so two concurrent requests for the last slot cannot both pass.
func (s *BookingService) Create(tenantID, propertyID uint, startDate, endDate string) (*models.Booking, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}

	var booking models.Booking
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := lockForUpdate(tx).First(&property, propertyID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		slotsLeft, _, err := s.slots.rangeAvailability(tx, &property, start, end)
		if err != nil {
			return err
		}
		if slotsLeft <= 0 {
			return ErrCapacityExceeded
		}

		code, err := generateReferenceCode(tx)
		if err != nil {
			return err
		}

		totalDays := daysBetween(start, end)
		totalBill := property.DailyRate().Mul(decimal.NewFromInt(int64(totalDays)))

		booking = models.Booking{
			TenantID:      tenantID,
			PropertyID:    propertyID,
			ReferenceCode: code,
			StartDate:     start,
			EndDate:       end,
			Status:        models.BookingStatusPending,
			TotalBill:     totalBill,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}

		bill := models.Bill{
			TenantID:         tenantID,
			PropertyID:       propertyID,
			BookingReference: code,
			Amount:           totalBill,
			Status:           models.BillStatusUnpaid,
			Months:           1,
			DueDate:          end,
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}

		booking.Property = &property
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.Notify(models.Notification{
		UserID:  booking.Property.LandlordID,
		Title:   "New Booking Request",
		Message: fmt.Sprintf("Booking %s requested for %s from %s to %s", booking.ReferenceCode, booking.Property.Title, start.Format(dateLayout), end.Format(dateLayout)),
		Type:    models.NotificationBookingRequest,
		RefID:   booking.ID,
		RefType: "booking",
	})

	return &booking, nil
}

// Approve moves a pending booking to approved. Only the landlord owning the
// property may act; the property flips to booked for display purposes and a
// bill is backfilled if none exists for the reference.
func (s *BookingService) Approve(bookingID, landlordID uint) (*models.Booking, error) {
	return s.decide(bookingID, landlordID, models.BookingStatusApproved)
}

// Reject moves a pending booking to rejected.
func (s *BookingService) Reject(bookingID, landlordID uint) (*models.Booking, error) {
	return s.decide(bookingID, landlordID, models.BookingStatusRejected)
}

func (s *BookingService) decide(bookingID, landlordID uint, next string) (*models.Booking, error) {
	var booking models.Booking
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&booking, bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if booking.Property == nil || booking.Property.LandlordID != landlordID {
			return ErrUnauthorized
		}
		if booking.Status != models.BookingStatusPending {
			return ErrInvalidTransition
		}

		previous := booking.Status
		booking.Status = next
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("status", next).Error; err != nil {
			return err
		}

		if next == models.BookingStatusApproved {
			if err := tx.Model(&models.Property{}).Where("id = ?", booking.PropertyID).
				Update("status", models.PropertyStatusBooked).Error; err != nil {
				return err
			}
			if err := s.backfillBill(tx, &booking); err != nil {
				return err
			}
		}

		return recordAudit(tx, landlordID, "booking_"+next, "booking", booking.ID,
			map[string]string{"status": previous}, map[string]string{"status": next})
	})
	if txErr != nil {
		return nil, txErr
	}

	title := "Booking Approved"
	if next == models.BookingStatusRejected {
		title = "Booking Rejected"
	}
	s.notifier.Notify(models.Notification{
		UserID:  booking.TenantID,
		Title:   title,
		Message: fmt.Sprintf("Your booking %s for %s has been %s", booking.ReferenceCode, booking.Property.Title, next),
		Type:    models.NotificationBookingStatus,
		RefID:   booking.ID,
		RefType: "booking",
	})

	return &booking, nil
}

// backfillBill covers the deferred-billing flow: approving a booking that was
// created before bills were opened at request time.
func (s *BookingService) backfillBill(tx *gorm.DB, booking *models.Booking) error {
	var count int64
	if err := tx.Model(&models.Bill{}).
		Where("booking_reference = ?", booking.ReferenceCode).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	amount := booking.TotalBill
	if amount.IsZero() && booking.Property != nil {
		amount = booking.Property.MonthlyPrice
	}
	bill := models.Bill{
		TenantID:         booking.TenantID,
		PropertyID:       booking.PropertyID,
		BookingReference: booking.ReferenceCode,
		Amount:           amount,
		Status:           models.BillStatusUnpaid,
		Months:           1,
		DueDate:          booking.EndDate,
	}
	return tx.Create(&bill).Error
}

// Cancel deletes a pending booking and its bills. Only the requesting tenant
// may cancel, and only while the landlord has not acted yet.
func (s *BookingService) Cancel(bookingID, tenantID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if booking.TenantID != tenantID {
			return ErrUnauthorized
		}
		if booking.Status != models.BookingStatusPending {
			return ErrInvalidTransition
		}

		if err := tx.Unscoped().
			Where("booking_reference = ?", booking.ReferenceCode).
			Delete(&models.Bill{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&booking).Error
	})
}

// ByReference looks a booking up by its tenant-facing code. Tenants may only
// see their own bookings; landlords and admins may see any.
func (s *BookingService) ByReference(code string, requesterID uint, role string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Property").Preload("Tenant").
		Where("reference_code = ?", code).
		First(&booking).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role == models.RoleTenant && booking.TenantID != requesterID {
		return nil, ErrUnauthorized
	}
	return &booking, nil
}

// ForTenant lists a tenant's bookings, newest first.
func (s *BookingService) ForTenant(tenantID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// ForLandlord lists bookings with the given status across all of a landlord's
// properties.
func (s *BookingService) ForLandlord(landlordID uint, status string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.
		Joins("JOIN properties p ON p.id = bookings.property_id").
		Where("p.landlord_id = ? AND bookings.status = ?", landlordID, status).
		Preload("Property").
		Preload("Tenant").
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func recordAudit(tx *gorm.DB, actorID uint, action, resourceType string, resourceID uint, before, after interface{}) error {
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}
	entry := models.AuditLog{
		ActorUserID:  actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   beforeStr,
		AfterJSON:    afterStr,
	}
	return tx.Create(&entry).Error
}
