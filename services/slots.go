package services

import (
	"time"

	"github.com/Lebronlang/Boardify/models"

	"gorm.io/gorm"
)

// SlotService answers how many more bookings a property can accept. All
// methods are pure reads; callers reject the booking attempt when zero slots
// remain.
type SlotService struct {
	db *gorm.DB
}

func NewSlotService(db *gorm.DB) *SlotService {
	return &SlotService{db: db}
}

// Availability reports overall capacity: declared slots minus approved
// bookings, never negative.
func (s *SlotService) Availability(propertyID uint) (slotsLeft, totalSlots int, err error) {
	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}

	var approved int64
	if err := s.db.Model(&models.Booking{}).
		Where("property_id = ? AND status = ?", propertyID, models.BookingStatusApproved).
		Count(&approved).Error; err != nil {
		return 0, 0, err
	}

	totalSlots = property.TotalSlots()
	slotsLeft = totalSlots - int(approved)
	if slotsLeft < 0 {
		slotsLeft = 0
	}
	return slotsLeft, totalSlots, nil
}

// AvailabilityForRange reports how many slots remain for the requested
// [start, end) range. Pending bookings hold a slot until the landlord acts on
// them, so both pending and approved count against capacity here.
func (s *SlotService) AvailabilityForRange(propertyID uint, start, end time.Time) (slotsLeft, totalSlots int, err error) {
	var property models.Property
	if err := s.db.First(&property, propertyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return s.rangeAvailability(s.db, &property, start, end)
}

// rangeAvailability runs the overlap count on the given handle so the booking
// service can reuse it inside a transaction that already holds the property
// row lock.
func (s *SlotService) rangeAvailability(tx *gorm.DB, property *models.Property, start, end time.Time) (slotsLeft, totalSlots int, err error) {
	var active int64
	if err := tx.Model(&models.Booking{}).
		Where("property_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
			property.ID,
			[]string{models.BookingStatusPending, models.BookingStatusApproved},
			end, start).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}

	totalSlots = property.TotalSlots()
	slotsLeft = totalSlots - int(active)
	if slotsLeft < 0 {
		slotsLeft = 0
	}
	return slotsLeft, totalSlots, nil
}
