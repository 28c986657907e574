package services

import (
	"regexp"
	"sync"
	"testing"

	"github.com/Lebronlang/Boardify/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBookingComputesTotalAndOpensBill(t *testing.T) {
	db, reg, notifier := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-01-11")
	require.NoError(t, err)

	// 3000/month over 30 days is 100/day; ten nights.
	assert.True(t, booking.TotalBill.Equal(decimal.NewFromInt(1000)),
		"expected 1000, got %s", booking.TotalBill)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z0-9]{8}$`), booking.ReferenceCode)

	var bill models.Bill
	require.NoError(t, db.Where("booking_reference = ?", booking.ReferenceCode).First(&bill).Error)
	assert.Equal(t, models.BillStatusUnpaid, bill.Status)
	assert.True(t, bill.Amount.Equal(booking.TotalBill))
	assert.Equal(t, booking.EndDate.Format("2006-01-02"), bill.DueDate.Format("2006-01-02"))

	require.Len(t, notifier.events, 1)
	assert.Equal(t, landlord.ID, notifier.events[0].UserID)
	assert.Equal(t, models.NotificationBookingRequest, notifier.events[0].Type)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	_, err := reg.Bookings.Create(tenant.ID, property.ID, "01/01/2025", "2025-01-11")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = reg.Bookings.Create(tenant.ID, property.ID, "2025-01-11", "2025-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-01-01")
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCreateBookingEnforcesCapacityPerRange(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	first := seedUser(t, db, models.RoleTenant)
	second := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 1)

	_, err := reg.Bookings.Create(first.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	// Pending bookings hold the slot.
	_, err = reg.Bookings.Create(second.ID, property.ID, "2025-01-15", "2025-02-15")
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// A disjoint range does not.
	_, err = reg.Bookings.Create(second.ID, property.ID, "2025-02-01", "2025-03-01")
	require.NoError(t, err)
}

func TestConcurrentCreatesForLastSlot(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	first := seedUser(t, db, models.RoleTenant)
	second := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 1)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i, tenantID := range []uint{first.ID, second.ID} {
		go func(i int, tenantID uint) {
			defer wg.Done()
			_, errs[i] = reg.Bookings.Create(tenantID, property.ID, "2025-01-01", "2025-02-01")
		}(i, tenantID)
	}
	wg.Wait()

	var granted, rejected int
	for _, err := range errs {
		switch err {
		case nil:
			granted++
		case ErrCapacityExceeded:
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, granted)
	assert.Equal(t, 1, rejected)
}

func TestApproveBooking(t *testing.T) {
	db, reg, notifier := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	other := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	notifier.events = nil

	_, err = reg.Bookings.Approve(booking.ID, other.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	approved, err := reg.Bookings.Approve(booking.ID, landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, approved.Status)

	var reloaded models.Property
	require.NoError(t, db.First(&reloaded, property.ID).Error)
	assert.Equal(t, models.PropertyStatusBooked, reloaded.Status)

	// Terminal states cannot be re-decided.
	_, err = reg.Bookings.Approve(booking.ID, landlord.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = reg.Bookings.Reject(booking.ID, landlord.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, tenant.ID, notifier.events[0].UserID)
	assert.Equal(t, models.NotificationBookingStatus, notifier.events[0].Type)

	var audit models.AuditLog
	require.NoError(t, db.Where("action = ?", "booking_approved").First(&audit).Error)
	assert.Equal(t, landlord.ID, audit.ActorUserID)
	assert.Equal(t, booking.ID, audit.ResourceID)
}

func TestRejectBookingFreesSlot(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	first := seedUser(t, db, models.RoleTenant)
	second := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 1)

	booking, err := reg.Bookings.Create(first.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	rejected, err := reg.Bookings.Reject(booking.ID, landlord.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, rejected.Status)

	_, err = reg.Bookings.Create(second.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)
}

func TestCancelBooking(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	stranger := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Bookings.Cancel(booking.ID, stranger.ID), ErrUnauthorized)

	require.NoError(t, reg.Bookings.Cancel(booking.ID, tenant.ID))

	var bookings, bills int64
	require.NoError(t, db.Model(&models.Booking{}).Count(&bookings).Error)
	require.NoError(t, db.Model(&models.Bill{}).Count(&bills).Error)
	assert.Zero(t, bookings)
	assert.Zero(t, bills)

	assert.ErrorIs(t, reg.Bookings.Cancel(booking.ID, tenant.ID), ErrNotFound)
}

func TestCancelApprovedBookingFails(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)
	_, err = reg.Bookings.Approve(booking.ID, landlord.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, reg.Bookings.Cancel(booking.ID, tenant.ID), ErrInvalidTransition)
}

func TestBookingLookups(t *testing.T) {
	db, reg, _ := newTestRegistry(t)
	landlord := seedUser(t, db, models.RoleLandlord)
	tenant := seedUser(t, db, models.RoleTenant)
	stranger := seedUser(t, db, models.RoleTenant)
	property := seedProperty(t, db, landlord.ID, 3000, 5)

	booking, err := reg.Bookings.Create(tenant.ID, property.ID, "2025-01-01", "2025-02-01")
	require.NoError(t, err)

	found, err := reg.Bookings.ByReference(booking.ReferenceCode, tenant.ID, models.RoleTenant)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, found.ID)

	_, err = reg.Bookings.ByReference(booking.ReferenceCode, stranger.ID, models.RoleTenant)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = reg.Bookings.ByReference(booking.ReferenceCode, landlord.ID, models.RoleLandlord)
	require.NoError(t, err)

	_, err = reg.Bookings.ByReference("NOPE0000", tenant.ID, models.RoleTenant)
	assert.ErrorIs(t, err, ErrNotFound)

	mine, err := reg.Bookings.ForTenant(tenant.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	pending, err := reg.Bookings.ForLandlord(landlord.ID, models.BookingStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, booking.ReferenceCode, pending[0].ReferenceCode)

	approved, err := reg.Bookings.ForLandlord(landlord.ID, models.BookingStatusApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)
}
