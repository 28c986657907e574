package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Lebronlang/Boardify/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every transaction on the same in-memory
	// database and serializes concurrent writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Booking{},
		&models.Bill{},
		&models.Review{},
		&models.Notification{},
		&models.AuditLog{},
		&models.HelpTicket{},
	))
	return db
}

var userSeq uint32

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	n := atomic.AddUint32(&userSeq, 1)
	user := models.User{
		Name:  fmt.Sprintf("%s %d", role, n),
		Email: fmt.Sprintf("%s%d@example.com", role, n),
		Role:  role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProperty(t *testing.T, db *gorm.DB, landlordID uint, monthlyPrice int64, slots int) *models.Property {
	t.Helper()
	property := models.Property{
		LandlordID:   landlordID,
		Title:        "Sunrise Boarding House",
		MonthlyPrice: decimal.NewFromInt(monthlyPrice),
		Location:     "Davao City",
		PropertyType: "boarding_house",
		Status:       models.PropertyStatusAvailable,
		Slots:        slots,
	}
	require.NoError(t, db.Create(&property).Error)
	return &property
}

// recordingNotifier captures events in delivery order.
type recordingNotifier struct {
	events []models.Notification
}

func (r *recordingNotifier) Notify(n models.Notification) {
	r.events = append(r.events, n)
}

func fixedClock(date string) func() time.Time {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return d }
}

func newTestRegistry(t *testing.T) (*gorm.DB, *Registry, *recordingNotifier) {
	t.Helper()
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	return db, NewRegistry(db, notifier), notifier
}
