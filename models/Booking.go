package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusApproved  = "approved"
	BookingStatusRejected  = "rejected"
	BookingStatusCancelled = "cancelled"
)

// Booking is a tenant's request to occupy one slot of a property over a date
// range. ReferenceCode is the tenant-facing identifier, independent of the
// row id; bills link back through it.
type Booking struct {
	gorm.Model
	TenantID      uint            `json:"tenantID" gorm:"not null;index"`
	PropertyID    uint            `json:"propertyID" gorm:"not null;index"`
	ReferenceCode string          `json:"referenceCode" gorm:"uniqueIndex;size:8;not null"`
	StartDate     time.Time       `json:"startDate" gorm:"type:date;not null"`
	EndDate       time.Time       `json:"endDate" gorm:"type:date;not null"`
	Status        string          `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, approved, rejected, cancelled
	TotalBill     decimal.Decimal `json:"totalBill" gorm:"type:numeric(12,2)"`

	Tenant   *User     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}

// IsActive reports whether the booking still holds a slot against capacity.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusApproved
}
