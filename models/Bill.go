package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	BillStatusUnpaid  = "unpaid"
	BillStatusPaid    = "paid"
	BillStatusOverdue = "overdue"
)

// Bill is the ledger entry behind a booking. It is created unpaid when the
// booking is placed and settled exactly once; penalty and discount are
// derived from payment timing against the due date and never fold into
// Amount.
type Bill struct {
	gorm.Model
	TenantID         uint            `json:"tenantID" gorm:"not null;index"`
	PropertyID       uint            `json:"propertyID" gorm:"not null;index"`
	BookingReference string          `json:"bookingReference" gorm:"size:8;index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status           string          `json:"status" gorm:"type:varchar(20);default:'unpaid';index"` // unpaid, paid, overdue
	Months           int             `json:"months" gorm:"default:1"`
	DueDate          time.Time       `json:"dueDate" gorm:"type:date"`
	Penalty          decimal.Decimal `json:"penalty" gorm:"type:numeric(12,2);default:0"`
	Discount         decimal.Decimal `json:"discount" gorm:"type:numeric(12,2);default:0"`
	AdminCommission  decimal.Decimal `json:"adminCommission" gorm:"type:numeric(12,2);default:0"`
	PaymentDate      *time.Time      `json:"paymentDate" gorm:"type:date"`
	PaymentMethod    string          `json:"paymentMethod" gorm:"size:50"`
	ReceiptNumber    string          `json:"receiptNumber" gorm:"size:36"` // set at payment

	Tenant   *User     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
