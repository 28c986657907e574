package models

import "gorm.io/gorm"

const (
	NotificationBookingRequest = "booking_request"
	NotificationBookingStatus  = "booking_status"
	NotificationBillPaid       = "bill_paid"
	NotificationBillOverdue    = "bill_overdue"
)

type Notification struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"not null;index"`
	Title   string `json:"title" gorm:"size:150"`
	Message string `json:"message" gorm:"type:text"`
	Type    string `json:"type" gorm:"size:50;index"`
	RefID   uint   `json:"refID"`
	RefType string `json:"refType" gorm:"size:50"` // booking, bill
	IsRead  bool   `json:"isRead" gorm:"default:false;index"`
}
