package models

import "gorm.io/gorm"

const (
	TicketStatusPending  = "pending"
	TicketStatusResolved = "resolved"
)

type HelpTicket struct {
	gorm.Model
	UserID  uint   `json:"userID" gorm:"not null;index"`
	Subject string `json:"subject" gorm:"size:255;not null"`
	Message string `json:"message" gorm:"type:text;not null"`
	Status  string `json:"status" gorm:"type:varchar(20);default:'pending';index"` // pending, resolved

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
