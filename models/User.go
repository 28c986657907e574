package models

import "gorm.io/gorm"

const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Name                string `json:"name"`
	Email               string `json:"email" gorm:"uniqueIndex;size:150;not null"`
	Password            string `json:"-"`
	Role                string `json:"role" gorm:"type:varchar(20);default:'tenant';index"` // tenant, landlord, admin
	IsVerified          *bool  `json:"isVerified" gorm:"default:false"`
	IsApprovedByAdmin   bool   `json:"isApprovedByAdmin" gorm:"default:false"` // landlord licence vetting
	AllowsNotifications *bool  `json:"allowsNotifications" gorm:"default:true"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

func (u *User) IsLandlord() bool { return u.Role == RoleLandlord }

func (u *User) IsTenant() bool { return u.Role == RoleTenant }

// IsVerifiedLandlord requires both email verification and admin approval
// before a landlord may manage bookings.
func (u *User) IsVerifiedLandlord() bool {
	return u.Role == RoleLandlord && u.IsVerified != nil && *u.IsVerified && u.IsApprovedByAdmin
}
