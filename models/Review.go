package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	PropertyID uint   `json:"propertyID" gorm:"not null;index;uniqueIndex:idx_reviews_property_tenant"`
	TenantID   uint   `json:"tenantID" gorm:"not null;index;uniqueIndex:idx_reviews_property_tenant"`
	Rating     int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string `json:"comment" gorm:"type:text"`

	Tenant   *User     `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
}
