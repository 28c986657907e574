package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PropertyStatusAvailable = "available"
	PropertyStatusBooked    = "booked"
)

// DefaultSlots is the capacity assigned to a listing when the landlord does
// not declare one.
const DefaultSlots = 10

type Property struct {
	gorm.Model
	LandlordID   uint            `json:"landlordID" gorm:"not null;index"`
	Title        string          `json:"title" gorm:"size:100;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	MonthlyPrice decimal.Decimal `json:"monthlyPrice" gorm:"type:numeric(12,2);not null"`
	Location     string          `json:"location" gorm:"size:150"`
	PropertyType string          `json:"propertyType" gorm:"size:50"` // boarding_house, apartment, dorm
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	Amenities    datatypes.JSON  `json:"amenities"`
	Status       string          `json:"status" gorm:"type:varchar(20);default:'available';index"` // available, booked
	Slots        int             `json:"slots" gorm:"default:10"`                                  // total bookable capacity, >= 1

	Landlord *User `json:"landlord,omitempty" gorm:"foreignKey:LandlordID"`
}

// DailyRate is the monthly price spread over a 30 day month.
func (p *Property) DailyRate() decimal.Decimal {
	return p.MonthlyPrice.Div(decimal.NewFromInt(30))
}

// TotalSlots falls back to the default capacity for rows migrated without one.
func (p *Property) TotalSlots() int {
	if p.Slots < 1 {
		return DefaultSlots
	}
	return p.Slots
}

// Custom JSON marshaling to convert the Amenities column to an array and keep
// the landlord out of the payload unless it was preloaded.
func (p *Property) MarshalJSON() ([]byte, error) {
	type Alias Property
	aux := &struct {
		Amenities []string `json:"amenities"`
		Landlord  *User    `json:"landlord,omitempty"`
		*Alias
	}{
		Amenities: []string{},
		Alias:     (*Alias)(p),
	}

	if p.Amenities != nil {
		var amenities []string
		if err := json.Unmarshal(p.Amenities, &amenities); err == nil {
			aux.Amenities = amenities
		}
	}

	if p.Landlord != nil && p.Landlord.ID > 0 {
		aux.Landlord = p.Landlord
	}

	return json.Marshal(aux)
}
