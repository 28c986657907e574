package routes

import (
	"encoding/json"

	"github.com/Lebronlang/Boardify/models"
	"github.com/Lebronlang/Boardify/services"
	"github.com/Lebronlang/Boardify/storage"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyInput struct {
	Title        string   `json:"title" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required"`
	MonthlyPrice float64  `json:"monthlyPrice" validate:"required,gt=0"`
	Location     string   `json:"location" validate:"max=150"`
	PropertyType string   `json:"propertyType" validate:"max=50"`
	Bedrooms     int      `json:"bedrooms" validate:"min=0"`
	Bathrooms    int      `json:"bathrooms" validate:"min=0"`
	Slots        int      `json:"slots" validate:"min=0,max=100"`
	Amenities    []string `json:"amenities"`
}

// requireVerifiedLandlord loads the requester and rejects listing management
// until an admin has vetted the account.
func requireVerifiedLandlord(userID uint, ctx iris.Context) bool {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return false
	}
	if !user.IsVerifiedLandlord() {
		utils.CreateError(iris.StatusForbidden, "Forbidden",
			"Landlord account is pending verification", ctx)
		return false
	}
	return true
}

func CreateProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	if !requireVerifiedLandlord(userID, ctx) {
		return
	}

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	slots := input.Slots
	if slots < 1 {
		slots = models.DefaultSlots
	}

	amenities, _ := json.Marshal(input.Amenities)

	property := models.Property{
		LandlordID:   userID,
		Title:        input.Title,
		Description:  input.Description,
		MonthlyPrice: decimal.NewFromFloat(input.MonthlyPrice),
		Location:     input.Location,
		PropertyType: input.PropertyType,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Amenities:    datatypes.JSON(amenities),
		Status:       models.PropertyStatusAvailable,
		Slots:        slots,
	}

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(property)
}

// GetProperties lists every property with its current slot availability, the
// way the browse page shows them.
func GetProperties(ctx iris.Context) {
	var properties []models.Property
	if err := storage.DB.Order("created_at DESC").Find(&properties).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	data := make([]iris.Map, 0, len(properties))
	for i := range properties {
		slotsLeft, totalSlots, err := svc.Slots.Availability(properties[i].ID)
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		data = append(data, iris.Map{
			"property":   &properties[i],
			"slotsLeft":  slotsLeft,
			"totalSlots": totalSlots,
		})
	}

	ctx.JSON(iris.Map{"success": true, "data": data})
}

// GetProperty returns the detail view: the listing, its slot availability and
// the read-time review aggregate.
func GetProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Landlord").First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	slotsLeft, totalSlots, err := svc.Slots.Availability(property.ID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	reviews, summary, err := svc.Reviews.ListForProperty(property.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"data": iris.Map{
			"property":      &property,
			"slotsLeft":     slotsLeft,
			"totalSlots":    totalSlots,
			"reviews":       reviews,
			"averageRating": summary.AverageRating,
			"reviewCount":   summary.ReviewCount,
		},
	})
}

// CheckAvailability answers how many slots remain, for a date range when one
// is supplied and overall otherwise.
func CheckAvailability(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	startDateStr := ctx.URLParam("startDate")
	endDateStr := ctx.URLParam("endDate")

	var slotsLeft, totalSlots int
	if startDateStr != "" || endDateStr != "" {
		start, parseErr := services.ParseDate(startDateStr)
		if parseErr != nil {
			handleServiceError(parseErr, ctx)
			return
		}
		end, parseErr := services.ParseDate(endDateStr)
		if parseErr != nil {
			handleServiceError(parseErr, ctx)
			return
		}
		if !end.After(start) {
			handleServiceError(services.ErrInvalidDateRange, ctx)
			return
		}
		slotsLeft, totalSlots, err = svc.Slots.AvailabilityForRange(id, start, end)
	} else {
		slotsLeft, totalSlots, err = svc.Slots.Availability(id)
	}
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"slotsLeft": slotsLeft, "totalSlots": totalSlots})
}

func UpdateProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	if !requireVerifiedLandlord(userID, ctx) {
		return
	}
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Where("id = ? AND landlord_id = ?", id, userID).First(&property).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Property not found or access denied", ctx)
		return
	}

	var input PropertyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	amenities, _ := json.Marshal(input.Amenities)

	property.Title = input.Title
	property.Description = input.Description
	property.MonthlyPrice = decimal.NewFromFloat(input.MonthlyPrice)
	property.Location = input.Location
	property.PropertyType = input.PropertyType
	property.Bedrooms = input.Bedrooms
	property.Bathrooms = input.Bathrooms
	property.Amenities = datatypes.JSON(amenities)
	if input.Slots >= 1 {
		property.Slots = input.Slots
	}

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(property)
}

// DeleteProperty removes a listing together with its bookings, bills and
// reviews in one transaction.
func DeleteProperty(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var property models.Property
	if err := storage.DB.Where("id = ? AND landlord_id = ?", id, userID).First(&property).Error; err != nil {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "Property not found or access denied", ctx)
		return
	}

	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("property_id = ?", property.ID).Delete(&models.Bill{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("property_id = ?", property.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("property_id = ?", property.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&property).Error
	})
	if txErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Property deleted"})
}
