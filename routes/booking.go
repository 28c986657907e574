package routes

import (
	"strings"

	"github.com/Lebronlang/Boardify/models"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
)

type CreateBookingInput struct {
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// CreateBooking places a pending booking for the authenticated tenant and
// returns the reference code to share.
func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	booking, err := svc.Bookings.Create(userID, propertyID, input.StartDate, input.EndDate)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success":       true,
		"referenceCode": booking.ReferenceCode,
		"totalBill":     booking.TotalBill,
		"status":        booking.Status,
	})
}

// GetBookingByReference resolves a reference code (case-insensitive input)
// for the tenant that owns it, or any landlord/admin.
func GetBookingByReference(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().Get("role").(string)
	code := strings.ToUpper(strings.TrimSpace(ctx.Params().Get("code")))

	booking, err := svc.Bookings.ByReference(code, userID, role)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": booking})
}

// GetMyBookings lists the authenticated tenant's bookings, newest first.
func GetMyBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	bookings, err := svc.Bookings.ForTenant(userID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

// GetPendingBookings lists pending requests across the landlord's properties.
func GetPendingBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	bookings, err := svc.Bookings.ForLandlord(userID, models.BookingStatusPending)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

// GetApprovedBookings lists approved stays across the landlord's properties.
func GetApprovedBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	bookings, err := svc.Bookings.ForLandlord(userID, models.BookingStatusApproved)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bookings})
}

func ApproveBooking(ctx iris.Context) {
	decideBooking(ctx, true)
}

func RejectBooking(ctx iris.Context) {
	decideBooking(ctx, false)
}

func decideBooking(ctx iris.Context, approve bool) {
	userID := ctx.Values().Get("userID").(uint)
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID", ctx)
		return
	}

	var booking *models.Booking
	if approve {
		booking, err = svc.Bookings.Approve(bookingID, userID)
	} else {
		booking, err = svc.Bookings.Reject(bookingID, userID)
	}
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": booking})
}

// CancelBooking deletes a pending booking and its bills for the owning
// tenant.
func CancelBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	bookingID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid booking ID", ctx)
		return
	}

	if err := svc.Bookings.Cancel(bookingID, userID); err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Booking cancelled"})
}
