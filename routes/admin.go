package routes

import (
	"github.com/Lebronlang/Boardify/models"
	"github.com/Lebronlang/Boardify/storage"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
)

// GetCommissionSummary returns platform commission totals for the admin
// dashboard.
func GetCommissionSummary(ctx iris.Context) {
	summary, err := svc.Billing.Commissions()
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": summary})
}

// GetAllBookings lists bookings platform-wide, paginated and optionally
// filtered by status.
func GetAllBookings(ctx iris.Context) {
	status := ctx.URLParam("status")
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	query := storage.DB.Model(&models.Booking{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if res := query.Count(&total); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	var bookings []models.Booking
	res := query.Preload("Tenant").Preload("Property").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// GetAllHelpTickets lists help tickets across all users, pending first.
func GetAllHelpTickets(ctx iris.Context) {
	var tickets []models.HelpTicket
	res := storage.DB.Preload("User").
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC").
		Find(&tickets)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": tickets})
}

type ResolveTicketInput struct {
	Status string `json:"status" validate:"required,oneof=pending resolved"`
}

// ResolveHelpTicket flips a ticket's status.
func ResolveHelpTicket(ctx iris.Context) {
	ticketID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid ticket ID", ctx)
		return
	}

	var input ResolveTicketInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var ticket models.HelpTicket
	if res := storage.DB.First(&ticket, ticketID); res.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ticket.Status = input.Status
	if res := storage.DB.Save(&ticket); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": ticket})
}

// ApproveLandlord marks a landlord account as vetted so their listings can
// go live.
func ApproveLandlord(ctx iris.Context) {
	adminID := ctx.Values().Get("userID").(uint)
	userID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid user ID", ctx)
		return
	}

	var user models.User
	if res := storage.DB.First(&user, userID); res.Error != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if user.Role != models.RoleLandlord {
		utils.CreateError(iris.StatusConflict, "Conflict", "Only landlord accounts can be approved", ctx)
		return
	}

	verified := true
	user.IsVerified = &verified
	user.IsApprovedByAdmin = true
	if res := storage.DB.Save(&user); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DB.Create(&models.AuditLog{
		ActorUserID:  adminID,
		Action:       "landlord_approved",
		ResourceType: "user",
		ResourceID:   user.ID,
	})

	ctx.JSON(iris.Map{"success": true, "data": user})
}

// GetAuditLogs returns recent audit entries, newest first.
func GetAuditLogs(ctx iris.Context) {
	limit := ctx.URLParamIntDefault("limit", 100)
	if limit < 1 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	if res := storage.DB.Order("created_at DESC").Limit(limit).Find(&logs); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": logs})
}
