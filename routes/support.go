package routes

import (
	"github.com/Lebronlang/Boardify/models"
	"github.com/Lebronlang/Boardify/storage"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
)

type HelpTicketInput struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Message string `json:"message" validate:"required"`
}

// CreateHelpTicket opens a support ticket for the requester.
func CreateHelpTicket(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input HelpTicketInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	ticket := models.HelpTicket{
		UserID:  userID,
		Subject: input.Subject,
		Message: input.Message,
		Status:  models.TicketStatusPending,
	}
	if res := storage.DB.Create(&ticket); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": ticket})
}

// GetMyHelpTickets lists the requester's tickets, newest first.
func GetMyHelpTickets(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var tickets []models.HelpTicket
	if res := storage.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&tickets); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": tickets})
}

// GetMyNotifications lists the requester's notifications, newest first.
func GetMyNotifications(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var notifications []models.Notification
	if res := storage.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(100).Find(&notifications); res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": notifications})
}

// MarkNotificationRead flags one of the requester's notifications as read.
func MarkNotificationRead(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	notificationID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid notification ID", ctx)
		return
	}

	res := storage.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
