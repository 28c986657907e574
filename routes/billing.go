package routes

import (
	"time"

	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
)

// GetBills lists the bills visible to the requester, refreshed on view so
// penalties and overdue flags are current.
func GetBills(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().Get("role").(string)

	bills, err := svc.Billing.ListForUser(userID, role)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bills})
}

// RefreshBill recomputes one bill's penalty/discount/status.
func RefreshBill(ctx iris.Context) {
	billID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid bill ID", ctx)
		return
	}

	bill, err := svc.Billing.Refresh(billID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": bill})
}

type PayBillInput struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=gcash maya paypal bank cash"`
}

// PayBill settles a bill and returns the final figures including the
// platform commission.
func PayBill(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().Get("role").(string)
	billID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid bill ID", ctx)
		return
	}

	var input PayBillInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	receipt, err := svc.Billing.Pay(billID, userID, role, input.PaymentMethod)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":       true,
		"finalAmount":   receipt.FinalAmount,
		"commission":    receipt.Commission,
		"receiptNumber": receipt.Bill.ReceiptNumber,
		"bill":          receipt.Bill,
	})
}

// GetMonthlyInvoice sums the requester's bills due in the selected month.
func GetMonthlyInvoice(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().Get("role").(string)

	now := time.Now()
	year := ctx.URLParamIntDefault("year", now.Year())
	month := ctx.URLParamIntDefault("month", int(now.Month()))
	if month < 1 || month > 12 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Month must be between 1 and 12", ctx)
		return
	}

	summary, err := svc.Billing.MonthlyInvoice(userID, role, year, time.Month(month))
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": summary, "year": year, "month": month})
}
