package routes

import (
	"github.com/Lebronlang/Boardify/models"
	"github.com/Lebronlang/Boardify/utils"

	"github.com/kataras/iris/v12"
)

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReview lets a tenant review a property they stayed in.
func CreateReview(ctx iris.Context) {
	tenantID := ctx.Values().Get("userID").(uint)
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	var input ReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review, err := svc.Reviews.Submit(tenantID, propertyID, input.Rating, input.Comment)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": review})
}

// GetPropertyReviews lists reviews plus the rating summary for a property.
func GetPropertyReviews(ctx iris.Context) {
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	reviews, summary, err := svc.Reviews.ListForProperty(propertyID)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": reviews, "summary": summary})
}

// GetReviewEligibility tells the client whether the review form should be
// shown for this property.
func GetReviewEligibility(ctx iris.Context) {
	tenantID := ctx.Values().Get("userID").(uint)
	propertyID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid property ID", ctx)
		return
	}

	canReview, hasReview, err := svc.Reviews.Eligibility(tenantID, propertyID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "canReview": canReview, "hasReview": hasReview})
}

// UpdateReview edits the requester's own review.
func UpdateReview(ctx iris.Context) {
	tenantID := ctx.Values().Get("userID").(uint)
	reviewID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID", ctx)
		return
	}

	var input ReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	review, err := svc.Reviews.Edit(reviewID, tenantID, input.Rating, input.Comment)
	if err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": review})
}

// DeleteReview removes a review; admins can remove anyone's.
func DeleteReview(ctx iris.Context) {
	actorID := ctx.Values().Get("userID").(uint)
	role := ctx.Values().Get("role").(string)
	reviewID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid review ID", ctx)
		return
	}

	if err := svc.Reviews.Delete(reviewID, actorID, role == models.RoleAdmin); err != nil {
		handleServiceError(err, ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true})
}
