package routes

import (
	"errors"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func GetPendingReviews(ctx iris.Context) {
	var reviews []models.Review
	err := storage.DB.
		Preload("Tourist").
		Preload("Experience").
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&reviews).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "reviews": reviews})
}

func ApproveReview(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid review ID", ctx)
		return
	}

	var review models.Review
	err := storage.DB.First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Review not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if review.IsApproved {
		ctx.JSON(iris.Map{"success": true, "review": review, "message": "Review already approved"})
		return
	}

	before := review
	if err := storage.DB.Model(&review).Update("is_approved", true).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "review.approve", "review", review.ID, before, review)

	ctx.JSON(iris.Map{"success": true, "review": review, "message": "Review approved"})
}

// RejectReview removes a pending review outright; there is no rejected state
// to resurrect from.
func RejectReview(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid review ID", ctx)
		return
	}

	var review models.Review
	err := storage.DB.First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Review not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.Audit(ctx, "review.reject", "review", review.ID, review, nil)

	ctx.JSON(iris.Map{"success": true, "message": "Review rejected"})
}
