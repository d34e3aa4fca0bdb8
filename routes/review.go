package routes

import (
	"errors"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateReviewInput struct {
	ExperienceID uint   `json:"experienceId" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required,max=2000"`
}

// GetReviews lists approved reviews only; pending ones stay invisible until
// an admin clears them.
func GetReviews(ctx iris.Context) {
	query := storage.DB.
		Preload("Tourist").
		Where("is_approved = ?", true).
		Order("created_at DESC")

	if experienceID := ctx.URLParam("experienceId"); experienceID != "" {
		query = query.Where("experience_id = ?", experienceID)
	}

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "reviews": reviews})
}

func GetReviewByID(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid review ID", ctx)
		return
	}

	var review models.Review
	err := storage.DB.Preload("Tourist").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Review not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "review": review})
}

func CreateReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var experience models.Experience
	err := storage.DB.First(&experience, input.ExperienceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Experience not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	// One review per tourist per experience. The unique index backs this up
	// against concurrent submissions.
	var existing models.Review
	err = storage.DB.
		Where("tourist_id = ? AND experience_id = ?", userID, input.ExperienceID).
		First(&existing).Error
	if err == nil {
		utils.CreateError(iris.StatusBadRequest, "You have already reviewed this experience", ctx)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.CreateInternalServerError(ctx)
		return
	}

	review := models.Review{
		TouristID:    userID,
		ExperienceID: input.ExperienceID,
		Rating:       input.Rating,
		Comment:      input.Comment,
		IsApproved:   false,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		// The unique index catches a concurrent duplicate the pre-check missed.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.CreateError(iris.StatusBadRequest, "You have already reviewed this experience", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"review":  review,
		"message": "Review submitted for moderation",
	})
}

// DeleteReview is reachable from both the tourist and the admin surface; a
// tourist may only remove their own review.
func DeleteReview(ctx iris.Context) {
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

	isAdmin := ctx.Values().Get("adminID") != nil
	if !isAdmin {
		userID := ctx.Values().Get("userID").(uint)
		if review.TouristID != userID {
			utils.CreateError(iris.StatusForbidden, "Not your review", ctx)
			return
		}
	}

	if err := storage.DB.Delete(&review).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Review deleted successfully"})
}
