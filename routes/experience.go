package routes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tourism-sewa-server/models"
	"tourism-sewa-server/services"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type CreateExperienceInput struct {
	Name           string  `json:"name" validate:"required,max=256"`
	Description    string  `json:"description" validate:"required"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Location       string  `json:"location" validate:"required"`
	Image          string  `json:"image"`
	Type           string  `json:"type" validate:"omitempty,oneof=popular adventure cultural nature food"`
	Duration       string  `json:"duration"`
	PricePerPerson float64 `json:"pricePerPerson" validate:"required,gt=0"`
}

type UpdateExperienceInput struct {
	Name           string   `json:"name" validate:"omitempty,max=256"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Image          string   `json:"image"`
	Type           string   `json:"type" validate:"omitempty,oneof=popular adventure cultural nature food"`
	Duration       string   `json:"duration"`
	PricePerPerson *float64 `json:"pricePerPerson" validate:"omitempty,gt=0"`
	IsAvailable    *bool    `json:"isAvailable"`
}

func CreateExperience(ctx iris.Context) {
	businessID := ctx.Values().Get("businessID").(uint)

	var input CreateExperienceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	imageURL := input.Image
	if strings.HasPrefix(input.Image, "data:") {
		publicID := fmt.Sprintf("experience_%d_%d", businessID, time.Now().UnixNano())
		uploaded, uploadErr := storage.UploadBase64Image(input.Image, publicID)
		if uploadErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Image upload failed", ctx)
			return
		}
		imageURL = uploaded
	}

	experienceType := input.Type
	if experienceType == "" {
		experienceType = "popular"
	}

	experience := models.Experience{
		BusinessID:     businessID,
		Name:           input.Name,
		Description:    input.Description,
		Lat:            input.Lat,
		Lng:            input.Lng,
		Location:       input.Location,
		Image:          imageURL,
		Type:           experienceType,
		IsAvailable:    true,
		Duration:       input.Duration,
		PricePerPerson: input.PricePerPerson,
	}
	if err := storage.DB.Create(&experience).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success":    true,
		"experience": experience,
		"message":    "Experience created successfully",
	})
}

func GetExperiences(ctx iris.Context) {
	var experiences []models.Experience
	err := storage.DB.Order("created_at DESC").Find(&experiences).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experiences": experiences})
}

func GetFeaturedExperiences(ctx iris.Context) {
	var experiences []models.Experience
	err := storage.DB.
		Where("is_available = ?", true).
		Order("created_at DESC").
		Limit(6).
		Find(&experiences).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experiences": experiences})
}

// SearchExperiences answers keyword matches first and only falls back to the
// language model when the keyword pass finds nothing. The fallback is
// best-effort: if it errors the response is an empty list, not a failure.
func SearchExperiences(ctx iris.Context) {
	query := strings.TrimSpace(ctx.URLParam("q"))
	if query == "" {
		query = strings.TrimSpace(ctx.URLParam("query"))
	}
	if query == "" {
		utils.CreateError(iris.StatusBadRequest, "Missing search query", ctx)
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var experiences []models.Experience
	err := storage.DB.
		Where("is_available = ?", true).
		Where("LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&experiences).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if len(experiences) > 0 {
		ctx.JSON(iris.Map{"success": true, "experiences": experiences, "aiAssisted": false})
		return
	}

	var candidates []models.Experience
	if err := storage.DB.Where("is_available = ?", true).Find(&candidates).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	suggested, aiErr := services.NewSearchService().SuggestExperiences(ctx.Request().Context(), query, candidates)
	if aiErr != nil {
		ctx.JSON(iris.Map{"success": true, "experiences": []models.Experience{}, "aiAssisted": false})
		return
	}
	if suggested == nil {
		suggested = []models.Experience{}
	}

	ctx.JSON(iris.Map{"success": true, "experiences": suggested, "aiAssisted": true})
}

func GetExperiencesByBusiness(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid business ID", ctx)
		return
	}

	var experiences []models.Experience
	err := storage.DB.
		Where("business_id = ?", id).
		Order("created_at DESC").
		Find(&experiences).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experiences": experiences})
}

func GetExperienceByID(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid experience ID", ctx)
		return
	}

	var experience models.Experience
	err := storage.DB.Preload("Business").First(&experience, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Experience not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "experience": experience})
}

func UpdateExperience(ctx iris.Context) {
	businessID := ctx.Values().Get("businessID").(uint)
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid experience ID", ctx)
		return
	}

	var input UpdateExperienceInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var experience models.Experience
	err := storage.DB.First(&experience, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Experience not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if experience.BusinessID != businessID {
		utils.CreateError(iris.StatusForbidden, "Not your experience", ctx)
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Location != "" {
		updates["location"] = input.Location
	}
	if input.Type != "" {
		updates["type"] = input.Type
	}
	if input.Duration != "" {
		updates["duration"] = input.Duration
	}
	if input.PricePerPerson != nil {
		updates["price_per_person"] = *input.PricePerPerson
	}
	if input.IsAvailable != nil {
		updates["is_available"] = *input.IsAvailable
	}
	if strings.HasPrefix(input.Image, "data:") {
		publicID := fmt.Sprintf("experience_%d_%d", businessID, time.Now().UnixNano())
		uploaded, uploadErr := storage.UploadBase64Image(input.Image, publicID)
		if uploadErr != nil {
			utils.CreateError(iris.StatusBadRequest, "Image upload failed", ctx)
			return
		}
		updates["image"] = uploaded
	} else if input.Image != "" {
		updates["image"] = input.Image
	}

	if len(updates) > 0 {
		if err := storage.DB.Model(&experience).Updates(updates).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{
		"success":    true,
		"experience": experience,
		"message":    "Experience updated successfully",
	})
}

func DeleteExperience(ctx iris.Context) {
	businessID := ctx.Values().Get("businessID").(uint)
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid experience ID", ctx)
		return
	}

	var experience models.Experience
	err := storage.DB.First(&experience, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Experience not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if experience.BusinessID != businessID {
		utils.CreateError(iris.StatusForbidden, "Not your experience", ctx)
		return
	}

	if err := storage.DB.Delete(&experience).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Experience deleted successfully"})
}
