package routes

import (
	"encoding/json"
	"errors"
	"strings"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterBusinessInput struct {
	Name          string   `json:"name" validate:"required,max=256"`
	Email         string   `json:"email" validate:"required,email"`
	Password      string   `json:"password" validate:"required,min=8,max=256"`
	BusinessName  string   `json:"businessName" validate:"required,max=256"`
	ContactNumber string   `json:"contactNumber" validate:"required"`
	Address       string   `json:"address" validate:"required"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
}

func RegisterBusiness(ctx iris.Context) {
	var input RegisterBusinessInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Business
	exists, err := businessExistsByEmail(&existing, input.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if exists {
		utils.CreateError(iris.StatusBadRequest, "Business already exists", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	categories, _ := json.Marshal(input.Categories)
	business := models.Business{
		Name:          input.Name,
		Email:         strings.ToLower(input.Email),
		Password:      hashedPassword,
		BusinessName:  input.BusinessName,
		ContactNumber: input.ContactNumber,
		Address:       input.Address,
		Description:   input.Description,
		Categories:    categories,
		Verified:      false,
	}
	if err := storage.DB.Create(&business).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	token, tokenErr := utils.CreateToken(business.ID, utils.RoleBusiness)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.SetTokenCookie(ctx, token)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": business.ID, "name": business.Name},
		"message": "Business registered successfully",
	})
}

func LoginBusiness(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var business models.Business
	exists, err := businessExistsByEmail(&business, input.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !exists {
		utils.CreateError(iris.StatusUnauthorized, "Invalid credentials", ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(business.Password), []byte(input.Password)) != nil {
		utils.CreateError(iris.StatusUnauthorized, "Invalid credentials", ctx)
		return
	}

	token, tokenErr := utils.CreateToken(business.ID, utils.RoleBusiness)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.SetTokenCookie(ctx, token)

	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": business.ID, "name": business.Name},
		"message": "Login successful",
	})
}

func LogoutBusiness(ctx iris.Context) {
	if verified := jwt.GetVerifiedToken(ctx); verified != nil {
		utils.BlocklistToken(string(verified.Token))
	}
	utils.ClearTokenCookie(ctx)
	ctx.JSON(iris.Map{"success": true, "message": "Logged out successfully"})
}

func GetBusinessProfile(ctx iris.Context) {
	businessID := ctx.Values().Get("businessID").(uint)

	var business models.Business
	if err := storage.DB.First(&business, businessID).Error; err != nil {
		utils.CreateNotFound("Business not found", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": business.ID, "name": business.Name},
		"message": "Authenticated",
	})
}

func businessExistsByEmail(dest *models.Business, email string) (bool, error) {
	err := storage.DB.Where("email = ?", strings.ToLower(email)).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
