package routes

import (
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

type RegisterUserInput struct {
	Name          string `json:"name" validate:"required,max=256"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8,max=256"`
	ContactNumber string `json:"contactNumber" validate:"required"`
	Nationality   string `json:"nationality" validate:"required"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func Register(ctx iris.Context) {
	var input RegisterUserInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.User
	exists, err := userExistsByEmail(&existing, input.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if exists {
		utils.CreateError(iris.StatusBadRequest, "User already exists", ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	user := models.User{
		Name:          input.Name,
		Email:         strings.ToLower(input.Email),
		Password:      hashedPassword,
		ContactNumber: input.ContactNumber,
		Nationality:   input.Nationality,
		Gender:        input.Gender,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	token, tokenErr := utils.CreateToken(user.ID, utils.RoleTourist)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.SetTokenCookie(ctx, token)

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": user.ID, "name": user.Name},
		"message": "Registered successfully",
	})
}

func Login(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	exists, err := userExistsByEmail(&user, input.Email)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if !exists {
		utils.CreateError(iris.StatusUnauthorized, "Invalid credentials", ctx)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		utils.CreateError(iris.StatusUnauthorized, "Invalid credentials", ctx)
		return
	}

	token, tokenErr := utils.CreateToken(user.ID, utils.RoleTourist)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.SetTokenCookie(ctx, token)

	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": user.ID, "name": user.Name},
		"message": "Login successful",
	})
}

func Logout(ctx iris.Context) {
	if verified := jwt.GetVerifiedToken(ctx); verified != nil {
		utils.BlocklistToken(string(verified.Token))
	}
	utils.ClearTokenCookie(ctx)
	ctx.JSON(iris.Map{"success": true, "message": "Logged out successfully"})
}

func GetUserProfile(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound("User not found", ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": user.ID, "name": user.Name},
		"message": "Authenticated",
	})
}

func userExistsByEmail(dest *models.User, email string) (bool, error) {
	err := storage.DB.Where("email = ?", strings.ToLower(email)).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func hashAndSaltPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
