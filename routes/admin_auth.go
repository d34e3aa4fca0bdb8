package routes

import (
	"crypto/subtle"
	"os"

	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// The admin is a single privileged principal minted from environment
// credentials; there is no admin row in the database. Credentials are
// compared in constant time so the check leaks nothing about either field.

const adminPrincipalID uint = 1

func AdminLogin(ctx iris.Context) {
	var input LoginInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPass := os.Getenv("ADMIN_PASS")

	emailOK := subtle.ConstantTimeCompare([]byte(input.Email), []byte(adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(adminPass)) == 1
	if adminEmail == "" || adminPass == "" || !emailOK || !passOK {
		utils.CreateError(iris.StatusUnauthorized, "Invalid credentials", ctx)
		return
	}

	token, tokenErr := utils.CreateToken(adminPrincipalID, utils.RoleAdmin)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.SetTokenCookie(ctx, token)

	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": adminPrincipalID, "name": adminEmail},
		"message": "Admin login successful",
	})
}

func AdminLogout(ctx iris.Context) {
	if verified := jwt.GetVerifiedToken(ctx); verified != nil {
		utils.BlocklistToken(string(verified.Token))
	}
	utils.ClearTokenCookie(ctx)
	ctx.JSON(iris.Map{"success": true, "message": "Admin logged out successfully"})
}

func GetAdminProfile(ctx iris.Context) {
	ctx.JSON(iris.Map{
		"success": true,
		"user":    iris.Map{"id": adminPrincipalID, "name": os.Getenv("ADMIN_EMAIL")},
		"message": "Authenticated",
	})
}
