package routes

import (
	"errors"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

func GetBusinesses(ctx iris.Context) {
	var businesses []models.Business
	err := storage.DB.Order("created_at DESC").Find(&businesses).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "businesses": businesses})
}

func GetBusinessByID(ctx iris.Context) {
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid business ID", ctx)
		return
	}

	var business models.Business
	err := storage.DB.First(&business, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Business not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "business": business})
}
