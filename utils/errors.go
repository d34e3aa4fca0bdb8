package utils

import (
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// Every API failure surfaces as {"success": false, "message": ...} so the
// front-ends can show the message field directly.

func CreateError(statusCode int, message string, ctx iris.Context) {
	ctx.StatusCode(statusCode)
	ctx.JSON(iris.Map{"success": false, "message": message})
}

func CreateNotFound(message string, ctx iris.Context) {
	CreateError(iris.StatusNotFound, message, ctx)
}

func CreateInternalServerError(ctx iris.Context) {
	CreateError(iris.StatusInternalServerError, "Server error", ctx)
}

type validationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value,omitempty"`
}

// HandleValidationErrors converts ReadJSON failures into the standard error
// body, listing the offending fields when the validator produced them.
func HandleValidationErrors(err error, ctx iris.Context) {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := make([]validationError, 0, len(errs))
		for _, e := range errs {
			details = append(details, validationError{
				Field: e.Field(),
				Tag:   e.Tag(),
				Value: e.Param(),
			})
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"success": false,
			"message": "Missing required fields",
			"errors":  details,
		})
		return
	}

	CreateError(iris.StatusBadRequest, "Invalid request payload", ctx)
}
