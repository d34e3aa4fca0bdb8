package routes

import (
	"errors"
	"strings"
	"time"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/thanhpk/randstr"
	"gorm.io/gorm"
)

// The front-ends send the experience reference as "experience"; "experienceId"
// is accepted as an alias.
type CreateBookingInput struct {
	Experience    uint    `json:"experience" validate:"required_without=ExperienceID"`
	ExperienceID  uint    `json:"experienceId" validate:"required_without=Experience"`
	Date          string  `json:"date" validate:"required"`
	Message       string  `json:"message"`
	ContactNumber string  `json:"contactNumber" validate:"required"`
	Email         string  `json:"email" validate:"required,email"`
	NoOfPersons   int     `json:"noOfPersons" validate:"required,min=1"`
	TotalAmount   float64 `json:"totalAmount" validate:"omitempty,gt=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=pending confirmed canceled"`
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed canceled"`
}

func CreateBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreateBookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	date, dateErr := parseBookingDate(input.Date)
	if dateErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid booking date", ctx)
		return
	}

	experienceID := input.Experience
	if experienceID == 0 {
		experienceID = input.ExperienceID
	}

	// A booking against a missing or paused experience is rejected the same
	// way, so the client cannot enumerate which experiences exist.
	var experience models.Experience
	err := storage.DB.First(&experience, experienceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateError(iris.StatusBadRequest, "Experience is not available for booking", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}
	if !experience.IsAvailable {
		utils.CreateError(iris.StatusBadRequest, "Experience is not available for booking", ctx)
		return
	}

	totalAmount := input.TotalAmount
	if totalAmount <= 0 {
		totalAmount = experience.PricePerPerson * float64(input.NoOfPersons)
	}

	status := input.Status
	if status == "" {
		status = "pending"
	}

	booking := models.Booking{
		TouristID:     userID,
		ExperienceID:  experience.ID,
		Date:          date,
		Message:       input.Message,
		ContactNumber: input.ContactNumber,
		Email:         strings.ToLower(input.Email),
		NoOfPersons:   input.NoOfPersons,
		TotalAmount:   totalAmount,
		Status:        status,
		Reference:     randstr.Hex(8),
	}
	if err := storage.DB.Create(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"booking": booking,
		"message": "Booking created successfully",
	})
}

func GetMyBookings(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var bookings []models.Booking
	err := storage.DB.
		Preload("Experience").
		Where("tourist_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "bookings": bookings})
}

// GetBookingsForBusiness returns every booking made against the caller's
// experiences. Ownership is resolved in SQL rather than by walking each
// booking's experience in application code.
func GetBookingsForBusiness(ctx iris.Context) {
	businessID := ctx.Values().Get("businessID").(uint)

	requested, paramErr := ctx.Params().GetUint("businessId")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid business ID", ctx)
		return
	}
	if requested != businessID {
		utils.CreateError(iris.StatusForbidden, "Not your bookings", ctx)
		return
	}

	var bookings []models.Booking
	err := storage.DB.
		Preload("Experience").
		Preload("Tourist").
		Joins("JOIN experiences ON experiences.id = bookings.experience_id").
		Where("experiences.business_id = ?", businessID).
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "bookings": bookings})
}

func GetBookingByID(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid booking ID", ctx)
		return
	}

	var booking models.Booking
	err := storage.DB.Preload("Experience").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Booking not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if booking.TouristID != userID {
		utils.CreateError(iris.StatusForbidden, "Not your booking", ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "booking": booking})
}

// UpdateBookingStatus lets the owning business move a booking through its
// lifecycle. Only the status column is written; payment state stays with the
// webhook.
func UpdateBookingStatus(ctx iris.Context) {
	businessID := ctx.Values().Get("businessID").(uint)
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid booking ID", ctx)
		return
	}

	var input UpdateBookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	err := storage.DB.Preload("Experience").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Booking not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if booking.Experience.BusinessID != businessID {
		utils.CreateError(iris.StatusForbidden, "Not your booking", ctx)
		return
	}

	err = storage.DB.Model(&booking).Update("status", input.Status).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success": true,
		"booking": booking,
		"message": "Booking status updated",
	})
}

func DeleteBooking(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)
	id, paramErr := ctx.Params().GetUint("id")
	if paramErr != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid booking ID", ctx)
		return
	}

	var booking models.Booking
	err := storage.DB.First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.CreateNotFound("Booking not found", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	if booking.TouristID != userID {
		utils.CreateError(iris.StatusForbidden, "Not your booking", ctx)
		return
	}

	if err := storage.DB.Delete(&booking).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "message": "Booking deleted successfully"})
}

// parseBookingDate accepts RFC 3339 timestamps and bare dates.
func parseBookingDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
