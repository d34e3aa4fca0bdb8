package routes

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"os"
	"strconv"

	"tourism-sewa-server/models"
	"tourism-sewa-server/services"
	"tourism-sewa-server/storage"
	"tourism-sewa-server/utils"

	"github.com/kataras/iris/v12"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"gorm.io/gorm"
)

type CreatePaymentIntentInput struct {
	BookingID uint  `json:"bookingId" validate:"required"`
	Amount    int64 `json:"amount" validate:"omitempty,gt=0"` // minor units
}

// createIntent is swapped out in tests so handlers can run without Stripe.
var createIntent = func(amount int64, bookingID uint) (*stripe.PaymentIntent, error) {
	return services.NewPaymentService().CreateIntent(amount, bookingID)
}

var mailer = services.NewMailerService()

func CreatePaymentIntent(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input CreatePaymentIntentInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var booking models.Booking
	err := storage.DB.First(&booking, input.BookingID).Error
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
	if booking.IsPaid {
		utils.CreateError(iris.StatusBadRequest, "Booking is already paid", ctx)
		return
	}

	amount := input.Amount
	if amount <= 0 {
		amount = int64(math.Round(booking.TotalAmount * 100))
	}
	intent, intentErr := createIntent(amount, booking.ID)
	if intentErr != nil {
		log.Println("payments: failed to create intent for booking", booking.ID, intentErr)
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"success":      true,
		"clientSecret": intent.ClientSecret,
		"bookingId":    booking.ID,
	})
}

// HandleStripeWebhook reconciles payment state. The raw body must be verified
// against the Stripe-Signature header before anything else; after the
// signature checks out the endpoint always answers 200 so Stripe does not
// retry events we have already absorbed.
func HandleStripeWebhook(ctx iris.Context) {
	payload, err := ctx.GetBody()
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Invalid webhook payload", ctx)
		return
	}

	event, err := webhook.ConstructEvent(
		payload,
		ctx.GetHeader("Stripe-Signature"),
		os.Getenv("STRIPE_WEBHOOK_SIGNING_SECRET"),
	)
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Webhook signature verification failed", ctx)
		return
	}

	if event.Type == "payment_intent.succeeded" {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			log.Println("payments: malformed payment_intent payload:", err)
			ctx.JSON(iris.Map{"received": true})
			return
		}
		markBookingPaid(intent)
	}

	ctx.JSON(iris.Map{"received": true})
}

func markBookingPaid(intent stripe.PaymentIntent) {
	raw, ok := intent.Metadata["bookingId"]
	if !ok {
		log.Println("payments: payment_intent", intent.ID, "has no bookingId metadata")
		return
	}
	bookingID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		log.Println("payments: bad bookingId metadata on", intent.ID, err)
		return
	}

	var booking models.Booking
	err = storage.DB.Preload("Experience").First(&booking, uint(bookingID)).Error
	if err != nil {
		// The booking may have been deleted between payment and delivery;
		// absorbing the event keeps the endpoint idempotent.
		log.Println("payments: no booking", bookingID, "for intent", intent.ID)
		return
	}
	if booking.IsPaid {
		return
	}

	if err := storage.DB.Model(&booking).Update("is_paid", true).Error; err != nil {
		log.Println("payments: failed to mark booking", booking.ID, "paid:", err)
		return
	}

	go mailer.SendPaymentReceipt(booking, booking.Experience.Name)
}
