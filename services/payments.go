package services

import (
	"os"
	"strconv"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// PaymentService wraps the Stripe PaymentIntent API.
type PaymentService struct{}

func NewPaymentService() *PaymentService {
	return &PaymentService{}
}

// CreateIntent creates a provider-side payment intent for the given amount in
// minor currency units. The booking id travels in the intent metadata; it is
// the only link the webhook has back to the booking.
func (ps *PaymentService) CreateIntent(amount int64, bookingID uint) (*stripe.PaymentIntent, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.AddMetadata("bookingId", strconv.FormatUint(uint64(bookingID), 10))

	return paymentintent.New(params)
}
