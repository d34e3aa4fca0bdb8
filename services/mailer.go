package services

import (
	"fmt"
	"log"
	"os"

	"tourism-sewa-server/models"

	mailjet "github.com/mailjet/mailjet-apiv3-go"
)

// MailerService sends transactional email through Mailjet.
type MailerService struct{}

func NewMailerService() *MailerService {
	return &MailerService{}
}

// SendPaymentReceipt emails the tourist after the payment webhook marks their
// booking paid. Failures are logged only; the webhook must not depend on it.
func (ms *MailerService) SendPaymentReceipt(booking models.Booking, experienceName string) {
	publicKey := os.Getenv("MJ_APIKEY_PUBLIC")
	privateKey := os.Getenv("MJ_APIKEY_PRIVATE")
	fromEmail := os.Getenv("MJ_FROM_EMAIL")
	if publicKey == "" || privateKey == "" || fromEmail == "" {
		log.Println("mailer: Mailjet env vars missing, skipping receipt for booking", booking.ID)
		return
	}

	client := mailjet.NewMailjetClient(publicKey, privateKey)
	messages := mailjet.MessagesV31{
		Info: []mailjet.InfoMessagesV31{
			{
				From: &mailjet.RecipientV31{
					Email: fromEmail,
					Name:  "TourismSewa",
				},
				To: &mailjet.RecipientsV31{
					{Email: booking.Email},
				},
				Subject: fmt.Sprintf("Payment received for %s", experienceName),
				TextPart: fmt.Sprintf(
					"Your payment for %s on %s has been received.\nBooking reference: %s\nPersons: %d\nTotal: %.2f\n",
					experienceName,
					booking.Date.Format("January 2, 2006"),
					booking.Reference,
					booking.NoOfPersons,
					booking.TotalAmount,
				),
			},
		},
	}

	if _, err := client.SendMailV31(&messages); err != nil {
		log.Println("mailer: failed to send receipt for booking", booking.ID, err)
	}
}
