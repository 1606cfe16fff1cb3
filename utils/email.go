package utils

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/ta9iBarkat/ecommerce-platform/config"
	"github.com/ta9iBarkat/ecommerce-platform/models"
)

// EmailService sends transactional mail through SendGrid.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		client: sendgrid.NewSendClient(cfg.SendGridAPIKey),
		sender: cfg.EmailSender,
	}
}

// SendOrderConfirmation mails the buyer a summary of a freshly placed order.
func (es *EmailService) SendOrderConfirmation(toEmail string, order *models.Order) error {
	subject := "Order Confirmation"
	text := fmt.Sprintf(
		"Thank you for your purchase! Your order (ID: %s) has been placed successfully.\n\nTotal: $%.2f\n",
		order.ID.Hex(), order.TotalPrice,
	)
	html := fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Your order (ID: %s) has been placed successfully.<br><br>Items: <strong>$%.2f</strong><br>Tax: <strong>$%.2f</strong><br>Shipping: <strong>$%.2f</strong><br>Total: <strong>$%.2f</strong>",
		order.ID.Hex(), order.ItemsPrice, order.TaxPrice, order.ShippingPrice, order.TotalPrice,
	)

	message := mail.NewSingleEmail(
		mail.NewEmail("", es.sender),
		subject,
		mail.NewEmail("", toEmail),
		text,
		html,
	)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d", resp.StatusCode)
	}
	return nil
}
