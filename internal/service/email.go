package service

import (
	"context"
	"fmt"
	"time"

	"rentaldesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendOverdueRentReminder(ctx context.Context, toEmail, toName string, rentID int32, endAt time.Time) error {
	subject := fmt.Sprintf("Rental #%d is past its return date", rentID)
	plainText := fmt.Sprintf(
		"Hello %s,\n\nYour rental #%d reached its scheduled end on %s and has not been returned yet. Please contact us to arrange the return.\n\nThank you.",
		toName, rentID, endAt.Format("2006-01-02 15:04"),
	)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	logger.ExternalServiceCall("sendgrid", "SendOverdueRentReminder", "rent_id", rentID, "to", toEmail)
	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "SendOverdueRentReminder", err)
	if err != nil {
		return fmt.Errorf("send overdue reminder: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
