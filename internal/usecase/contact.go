package usecase

import (
	"context"
	"net/http"
	"strings"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"
	"clinic-portal-backend/pkg/email"
)

type contactUsecase struct {
	emailService *email.EmailService
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(emailService *email.EmailService) domain.ContactUsecase {
	return &contactUsecase{emailService: emailService}
}

// Submit validates the contact message and forwards it to the configured
// recipient mailbox.
func (uc *contactUsecase) Submit(ctx context.Context, msg *domain.ContactMessage) error {
	name := strings.TrimSpace(msg.Name)
	sender := strings.TrimSpace(msg.Email)
	subject := strings.TrimSpace(msg.Subject)
	body := strings.TrimSpace(msg.Message)
	if name == "" || sender == "" || subject == "" || body == "" {
		return apperror.BadRequest("Name, email, subject, and message are all required")
	}

	if !uc.emailService.IsConfigured() {
		return apperror.New(http.StatusServiceUnavailable, "Contact form is temporarily unavailable", nil)
	}

	err := uc.emailService.SendContactEmail(email.ContactEmailData{
		SenderName:  name,
		SenderEmail: sender,
		Subject:     subject,
		Message:     body,
	})
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}
