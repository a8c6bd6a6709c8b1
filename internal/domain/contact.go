package domain

import "context"

// ContactMessage is a public contact-form submission.
type ContactMessage struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

type ContactUsecase interface {
	Submit(ctx context.Context, msg *ContactMessage) error
}
