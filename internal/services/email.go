package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const rsvpConfirmationTemplate = "rsvp_confirmation"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that renders templates and hands them to mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

func (s *emailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp confirmation data is nil")
	}
	if data.Email == "" {
		return fmt.Errorf("rsvp confirmation has no recipient")
	}
	subject, html, text, err := s.renderer.Render(rsvpConfirmationTemplate, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", rsvpConfirmationTemplate, err)
	}
	msg := domain.EmailMessage{To: data.Email, Subject: subject, HTML: html, Text: text}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send rsvp confirmation: %w", err)
	}
	s.logger.DebugContext(ctx, "rsvp confirmation sent", "to", data.Email)
	return nil
}
