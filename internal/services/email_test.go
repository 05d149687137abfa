package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epiphane/wedding-site/internal/domain"
)

func TestEmailService_SendRSVPConfirmation(t *testing.T) {
	ctx := context.Background()
	data := &domain.RSVPConfirmationEmailData{Email: "liz@example.com", FirstName: "Liz", Attending: true}

	t.Run("renders and sends", func(t *testing.T) {
		mailer, renderer := &fakeMailer{}, &fakeRenderer{}
		svc := NewEmailService(mailer, renderer, discardLogger())
		require.NoError(t, svc.SendRSVPConfirmation(ctx, data))
		assert.Equal(t, "rsvp_confirmation", renderer.name)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, domain.EmailMessage{To: "liz@example.com", Subject: "subject", HTML: "<p>html</p>", Text: "text"}, mailer.sent[0])
	})

	t.Run("nil or empty recipient", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, discardLogger())
		require.Error(t, svc.SendRSVPConfirmation(ctx, nil))
		require.Error(t, svc.SendRSVPConfirmation(ctx, &domain.RSVPConfirmationEmailData{}))
	})

	t.Run("render failure", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("bad template")}, discardLogger())
		require.ErrorContains(t, svc.SendRSVPConfirmation(ctx, data), "bad template")
		assert.Empty(t, mailer.sent)
	})

	t.Run("send failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("quota")}, &fakeRenderer{}, discardLogger())
		require.ErrorContains(t, svc.SendRSVPConfirmation(ctx, data), "quota")
	})
}
