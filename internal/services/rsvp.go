package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const (
	maxRSVPMessageRunes = 2000
	maxPlusOneNameRunes = 200
)

type rsvpService struct {
	guests  domain.GuestRepository
	rsvps   domain.RSVPRepository
	email   domain.EmailService
	wedding domain.WeddingDetails
	logger  *slog.Logger
	now     func() time.Time
}

// NewRSVPService returns the RSVP service. email may be nil to skip confirmations.
func NewRSVPService(guests domain.GuestRepository, rsvps domain.RSVPRepository, email domain.EmailService, wedding domain.WeddingDetails, logger *slog.Logger) domain.RSVPService {
	return &rsvpService{
		guests:  guests,
		rsvps:   rsvps,
		email:   email,
		wedding: wedding,
		logger:  logger,
		now:     time.Now,
	}
}

// Submit stores the guest's response, replacing any earlier one, then mails a
// confirmation. A mail failure is logged and does not fail the submission.
func (s *rsvpService) Submit(ctx context.Context, guestID int64, in domain.RSVPInput) (*domain.RSVP, error) {
	guest, err := s.guests.GetByID(ctx, guestID)
	if err != nil {
		return nil, fmt.Errorf("get guest %d: %w", guestID, err)
	}

	rsvp := &domain.RSVP{
		GuestID:     guestID,
		Attending:   in.Attending,
		PlusOne:     in.Attending && in.PlusOne,
		PlusOneName: strings.Join(strings.Fields(in.PlusOneName), " "),
		Message:     strings.TrimSpace(in.Message),
		RespondedAt: domain.StorageTime(s.now()),
	}
	if rsvp.PlusOne && !guest.PlusOneAllowed {
		return nil, domain.ErrPlusOneNotAllowed
	}
	if !rsvp.PlusOne {
		rsvp.PlusOneName = ""
	}
	var errs []string
	if utf8.RuneCountInString(rsvp.PlusOneName) > maxPlusOneNameRunes {
		errs = append(errs, fmt.Sprintf("plus_one_name must be at most %d characters", maxPlusOneNameRunes))
	}
	if utf8.RuneCountInString(rsvp.Message) > maxRSVPMessageRunes {
		errs = append(errs, fmt.Sprintf("message must be at most %d characters", maxRSVPMessageRunes))
	}
	if err := domain.NewValidationError(errs); err != nil {
		return nil, err
	}

	if err := s.rsvps.Upsert(ctx, rsvp); err != nil {
		return nil, fmt.Errorf("save rsvp for guest %d: %w", guestID, err)
	}

	if s.email != nil {
		data := &domain.RSVPConfirmationEmailData{
			Email:       guest.Email,
			FirstName:   guest.FirstName,
			Attending:   rsvp.Attending,
			PlusOneName: rsvp.PlusOneName,
			Wedding:     s.wedding,
		}
		if err := s.email.SendRSVPConfirmation(context.WithoutCancel(ctx), data); err != nil {
			s.logger.WarnContext(ctx, "rsvp confirmation not sent", "guest_id", guestID, "err", err)
		}
	}
	return rsvp, nil
}

func (s *rsvpService) Get(ctx context.Context, guestID int64) (*domain.RSVP, error) {
	rsvp, err := s.rsvps.GetByGuestID(ctx, guestID)
	if err == nil {
		return rsvp, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get rsvp for guest %d: %w", guestID, err)
	}
	// Distinguish a missing guest from a guest that has not answered yet.
	if _, gerr := s.guests.GetByID(ctx, guestID); gerr != nil {
		return nil, fmt.Errorf("get guest %d: %w", guestID, gerr)
	}
	return nil, fmt.Errorf("guest %d: %w", guestID, domain.ErrNoResponse)
}

func (s *rsvpService) Summary(ctx context.Context) (*domain.RSVPSummary, error) {
	summary, err := s.rsvps.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("rsvp summary: %w", err)
	}
	return summary, nil
}
