package domain

import (
	"context"
	"time"
)

// RSVP is a guest's attendance response. A guest has at most one; a new
// submission replaces the previous one.
// swagger:model RSVP
type RSVP struct {
	ID          int64     `json:"id"`
	GuestID     int64     `json:"guest_id"`
	Attending   bool      `json:"attending"`
	PlusOne     bool      `json:"plus_one"`
	PlusOneName string    `json:"plus_one_name,omitempty"`
	Message     string    `json:"message,omitempty"`
	RespondedAt time.Time `json:"responded_at"`
}

// RSVPInput is what a guest submits.
type RSVPInput struct {
	Attending   bool
	PlusOne     bool
	PlusOneName string
	Message     string
}

// RSVPSummary aggregates responses for the admin panel.
// swagger:model RSVPSummary
type RSVPSummary struct {
	Guests    int `json:"guests"`
	Responded int `json:"responded"`
	Attending int `json:"attending"`
	Declined  int `json:"declined"`
	Pending   int `json:"pending"`
	PlusOnes  int `json:"plus_ones"`
}

// RSVPRepository defines storage for RSVP responses.
type RSVPRepository interface {
	// Upsert creates the guest's response or replaces the existing one; it sets rsvp.ID.
	Upsert(ctx context.Context, rsvp *RSVP) error
	GetByGuestID(ctx context.Context, guestID int64) (*RSVP, error)
	Summary(ctx context.Context) (*RSVPSummary, error)
}

// RSVPService defines RSVP submission and reads.
type RSVPService interface {
	Submit(ctx context.Context, guestID int64, input RSVPInput) (*RSVP, error)
	Get(ctx context.Context, guestID int64) (*RSVP, error)
	Summary(ctx context.Context) (*RSVPSummary, error)
}
