package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Epiphane/wedding-site/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

func (r *rsvpRepository) Upsert(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (guest_id, attending, plus_one, plus_one_name, message, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (guest_id) DO UPDATE
		SET attending = EXCLUDED.attending,
			plus_one = EXCLUDED.plus_one,
			plus_one_name = EXCLUDED.plus_one_name,
			message = EXCLUDED.message,
			responded_at = EXCLUDED.responded_at
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rsvp.GuestID, rsvp.Attending, rsvp.PlusOne, rsvp.PlusOneName, rsvp.Message, rsvp.RespondedAt).Scan(&rsvp.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrNotFound
	}
	return err
}

func (r *rsvpRepository) GetByGuestID(ctx context.Context, guestID int64) (*domain.RSVP, error) {
	query := `
		SELECT id, guest_id, attending, plus_one, plus_one_name, message, responded_at
		FROM rsvps
		WHERE guest_id = $1
	`
	rsvp := &domain.RSVP{}
	err := r.DB.QueryRowContext(ctx, query, guestID).Scan(&rsvp.ID, &rsvp.GuestID, &rsvp.Attending, &rsvp.PlusOne, &rsvp.PlusOneName, &rsvp.Message, &rsvp.RespondedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	rsvp.RespondedAt = rsvp.RespondedAt.UTC()
	return rsvp, nil
}

func (r *rsvpRepository) Summary(ctx context.Context) (*domain.RSVPSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM guests),
			COUNT(*),
			COALESCE(SUM(CASE WHEN attending THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN attending AND plus_one THEN 1 ELSE 0 END), 0)
		FROM rsvps
	`
	s := &domain.RSVPSummary{}
	if err := r.DB.QueryRowContext(ctx, query).Scan(&s.Guests, &s.Responded, &s.Attending, &s.PlusOnes); err != nil {
		return nil, err
	}
	s.Declined = s.Responded - s.Attending
	s.Pending = s.Guests - s.Responded
	return s, nil
}
