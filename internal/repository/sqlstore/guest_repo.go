package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const guestSelect = `
	SELECT g.id, g.first_name, g.last_name, g.email, g.phone, g.plus_one_allowed, g.created_at, g.updated_at,
		r.id, r.attending, r.plus_one, r.plus_one_name, r.message, r.responded_at
	FROM guests g
	LEFT JOIN rsvps r ON r.guest_id = g.id
`

type guestRepository struct {
	DB *sql.DB
}

func NewGuestRepository(db *sql.DB) domain.GuestRepository {
	return &guestRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGuest(row rowScanner) (*domain.Guest, error) {
	g := &domain.Guest{}
	var (
		rsvpID      sql.NullInt64
		attending   sql.NullBool
		plusOne     sql.NullBool
		plusOneName sql.NullString
		message     sql.NullString
		respondedAt sql.NullTime
	)
	err := row.Scan(&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.PlusOneAllowed, &g.CreatedAt, &g.UpdatedAt,
		&rsvpID, &attending, &plusOne, &plusOneName, &message, &respondedAt)
	if err != nil {
		return nil, err
	}
	g.CreatedAt, g.UpdatedAt = g.CreatedAt.UTC(), g.UpdatedAt.UTC()
	if rsvpID.Valid {
		g.Response = &domain.RSVP{
			ID:          rsvpID.Int64,
			GuestID:     g.ID,
			Attending:   attending.Bool,
			PlusOne:     plusOne.Bool,
			PlusOneName: plusOneName.String,
			Message:     message.String,
			RespondedAt: respondedAt.Time.UTC(),
		}
	}
	return g, nil
}

func (r *guestRepository) Create(ctx context.Context, g *domain.Guest) error {
	query := `
		INSERT INTO guests (first_name, last_name, name_key, email, phone, plus_one_allowed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, g.FirstName, g.LastName, g.NameKey(), g.Email, g.Phone, g.PlusOneAllowed, g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
	return translateGuestConflict(err)
}

func (r *guestRepository) GetByID(ctx context.Context, id int64) (*domain.Guest, error) {
	g, err := scanGuest(r.DB.QueryRowContext(ctx, guestSelect+`WHERE g.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return g, err
}

func (r *guestRepository) GetByNameKey(ctx context.Context, nameKey string) (*domain.Guest, error) {
	g, err := scanGuest(r.DB.QueryRowContext(ctx, guestSelect+`WHERE g.name_key = $1`, nameKey))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return g, err
}

// List returns one page of guests ordered by last then first name, plus the total count.
func (r *guestRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM guests`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := guestSelect + `
		ORDER BY g.last_name, g.first_name, g.id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	guests := make([]*domain.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, 0, err
		}
		guests = append(guests, g)
	}
	return guests, total, rows.Err()
}

func (r *guestRepository) Update(ctx context.Context, g *domain.Guest) error {
	query := `
		UPDATE guests
		SET first_name = $1, last_name = $2, name_key = $3, email = $4, phone = $5, plus_one_allowed = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.DB.ExecContext(ctx, query, g.FirstName, g.LastName, g.NameKey(), g.Email, g.Phone, g.PlusOneAllowed, g.UpdatedAt, g.ID)
	if err != nil {
		return translateGuestConflict(err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the guest; the RSVP goes with it and stickers stay.
func (r *guestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
