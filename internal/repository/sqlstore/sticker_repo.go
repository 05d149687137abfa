package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Epiphane/wedding-site/internal/domain"
)

const stickerColumns = `id, owner_id, owner_name, type, content, x, y, rotation, scale, created_at, updated_at`

type stickerRepository struct {
	DB *sql.DB
}

func NewStickerRepository(db *sql.DB) domain.StickerRepository {
	return &stickerRepository{DB: db}
}

func scanSticker(row rowScanner) (*domain.Sticker, error) {
	s := &domain.Sticker{}
	err := row.Scan(&s.ID, &s.OwnerID, &s.OwnerName, &s.Type, &s.Content, &s.X, &s.Y, &s.Rotation, &s.Scale, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, s.UpdatedAt = s.CreatedAt.UTC(), s.UpdatedAt.UTC()
	return s, nil
}

func (r *stickerRepository) Create(ctx context.Context, s *domain.Sticker) error {
	query := `
		INSERT INTO stickers (owner_id, owner_name, type, content, x, y, rotation, scale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, s.OwnerID, s.OwnerName, string(s.Type), s.Content, s.X, s.Y, s.Rotation, s.Scale, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *stickerRepository) GetByID(ctx context.Context, id int64) (*domain.Sticker, error) {
	s, err := scanSticker(r.DB.QueryRowContext(ctx, `SELECT `+stickerColumns+` FROM stickers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return s, err
}

func (r *stickerRepository) Update(ctx context.Context, s *domain.Sticker) error {
	query := `
		UPDATE stickers
		SET content = $1, x = $2, y = $3, rotation = $4, scale = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := r.DB.ExecContext(ctx, query, s.Content, s.X, s.Y, s.Rotation, s.Scale, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns every sticker in placement order.
func (r *stickerRepository) List(ctx context.Context) ([]*domain.Sticker, error) {
	return r.query(ctx, `SELECT `+stickerColumns+` FROM stickers ORDER BY id`)
}

func (r *stickerRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Sticker, error) {
	return r.query(ctx, `SELECT `+stickerColumns+` FROM stickers WHERE owner_id = $1 ORDER BY id`, ownerID)
}

func (r *stickerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM stickers`)
	return err
}

func (r *stickerRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Sticker, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	stickers := make([]*domain.Sticker, 0)
	for rows.Next() {
		s, err := scanSticker(rows)
		if err != nil {
			return nil, err
		}
		stickers = append(stickers, s)
	}
	return stickers, rows.Err()
}
