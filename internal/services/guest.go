package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Epiphane/wedding-site/internal/domain"
)

type guestService struct {
	repo domain.GuestRepository
	now  func() time.Time
}

// NewGuestService returns the guest directory service.
func NewGuestService(repo domain.GuestRepository) domain.GuestService {
	return &guestService{repo: repo, now: time.Now}
}

func (s *guestService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	guests, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list guests: %w", err)
	}
	return guests, total, nil
}

func (s *guestService) Get(ctx context.Context, id int64) (*domain.Guest, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get guest %d: %w", id, err)
	}
	return g, nil
}

func (s *guestService) Create(ctx context.Context, g *domain.Guest) error {
	g.Normalize()
	if err := domain.NewValidationError(g.Validate()); err != nil {
		return err
	}
	now := domain.StorageTime(s.now())
	g.CreatedAt, g.UpdatedAt = now, now
	g.Response = nil
	if err := s.repo.Create(ctx, g); err != nil {
		return fmt.Errorf("create guest: %w", err)
	}
	return nil
}

// Update replaces the guest's editable fields. The RSVP is untouched.
func (s *guestService) Update(ctx context.Context, g *domain.Guest) error {
	g.Normalize()
	if err := domain.NewValidationError(g.Validate()); err != nil {
		return err
	}
	existing, err := s.repo.GetByID(ctx, g.ID)
	if err != nil {
		return fmt.Errorf("get guest %d: %w", g.ID, err)
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = domain.StorageTime(s.now())
	if err := s.repo.Update(ctx, g); err != nil {
		return fmt.Errorf("update guest %d: %w", g.ID, err)
	}
	g.Response = existing.Response
	return nil
}

func (s *guestService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete guest %d: %w", id, err)
	}
	return nil
}

func (s *guestService) LookupByName(ctx context.Context, name string) (*domain.Guest, error) {
	key := domain.NormalizeName(name)
	if key == "" {
		return nil, domain.NewValidationError([]string{"name is required"})
	}
	g, err := s.repo.GetByNameKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("lookup guest: %w", err)
	}
	return g, nil
}
