package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Epiphane/wedding-site/internal/domain"
)

type canvasService struct {
	repo domain.StickerRepository
	now  func() time.Time

	// mu serializes read-modify-write of sticker patches so each patch sees the one stored before it.
	mu sync.Mutex
}

// NewCanvasService returns the canvas service backed by repo.
func NewCanvasService(repo domain.StickerRepository) domain.CanvasService {
	return &canvasService{repo: repo, now: time.Now}
}

func (s *canvasService) Place(ctx context.Context, owner *domain.Guest, in domain.StickerInput) (*domain.Sticker, error) {
	if owner == nil {
		return nil, domain.ErrUnidentified
	}
	if err := domain.NewValidationError(in.Validate()); err != nil {
		return nil, err
	}
	sticker := in.NewSticker(owner, domain.StorageTime(s.now()))
	if err := s.repo.Create(ctx, sticker); err != nil {
		return nil, fmt.Errorf("create sticker: %w", err)
	}
	return sticker, nil
}

func (s *canvasService) Update(ctx context.Context, id int64, patch domain.StickerPatch) (*domain.Sticker, error) {
	if err := domain.NewValidationError(patch.Validate()); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sticker, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sticker %d: %w", id, err)
	}
	patch.Apply(sticker)
	sticker.UpdatedAt = domain.StorageTime(s.now())
	if err := s.repo.Update(ctx, sticker); err != nil {
		return nil, fmt.Errorf("update sticker %d: %w", id, err)
	}
	return sticker, nil
}

func (s *canvasService) List(ctx context.Context) ([]*domain.Sticker, error) {
	stickers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stickers: %w", err)
	}
	return stickers, nil
}

func (s *canvasService) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Sticker, error) {
	stickers, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list stickers of guest %d: %w", ownerID, err)
	}
	return stickers, nil
}

func (s *canvasService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear canvas: %w", err)
	}
	return nil
}
