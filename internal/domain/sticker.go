package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxStickerContentRunes bounds sticker text and image references.
const MaxStickerContentRunes = 500

// StickerType is the kind of canvas item.
type StickerType string

const (
	StickerImage StickerType = "image"
	StickerText  StickerType = "text"
)

// Valid reports whether t is a known sticker type.
func (t StickerType) Valid() bool {
	return t == StickerImage || t == StickerText
}

// Sticker is an item placed on the shared canvas.
// swagger:model Sticker
type Sticker struct {
	ID        int64       `json:"id"`
	OwnerID   int64       `json:"owner_id"`
	OwnerName string      `json:"owner_name"`
	Type      StickerType `json:"type"`
	Content   string      `json:"content"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Rotation  float64     `json:"rotation"`
	Scale     float64     `json:"scale"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// StickerInput describes a sticker being placed. Scale defaults to 1 when omitted.
type StickerInput struct {
	Type     StickerType `json:"type"`
	Content  string      `json:"content"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Rotation float64     `json:"rotation"`
	Scale    *float64    `json:"scale,omitempty"`
}

// Validate returns the failing fields; nil means valid.
func (in StickerInput) Validate() []string {
	var errs []string
	if !in.Type.Valid() {
		errs = append(errs, `type must be "image" or "text"`)
	}
	errs = append(errs, validateContent(in.Content)...)
	if in.Scale != nil && *in.Scale <= 0 {
		errs = append(errs, "scale must be greater than 0")
	}
	return errs
}

// NewSticker builds the sticker owned by owner from in.
func (in StickerInput) NewSticker(owner *Guest, now time.Time) *Sticker {
	scale := 1.0
	if in.Scale != nil {
		scale = *in.Scale
	}
	return &Sticker{
		OwnerID:   owner.ID,
		OwnerName: owner.FullName(),
		Type:      in.Type,
		Content:   strings.TrimSpace(in.Content),
		X:         in.X,
		Y:         in.Y,
		Rotation:  in.Rotation,
		Scale:     scale,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StickerPatch is a partial update; nil fields are left unchanged.
type StickerPatch struct {
	X        *float64 `json:"x,omitempty"`
	Y        *float64 `json:"y,omitempty"`
	Rotation *float64 `json:"rotation,omitempty"`
	Scale    *float64 `json:"scale,omitempty"`
	Content  *string  `json:"content,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p StickerPatch) Empty() bool {
	return p.X == nil && p.Y == nil && p.Rotation == nil && p.Scale == nil && p.Content == nil
}

// Validate returns the failing fields; nil means valid.
func (p StickerPatch) Validate() []string {
	var errs []string
	if p.Empty() {
		errs = append(errs, "at least one of x, y, rotation, scale, content is required")
	}
	if p.Scale != nil && *p.Scale <= 0 {
		errs = append(errs, "scale must be greater than 0")
	}
	if p.Content != nil {
		errs = append(errs, validateContent(*p.Content)...)
	}
	return errs
}

// Apply overwrites the fields of s that the patch sets.
func (p StickerPatch) Apply(s *Sticker) {
	if p.X != nil {
		s.X = *p.X
	}
	if p.Y != nil {
		s.Y = *p.Y
	}
	if p.Rotation != nil {
		s.Rotation = *p.Rotation
	}
	if p.Scale != nil {
		s.Scale = *p.Scale
	}
	if p.Content != nil {
		s.Content = strings.TrimSpace(*p.Content)
	}
}

func validateContent(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return []string{"content is required"}
	}
	if utf8.RuneCountInString(content) > MaxStickerContentRunes {
		return []string{"content must be at most 500 characters"}
	}
	return nil
}

// StickerRepository defines storage for canvas stickers.
type StickerRepository interface {
	Create(ctx context.Context, sticker *Sticker) error
	GetByID(ctx context.Context, id int64) (*Sticker, error)
	// Update overwrites the mutable fields of the stored sticker.
	Update(ctx context.Context, sticker *Sticker) error
	List(ctx context.Context) ([]*Sticker, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Sticker, error)
	DeleteAll(ctx context.Context) error
}

// CanvasService defines the canvas operations behind the relay.
// Updates carry no version: the last one stored wins.
type CanvasService interface {
	Place(ctx context.Context, owner *Guest, input StickerInput) (*Sticker, error)
	Update(ctx context.Context, id int64, patch StickerPatch) (*Sticker, error)
	List(ctx context.Context) ([]*Sticker, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Sticker, error)
	Clear(ctx context.Context) error
}
