package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestStickerInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   StickerInput
		wantErr []string
	}{
		{
			name:  "text sticker",
			input: StickerInput{Type: StickerText, Content: "Hi!", X: 10, Y: 10, Scale: ptr(1.0)},
		},
		{
			name:  "image without scale",
			input: StickerInput{Type: StickerImage, Content: "❤️"},
		},
		{
			name:    "unknown type and empty content",
			input:   StickerInput{Type: "video", Content: "  "},
			wantErr: []string{`type must be "image" or "text"`, "content is required"},
		},
		{
			name:    "zero scale",
			input:   StickerInput{Type: StickerText, Content: "x", Scale: ptr(0.0)},
			wantErr: []string{"scale must be greater than 0"},
		},
		{
			name:    "content too long",
			input:   StickerInput{Type: StickerText, Content: strings.Repeat("a", MaxStickerContentRunes+1)},
			wantErr: []string{"content must be at most 500 characters"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.input.Validate())
		})
	}
}

func TestStickerInput_NewSticker(t *testing.T) {
	now := time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC)
	owner := &Guest{ID: 7, FirstName: "Liz", LastName: "Petersen"}

	s := StickerInput{Type: StickerText, Content: " Hi! ", X: 10, Y: 12, Rotation: 45}.NewSticker(owner, now)

	assert.Equal(t, int64(7), s.OwnerID)
	assert.Equal(t, "Liz Petersen", s.OwnerName)
	assert.Equal(t, "Hi!", s.Content)
	assert.Equal(t, 1.0, s.Scale)
	assert.Equal(t, 45.0, s.Rotation)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.UpdatedAt)
}

func TestStickerPatch_ApplyInArrivalOrder(t *testing.T) {
	s := &Sticker{ID: 1, Type: StickerText, Content: "Hi!", X: 10, Y: 10, Rotation: 0, Scale: 1}
	patches := []StickerPatch{
		{X: ptr(20.0), Y: ptr(30.0)},
		{Rotation: ptr(90.0)},
		{X: ptr(5.0), Scale: ptr(2.5)},
		{Content: ptr("Hello!")},
	}
	for _, p := range patches {
		require.Empty(t, p.Validate())
		p.Apply(s)
	}

	assert.Equal(t, &Sticker{ID: 1, Type: StickerText, Content: "Hello!", X: 5, Y: 30, Rotation: 90, Scale: 2.5}, s)
}

func TestStickerPatch_Validate(t *testing.T) {
	assert.Equal(t, []string{"at least one of x, y, rotation, scale, content is required"}, StickerPatch{}.Validate())
	assert.Equal(t, []string{"scale must be greater than 0"}, StickerPatch{Scale: ptr(-1.0)}.Validate())
	assert.Equal(t, []string{"content is required"}, StickerPatch{Content: ptr("")}.Validate())
	assert.Empty(t, StickerPatch{Rotation: ptr(0.0)}.Validate())
}
