package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epiphane/wedding-site/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func newTestCanvas() (*canvasService, *fakeStickerRepo) {
	repo := newFakeStickerRepo()
	svc := NewCanvasService(repo).(*canvasService)
	svc.now = fixedNow(time.Date(2026, 8, 22, 20, 0, 0, 0, time.UTC))
	return svc, repo
}

func TestCanvasService_Place(t *testing.T) {
	ctx := context.Background()
	liz := &domain.Guest{ID: 2, FirstName: "Liz", LastName: "Petersen"}

	t.Run("stores with owner snapshot", func(t *testing.T) {
		svc, _ := newTestCanvas()
		s, err := svc.Place(ctx, liz, domain.StickerInput{Type: domain.StickerText, Content: "Hi!", X: 10, Y: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), s.ID)
		assert.Equal(t, int64(2), s.OwnerID)
		assert.Equal(t, "Liz Petersen", s.OwnerName)
		assert.Equal(t, 1.0, s.Scale)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, s, all[0])
	})

	t.Run("requires identity", func(t *testing.T) {
		svc, _ := newTestCanvas()
		_, err := svc.Place(ctx, nil, domain.StickerInput{Type: domain.StickerText, Content: "Hi!"})
		require.ErrorIs(t, err, domain.ErrUnidentified)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, _ := newTestCanvas()
		_, err := svc.Place(ctx, liz, domain.StickerInput{Type: "gif", Content: ""})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestCanvas()
		repo.err = errors.New("disk full")
		_, err := svc.Place(ctx, liz, domain.StickerInput{Type: domain.StickerImage, Content: "/img/a.png"})
		require.ErrorContains(t, err, "disk full")
	})
}

func TestCanvasService_Update_PatchesInArrivalOrder(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCanvas()
	placed, err := svc.Place(ctx, &domain.Guest{ID: 1, FirstName: "T", LastName: "S"}, domain.StickerInput{Type: domain.StickerText, Content: "a"})
	require.NoError(t, err)

	patches := []domain.StickerPatch{
		{X: ptr(5.0)},
		{Y: ptr(7.0), Rotation: ptr(30.0)},
		{X: ptr(9.0), Scale: ptr(2.0)},
		{Content: ptr(" b ")},
	}
	var got *domain.Sticker
	for _, p := range patches {
		got, err = svc.Update(ctx, placed.ID, p)
		require.NoError(t, err)
	}
	assert.Equal(t, 9.0, got.X)
	assert.Equal(t, 7.0, got.Y)
	assert.Equal(t, 30.0, got.Rotation)
	assert.Equal(t, 2.0, got.Scale)
	assert.Equal(t, "b", got.Content)

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, stored[0])
}

func TestCanvasService_Update_ConcurrentPatchesDoNotLoseFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCanvas()
	placed, err := svc.Place(ctx, &domain.Guest{ID: 1, FirstName: "T", LastName: "S"}, domain.StickerInput{Type: domain.StickerText, Content: "a"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Update(ctx, placed.ID, domain.StickerPatch{X: ptr(100.0)})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Update(ctx, placed.ID, domain.StickerPatch{Rotation: ptr(90.0)})
		assert.NoError(t, err)
	}()
	wg.Wait()

	stored, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored[0].X)
	assert.Equal(t, 90.0, stored[0].Rotation)
}

func TestCanvasService_Update_Errors(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCanvas()

	_, err := svc.Update(ctx, 404, domain.StickerPatch{X: ptr(1.0)})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, 1, domain.StickerPatch{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCanvasService_ListByOwnerAndClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCanvas()
	a := &domain.Guest{ID: 1, FirstName: "A", LastName: "A"}
	b := &domain.Guest{ID: 2, FirstName: "B", LastName: "B"}
	for _, owner := range []*domain.Guest{a, b, a} {
		_, err := svc.Place(ctx, owner, domain.StickerInput{Type: domain.StickerText, Content: "x"})
		require.NoError(t, err)
	}

	mine, err := svc.ListByOwner(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	require.NoError(t, svc.Clear(ctx))
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
