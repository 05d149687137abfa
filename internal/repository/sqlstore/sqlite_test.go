package sqlstore

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epiphane/wedding-site/internal/database"
	"github.com/Epiphane/wedding-site/internal/domain"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.DriverSQLite, "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.EnsureSchema(ctx, db, database.DriverSQLite))
	return db
}

func TestSQLite_GuestLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	guests := NewGuestRepository(db)
	rsvps := NewRSVPRepository(db)
	stickers := NewStickerRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	liz := domain.NewGuest("Liz", "Petersen", "liz@example.com", "", true, now, now)
	require.NoError(t, guests.Create(ctx, liz))
	require.NotZero(t, liz.ID)

	err := guests.Create(ctx, domain.NewGuest("LIZ", "petersen", "other@example.com", "", false, now, now))
	require.ErrorIs(t, err, domain.ErrDuplicateName)
	err = guests.Create(ctx, domain.NewGuest("Elizabeth", "Petersen", "liz@example.com", "", false, now, now))
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	found, err := guests.GetByNameKey(ctx, "liz petersen")
	require.NoError(t, err)
	assert.Equal(t, liz.ID, found.ID)
	assert.Nil(t, found.Response)
	assert.True(t, found.PlusOneAllowed)

	first := &domain.RSVP{GuestID: liz.ID, Attending: true, PlusOne: true, PlusOneName: "Sam", RespondedAt: now}
	require.NoError(t, rsvps.Upsert(ctx, first))
	second := &domain.RSVP{GuestID: liz.ID, Attending: false, RespondedAt: now.Add(time.Minute)}
	require.NoError(t, rsvps.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	found, err = guests.GetByID(ctx, liz.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Response)
	assert.False(t, found.Response.Attending)
	assert.Empty(t, found.Response.PlusOneName)

	summary, err := rsvps.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.RSVPSummary{Guests: 1, Responded: 1, Declined: 1}, *summary)

	require.ErrorIs(t, rsvps.Upsert(ctx, &domain.RSVP{GuestID: 999, RespondedAt: now}), domain.ErrNotFound)

	s := &domain.Sticker{OwnerID: liz.ID, OwnerName: liz.FullName(), Type: domain.StickerText, Content: "hi", Scale: 1, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, stickers.Create(ctx, s))

	require.NoError(t, guests.Delete(ctx, liz.ID))
	_, err = rsvps.GetByGuestID(ctx, liz.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	left, err := stickers.ListByOwner(ctx, liz.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "Liz Petersen", left[0].OwnerName)
}

func TestSQLite_StickerUpdateAndClear(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	stickers := NewStickerRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	s := &domain.Sticker{OwnerID: 1, OwnerName: "Thomas Steinke", Type: domain.StickerImage, Content: "/img/cake.png", X: 1, Y: 2, Scale: 1, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, stickers.Create(ctx, s))

	s.X, s.Rotation = 50, 90
	require.NoError(t, stickers.Update(ctx, s))

	got, err := stickers.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, got.X)
	assert.Equal(t, 90.0, got.Rotation)
	assert.Equal(t, domain.StickerImage, got.Type)

	require.NoError(t, stickers.DeleteAll(ctx))
	all, err := stickers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = stickers.GetByID(ctx, s.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
