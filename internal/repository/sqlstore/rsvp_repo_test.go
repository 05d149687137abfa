package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Epiphane/wedding-site/internal/domain"
)

func TestRSVPRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	t.Run("sets id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`(?s)INSERT INTO rsvps.*ON CONFLICT \(guest_id\) DO UPDATE`).
			WithArgs(int64(2), true, true, "Sam", "", now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		rsvp := &domain.RSVP{GuestID: 2, Attending: true, PlusOne: true, PlusOneName: "Sam", RespondedAt: now}
		require.NoError(t, NewRSVPRepository(db).Upsert(ctx, rsvp))
		assert.Equal(t, int64(11), rsvp.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing guest", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO rsvps`).WillReturnError(&pq.Error{Code: "23503"})

		err = NewRSVPRepository(db).Upsert(ctx, &domain.RSVP{GuestID: 99, RespondedAt: now})
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRSVPRepository_GetByGuestID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM rsvps`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "guest_id", "attending", "plus_one", "plus_one_name", "message", "responded_at"}))

	_, err = NewRSVPRepository(db).GetByGuestID(context.Background(), 8)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRSVPRepository_Summary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM rsvps`).
		WillReturnRows(sqlmock.NewRows([]string{"guests", "responded", "attending", "plus_ones"}).AddRow(10, 6, 4, 1))

	s, err := NewRSVPRepository(db).Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RSVPSummary{Guests: 10, Responded: 6, Attending: 4, Declined: 2, Pending: 4, PlusOnes: 1}, *s)
	require.NoError(t, mock.ExpectationsWereMet())
}
