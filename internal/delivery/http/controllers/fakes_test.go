package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// decode unmarshals the envelope and, when data is non-nil, its data field into data.
func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), rr.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return helpers.APIResponse{Data: raw.Data, Error: raw.Error}
}

// fakeGuestService implements domain.GuestService.
type fakeGuestService struct {
	guests     []*domain.Guest
	total      int
	err        error
	lastGuest  *domain.Guest
	lastID     int64
	lastName   string
	lastParams domain.PaginationParams
}

func (f *fakeGuestService) List(_ context.Context, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	f.lastParams = params
	return f.guests, f.total, f.err
}

func (f *fakeGuestService) Get(_ context.Context, id int64) (*domain.Guest, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Guest{ID: id, FirstName: "Liz", LastName: "Petersen", Email: "liz@example.com"}, nil
}

func (f *fakeGuestService) Create(_ context.Context, g *domain.Guest) error {
	f.lastGuest = g
	if f.err != nil {
		return f.err
	}
	g.ID = 10
	return nil
}

func (f *fakeGuestService) Update(_ context.Context, g *domain.Guest) error {
	f.lastGuest = g
	return f.err
}

func (f *fakeGuestService) Delete(_ context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeGuestService) LookupByName(_ context.Context, name string) (*domain.Guest, error) {
	f.lastName = name
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Guest{ID: 2, FirstName: "Liz", LastName: "Petersen"}, nil
}

// fakeRSVPService implements domain.RSVPService.
type fakeRSVPService struct {
	err       error
	lastID    int64
	lastInput domain.RSVPInput
}

func (f *fakeRSVPService) Submit(_ context.Context, guestID int64, in domain.RSVPInput) (*domain.RSVP, error) {
	f.lastID, f.lastInput = guestID, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RSVP{ID: 1, GuestID: guestID, Attending: in.Attending, PlusOne: in.PlusOne, PlusOneName: in.PlusOneName}, nil
}

func (f *fakeRSVPService) Get(_ context.Context, guestID int64) (*domain.RSVP, error) {
	f.lastID = guestID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RSVP{ID: 1, GuestID: guestID, Attending: true}, nil
}

func (f *fakeRSVPService) Summary(context.Context) (*domain.RSVPSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RSVPSummary{Guests: 3, Responded: 2, Attending: 1, Declined: 1, Pending: 1}, nil
}

// fakeCanvasService implements domain.CanvasService.
type fakeCanvasService struct {
	stickers  []*domain.Sticker
	err       error
	lastOwner int64
}

func (f *fakeCanvasService) Place(context.Context, *domain.Guest, domain.StickerInput) (*domain.Sticker, error) {
	return nil, f.err
}

func (f *fakeCanvasService) Update(context.Context, int64, domain.StickerPatch) (*domain.Sticker, error) {
	return nil, f.err
}

func (f *fakeCanvasService) List(context.Context) ([]*domain.Sticker, error) {
	return f.stickers, f.err
}

func (f *fakeCanvasService) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Sticker, error) {
	f.lastOwner = ownerID
	return f.stickers, f.err
}

func (f *fakeCanvasService) Clear(context.Context) error { return f.err }

// fakeClearer implements CanvasClearer.
type fakeClearer struct {
	calls int
	err   error
}

func (f *fakeClearer) ClearCanvas(context.Context) error {
	f.calls++
	return f.err
}

// fakeAdminAuth implements domain.AdminAuthenticator.
type fakeAdminAuth struct {
	err error
}

func (f *fakeAdminAuth) CheckPassword(password string) bool { return password == "thomas" }

func (f *fakeAdminAuth) Login(_ context.Context, password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if password != "thomas" {
		return "", domain.ErrInvalidCredentials
	}
	return "signed-token", nil
}

func (f *fakeAdminAuth) VerifyToken(string) error { return nil }
