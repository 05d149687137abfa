package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Epiphane/wedding-site/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// fakeGuestRepo implements domain.GuestRepository in memory.
type fakeGuestRepo struct {
	mu     sync.Mutex
	nextID int64
	guests map[int64]*domain.Guest
	err    error
}

func newFakeGuestRepo(guests ...*domain.Guest) *fakeGuestRepo {
	f := &fakeGuestRepo{guests: make(map[int64]*domain.Guest)}
	for _, g := range guests {
		f.nextID++
		if g.ID == 0 {
			g.ID = f.nextID
		}
		f.guests[g.ID] = g
	}
	return f
}

func (f *fakeGuestRepo) Create(_ context.Context, g *domain.Guest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.guests {
		if existing.NameKey() == g.NameKey() {
			return domain.ErrDuplicateName
		}
		if existing.Email == g.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.nextID++
	g.ID = f.nextID
	cp := *g
	f.guests[g.ID] = &cp
	return nil
}

func (f *fakeGuestRepo) GetByID(_ context.Context, id int64) (*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	g, ok := f.guests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGuestRepo) GetByNameKey(_ context.Context, key string) (*domain.Guest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.guests {
		if g.NameKey() == key {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGuestRepo) List(_ context.Context, params domain.PaginationParams) ([]*domain.Guest, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	all := make([]*domain.Guest, 0, len(f.guests))
	for _, g := range f.guests {
		all = append(all, g)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	start := min(params.Offset(), len(all))
	end := min(start+params.PageSize, len(all))
	return all[start:end], len(all), nil
}

func (f *fakeGuestRepo) Update(_ context.Context, g *domain.Guest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guests[g.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range f.guests {
		if id != g.ID && existing.Email == g.Email {
			return domain.ErrDuplicateEmail
		}
	}
	cp := *g
	f.guests[g.ID] = &cp
	return nil
}

func (f *fakeGuestRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.guests[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.guests, id)
	return nil
}

// fakeRSVPRepo implements domain.RSVPRepository in memory.
type fakeRSVPRepo struct {
	nextID  int64
	byGuest map[int64]*domain.RSVP
	err     error
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byGuest: make(map[int64]*domain.RSVP)}
}

func (f *fakeRSVPRepo) Upsert(_ context.Context, r *domain.RSVP) error {
	if f.err != nil {
		return f.err
	}
	if existing, ok := f.byGuest[r.GuestID]; ok {
		r.ID = existing.ID
	} else {
		f.nextID++
		r.ID = f.nextID
	}
	cp := *r
	f.byGuest[r.GuestID] = &cp
	return nil
}

func (f *fakeRSVPRepo) GetByGuestID(_ context.Context, guestID int64) (*domain.RSVP, error) {
	if f.err != nil {
		return nil, f.err
	}
	r, ok := f.byGuest[guestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRSVPRepo) Summary(context.Context) (*domain.RSVPSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.RSVPSummary{Responded: len(f.byGuest)}, nil
}

// fakeStickerRepo implements domain.StickerRepository in memory.
type fakeStickerRepo struct {
	mu       sync.Mutex
	nextID   int64
	stickers map[int64]*domain.Sticker
	err      error
}

func newFakeStickerRepo() *fakeStickerRepo {
	return &fakeStickerRepo{stickers: make(map[int64]*domain.Sticker)}
}

func (f *fakeStickerRepo) Create(_ context.Context, s *domain.Sticker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.nextID++
	s.ID = f.nextID
	cp := *s
	f.stickers[s.ID] = &cp
	return nil
}

func (f *fakeStickerRepo) GetByID(_ context.Context, id int64) (*domain.Sticker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.stickers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStickerRepo) Update(_ context.Context, s *domain.Sticker) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.stickers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	f.stickers[s.ID] = &cp
	return nil
}

func (f *fakeStickerRepo) List(context.Context) ([]*domain.Sticker, error) {
	return f.filter(func(*domain.Sticker) bool { return true }), nil
}

func (f *fakeStickerRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Sticker, error) {
	return f.filter(func(s *domain.Sticker) bool { return s.OwnerID == ownerID }), nil
}

func (f *fakeStickerRepo) filter(keep func(*domain.Sticker) bool) []*domain.Sticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Sticker, 0)
	for _, s := range f.stickers {
		if keep(s) {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeStickerRepo) DeleteAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.stickers = make(map[int64]*domain.Sticker)
	return nil
}

// fakeEmailService records confirmations.
type fakeEmailService struct {
	sent []*domain.RSVPConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendRSVPConfirmation(_ context.Context, data *domain.RSVPConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeMailer implements domain.Mailer.
type fakeMailer struct {
	sent []domain.EmailMessage
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeRenderer implements domain.EmailTemplateRenderer.
type fakeRenderer struct {
	name string
	err  error
}

func (f *fakeRenderer) Render(name string, _ any) (string, string, string, error) {
	f.name = name
	if f.err != nil {
		return "", "", "", f.err
	}
	return "subject", "<p>html</p>", "text", nil
}

// fakePasswordHasher implements domain.PasswordHasher.
type fakePasswordHasher struct {
	saltErr error
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return "salt", f.saltErr }
func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// fakeTokens implements domain.TokenIssuer and domain.TokenVerifier.
type fakeTokens struct {
	issued []time.Duration
	roles  []string
	err    error
	verify error
}

func (f *fakeTokens) Issue(subject string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued = append(f.issued, expiry)
	return "token-" + subject, nil
}

func (f *fakeTokens) Verify(token string) (string, []string, error) {
	if f.verify != nil {
		return "", nil, f.verify
	}
	if token == "" {
		return "", nil, errors.New("empty token")
	}
	return "admin", f.roles, nil
}
