package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Guest is an invited person. The normalized full name is unique.
// swagger:model Guest
type Guest struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	PlusOneAllowed bool      `json:"plus_one_allowed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Response       *RSVP     `json:"response,omitempty"`
}

// NewGuest returns a new Guest with the given fields. ID is set by the repository on create.
func NewGuest(firstName, lastName, email, phone string, plusOneAllowed bool, createdAt, updatedAt time.Time) *Guest {
	return &Guest{
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		Phone:          phone,
		PlusOneAllowed: plusOneAllowed,
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
}

// FullName returns "First Last".
func (g *Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// NameKey is the unique lookup key for the guest's name.
func (g *Guest) NameKey() string {
	return NormalizeName(g.FirstName + " " + g.LastName)
}

// Normalize trims the name parts and lower-cases the email in place.
func (g *Guest) Normalize() {
	g.FirstName = strings.Join(strings.Fields(g.FirstName), " ")
	g.LastName = strings.Join(strings.Fields(g.LastName), " ")
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	g.Phone = strings.TrimSpace(g.Phone)
}

// Validate returns the failing fields; nil means valid.
func (g *Guest) Validate() []string {
	var errs []string
	if strings.TrimSpace(g.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(g.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	email := strings.TrimSpace(g.Email)
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	return errs
}

// NormalizeName collapses whitespace and lower-cases a display name so that
// " Liz  PETERSEN" and "liz petersen" resolve to the same guest.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// GuestRepository defines storage for guests. Reads include the guest's RSVP when present.
type GuestRepository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id int64) (*Guest, error)
	GetByNameKey(ctx context.Context, nameKey string) (*Guest, error)
	List(ctx context.Context, params PaginationParams) ([]*Guest, int, error)
	Update(ctx context.Context, guest *Guest) error
	Delete(ctx context.Context, id int64) error
}

// GuestService defines the guest directory operations.
type GuestService interface {
	List(ctx context.Context, params PaginationParams) ([]*Guest, int, error)
	Get(ctx context.Context, id int64) (*Guest, error)
	Create(ctx context.Context, guest *Guest) error
	Update(ctx context.Context, guest *Guest) error
	Delete(ctx context.Context, id int64) error
	// LookupByName resolves a display name to a guest, ignoring case and extra whitespace.
	LookupByName(ctx context.Context, name string) (*Guest, error)
}
