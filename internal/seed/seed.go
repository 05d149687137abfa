// Package seed loads the invited guest list into the guest directory.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Epiphane/wedding-site/internal/domain"
)

// GuestRecord is one entry of a guest-list file.
type GuestRecord struct {
	FirstName      string `yaml:"first_name"`
	LastName       string `yaml:"last_name"`
	Email          string `yaml:"email"`
	Phone          string `yaml:"phone"`
	PlusOneAllowed bool   `yaml:"plus_one_allowed"`
}

// Result reports what Run did, by full name.
type Result struct {
	Created []string
	Skipped []string
}

// DefaultGuests is the list seeded when no file is given.
func DefaultGuests() []GuestRecord {
	return []GuestRecord{
		{FirstName: "Thomas", LastName: "Steinke", Email: "exyphnos@gmail.com"},
		{FirstName: "Liz", LastName: "Petersen", Email: "lizziepetersen66@gmail.com"},
		{FirstName: "Elliot", LastName: "Fiske", Email: "elliotfiske@gmail.com"},
	}
}

// LoadGuests decodes a YAML list of guests. Unknown keys are rejected.
func LoadGuests(r io.Reader) ([]GuestRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var records []GuestRecord
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode guest list: %w", err)
	}
	return records, nil
}

// Run creates each guest. Guests whose name or email already exists are
// skipped; any other failure stops the run.
func Run(ctx context.Context, guests domain.GuestService, records []GuestRecord, logger *slog.Logger) (Result, error) {
	var res Result
	for i, rec := range records {
		g := domain.NewGuest(rec.FirstName, rec.LastName, rec.Email, rec.Phone, rec.PlusOneAllowed, time.Time{}, time.Time{})
		name := g.FullName()
		err := guests.Create(ctx, g)
		switch {
		case err == nil:
			logger.Info("guest created", "id", g.ID, "name", name)
			res.Created = append(res.Created, name)
		case domain.IsDuplicate(err):
			logger.Info("guest skipped", "name", name, "reason", err.Error())
			res.Skipped = append(res.Skipped, name)
		default:
			return res, fmt.Errorf("guest %d (%s): %w", i+1, name, err)
		}
	}
	return res, nil
}
