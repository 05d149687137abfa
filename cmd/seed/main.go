// Package main seeds the guest directory from a YAML guest list, or from the
// built-in default guests when no file is given.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/Epiphane/wedding-site/config"
	"github.com/Epiphane/wedding-site/internal/database"
	"github.com/Epiphane/wedding-site/internal/repository/sqlstore"
	"github.com/Epiphane/wedding-site/internal/seed"
	"github.com/Epiphane/wedding-site/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var filePath string
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.StringVarP(&filePath, "file", "f", "", "YAML guest list (default: built-in guests)")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := config.NewLogger(cfg)

	records := seed.DefaultGuests()
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer f.Close()
		if records, err = seed.LoadGuests(f); err != nil {
			return err
		}
	}

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
		return err
	}

	res, err := seed.Run(ctx, services.NewGuestService(sqlstore.NewGuestRepository(db)), records, logger)
	fmt.Printf("created %d, skipped %d existing\n", len(res.Created), len(res.Skipped))
	return err
}
