// Package main runs the wedding site API: guest directory, RSVPs and the
// shared sticker canvas relay.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Epiphane/wedding-site/config"
	_ "github.com/Epiphane/wedding-site/docs"
	"github.com/Epiphane/wedding-site/internal/adapters/auth"
	"github.com/Epiphane/wedding-site/internal/adapters/email"
	"github.com/Epiphane/wedding-site/internal/database"
	httpdelivery "github.com/Epiphane/wedding-site/internal/delivery/http"
	"github.com/Epiphane/wedding-site/internal/delivery/http/controllers"
	"github.com/Epiphane/wedding-site/internal/delivery/http/middleware"
	"github.com/Epiphane/wedding-site/internal/delivery/ws"
	"github.com/Epiphane/wedding-site/internal/domain"
	"github.com/Epiphane/wedding-site/internal/repository/sqlstore"
	"github.com/Epiphane/wedding-site/internal/services"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// @title Wedding Site API
// @version 1.0
// @description Guest directory, RSVPs and the shared sticker canvas.
// @BasePath /
// @securityDefinitions.basic AdminBasic
// @securityDefinitions.apikey AdminBearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /admin/login.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db, cfg.DBDriver); err != nil {
		return err
	}
	logger.Info("database ready", "driver", cfg.DBDriver)

	// Repositories
	guestRepo := sqlstore.NewGuestRepository(db)
	rsvpRepo := sqlstore.NewRSVPRepository(db)
	stickerRepo := sqlstore.NewStickerRepository(db)

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.AWS.Region,
			AccessKeyID:        cfg.AWS.AccessKeyID,
			SecretAccessKey:    cfg.AWS.SecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	// Services
	wedding := domain.WeddingDetails{Couple: cfg.Wedding.Couple, Date: cfg.Wedding.Date, Venue: cfg.Wedding.Venue}
	guestSvc := services.NewGuestService(guestRepo)
	rsvpSvc := services.NewRSVPService(guestRepo, rsvpRepo, emailSvc, wedding, logger)
	canvasSvc := services.NewCanvasService(stickerRepo)
	tokens := auth.NewJWT(cfg.JWTSecret)
	adminAuth, err := services.NewAdminAuthService(auth.NewBcryptHasher(0), tokens, tokens, cfg.AdminPassword, cfg.AdminTokenTTL)
	if err != nil {
		return fmt.Errorf("create admin auth: %w", err)
	}

	// Delivery
	relay := ws.NewRelay(logger, guestSvc, canvasSvc, cfg.AllowedOrigins)
	defer relay.Close()

	router := httpdelivery.NewRouter(httpdelivery.RouterDeps{
		Logger: logger,
		Auth:   adminAuth,
		Guests: controllers.NewGuestController(logger, guestSvc),
		RSVPs:  controllers.NewRSVPController(logger, rsvpSvc),
		Canvas: controllers.NewCanvasController(logger, canvasSvc, guestSvc, relay),
		Admin:  controllers.NewAdminController(logger, adminAuth),
		Relay:  relay,
	})
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		relay.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}
