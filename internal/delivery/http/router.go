package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Epiphane/wedding-site/internal/delivery/http/controllers"
	"github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/delivery/http/middleware"
	"github.com/Epiphane/wedding-site/internal/domain"
)

// RouterDeps are the handlers and guards mounted by NewRouter.
type RouterDeps struct {
	Logger *slog.Logger
	Auth   domain.AdminAuthenticator
	Guests *controllers.GuestController
	RSVPs  *controllers.RSVPController
	Canvas *controllers.CanvasController
	Admin  *controllers.AdminController
	// Relay serves the canvas websocket.
	Relay http.Handler
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()
	admin := middleware.RequireAdmin(d.Auth, d.Logger)

	mux.HandleFunc("GET /up", health)

	// Guests
	mux.HandleFunc("POST /guests/lookup", d.Guests.Lookup)
	mux.HandleFunc("GET /guests/{guestID}/rsvp", d.RSVPs.Get)
	mux.HandleFunc("POST /guests/{guestID}/rsvp", d.RSVPs.Submit)
	mux.HandleFunc("GET /guests/{guestID}/stickers", d.Canvas.ListByGuest)

	// Canvas
	mux.HandleFunc("GET /canvas", d.Canvas.List)
	mux.Handle("GET /ws", d.Relay)

	// Admin
	mux.HandleFunc("POST /admin/login", d.Admin.Login)
	mux.HandleFunc("GET /admin/guests", admin(d.Guests.List))
	mux.HandleFunc("POST /admin/guests", admin(d.Guests.Create))
	mux.HandleFunc("GET /admin/guests/{guestID}", admin(d.Guests.Get))
	mux.HandleFunc("PUT /admin/guests/{guestID}", admin(d.Guests.Update))
	mux.HandleFunc("DELETE /admin/guests/{guestID}", admin(d.Guests.Delete))
	mux.HandleFunc("GET /admin/guests/{guestID}/rsvp", admin(d.RSVPs.AdminGet))
	mux.HandleFunc("GET /admin/rsvps/summary", admin(d.RSVPs.Summary))
	mux.HandleFunc("DELETE /admin/canvas", admin(d.Canvas.Clear))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} helpers.APIResponse
// @Router /up [get]
func health(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
