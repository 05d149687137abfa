package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/domain"
)

// CanvasClearer clears the canvas and notifies connected clients.
type CanvasClearer interface {
	ClearCanvas(ctx context.Context) error
}

// StickersSuccessResponse is the success envelope for sticker lists.
type StickersSuccessResponse struct {
	Data  []*domain.Sticker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type CanvasController struct {
	Logger  *slog.Logger
	Service domain.CanvasService
	Guests  domain.GuestService
	Clearer CanvasClearer
}

func NewCanvasController(logger *slog.Logger, svc domain.CanvasService, guests domain.GuestService, clearer CanvasClearer) *CanvasController {
	return &CanvasController{
		Logger:  logger,
		Service: svc,
		Guests:  guests,
		Clearer: clearer,
	}
}

// List godoc
// @Summary Fetch every sticker on the canvas
// @Description Full canvas state in placement order. Live changes arrive over /ws.
// @Tags canvas
// @Produce json
// @Success 200 {object} controllers.StickersSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /canvas [get]
func (c *CanvasController) List(w http.ResponseWriter, r *http.Request) {
	stickers, err := c.Service.List(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	writeStickers(w, stickers)
}

// ListByGuest godoc
// @Summary Stickers placed by one guest
// @Tags canvas
// @Produce json
// @Param guestID path int true "Guest ID"
// @Success 200 {object} controllers.StickersSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/{guestID}/stickers [get]
func (c *CanvasController) ListByGuest(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "guestID")
	if !ok {
		return
	}
	if _, err := c.Guests.Get(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	stickers, err := c.Service.ListByOwner(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	writeStickers(w, stickers)
}

// Clear godoc
// @Summary Remove every sticker
// @Description Clears the canvas; connected clients receive canvas.cleared.
// @Tags admin
// @Security AdminBasic
// @Security AdminBearer
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/canvas [delete]
func (c *CanvasController) Clear(w http.ResponseWriter, r *http.Request) {
	if err := c.Clearer.ClearCanvas(r.Context()); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	c.Logger.InfoContext(r.Context(), "canvas cleared by admin")
	w.WriteHeader(http.StatusNoContent)
}

func writeStickers(w http.ResponseWriter, stickers []*domain.Sticker) {
	if stickers == nil {
		stickers = []*domain.Sticker{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stickers)
}
