package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/domain"
)

const msgGuestNotFound = "guest not found"

// LookupGuestRequest is the request body for POST /guests/lookup.
type LookupGuestRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (l LookupGuestRequest) Validate() []string {
	if strings.TrimSpace(l.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// GuestRequest is the request body for POST /admin/guests and PUT /admin/guests/{guestID}.
type GuestRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	PlusOneAllowed bool   `json:"plus_one_allowed"`
}

// Validate implements Validator with the same rules the guest service enforces.
func (g GuestRequest) Validate() []string {
	return g.toGuest(0).Validate()
}

func (g GuestRequest) toGuest(id int64) *domain.Guest {
	return &domain.Guest{
		ID:             id,
		FirstName:      g.FirstName,
		LastName:       g.LastName,
		Email:          g.Email,
		Phone:          g.Phone,
		PlusOneAllowed: g.PlusOneAllowed,
	}
}

// GuestSuccessResponse is the success envelope for endpoints returning one guest.
type GuestSuccessResponse struct {
	Data  *domain.Guest     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGuestsResponse is the data of GET /admin/guests.
type ListGuestsResponse struct {
	Items      []*domain.Guest        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListGuestsSuccessResponse is the success envelope for GET /admin/guests.
type ListGuestsSuccessResponse struct {
	Data  ListGuestsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type GuestController struct {
	Logger  *slog.Logger
	Service domain.GuestService
}

func NewGuestController(logger *slog.Logger, svc domain.GuestService) *GuestController {
	return &GuestController{
		Logger:  logger,
		Service: svc,
	}
}

// Lookup godoc
// @Summary Find a guest by name
// @Description Resolves a full name to an invited guest. Case and extra whitespace are ignored.
// @Tags guests
// @Accept json
// @Produce json
// @Param body body LookupGuestRequest true "Full name"
// @Success 200 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/lookup [post]
func (c *GuestController) Lookup(w http.ResponseWriter, r *http.Request) {
	var req LookupGuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest, err := c.Service.LookupByName(r.Context(), req.Name)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "we couldn't find that name on the guest list")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// List godoc
// @Summary List guests
// @Description Paginated guest list ordered by last name, each with its RSVP when present.
// @Tags admin
// @Produce json
// @Security AdminBasic
// @Security AdminBearer
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} controllers.ListGuestsSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests [get]
func (c *GuestController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	guests, total, err := c.Service.List(r.Context(), params)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	if guests == nil {
		guests = []*domain.Guest{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListGuestsResponse{Items: guests, Pagination: helpers.NewPaginationMeta(params, total)})
}

// Create godoc
// @Summary Add a guest
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminBasic
// @Security AdminBearer
// @Param body body GuestRequest true "Guest"
// @Success 201 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name or email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests [post]
func (c *GuestController) Create(w http.ResponseWriter, r *http.Request) {
	var req GuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest := req.toGuest(0)
	if err := c.Service.Create(r.Context(), guest); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, guest)
}

// Get godoc
// @Summary Get a guest
// @Tags admin
// @Produce json
// @Security AdminBasic
// @Security AdminBearer
// @Param guestID path int true "Guest ID"
// @Success 200 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests/{guestID} [get]
func (c *GuestController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "guestID")
	if !ok {
		return
	}
	guest, err := c.Service.Get(r.Context(), id)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// Update godoc
// @Summary Replace a guest's details
// @Description Replaces every editable field. The guest's RSVP is kept.
// @Tags admin
// @Accept json
// @Produce json
// @Security AdminBasic
// @Security AdminBearer
// @Param guestID path int true "Guest ID"
// @Param body body GuestRequest true "Guest"
// @Success 200 {object} controllers.GuestSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (name or email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests/{guestID} [put]
func (c *GuestController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "guestID")
	if !ok {
		return
	}
	var req GuestRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	guest := req.toGuest(id)
	if err := c.Service.Update(r.Context(), guest); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, guest)
}

// Delete godoc
// @Summary Remove a guest
// @Description Removes the guest and their RSVP. Stickers they placed stay on the canvas.
// @Tags admin
// @Security AdminBasic
// @Security AdminBearer
// @Param guestID path int true "Guest ID"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests/{guestID} [delete]
func (c *GuestController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "guestID")
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
