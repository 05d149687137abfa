package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/domain"
)

const msgNoRSVP = "no RSVP yet"

// SubmitRSVPRequest is the request body for POST /guests/{guestID}/rsvp.
type SubmitRSVPRequest struct {
	Attending   *bool  `json:"attending"`
	PlusOne     bool   `json:"plus_one"`
	PlusOneName string `json:"plus_one_name"`
	Message     string `json:"message"`
}

// Validate implements Validator.
func (s SubmitRSVPRequest) Validate() []string {
	if s.Attending == nil {
		return []string{"attending is required"}
	}
	return nil
}

// RSVPSuccessResponse is the success envelope for endpoints returning one RSVP.
type RSVPSuccessResponse struct {
	Data  *domain.RSVP      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RSVPSummarySuccessResponse is the success envelope for GET /admin/rsvps/summary.
type RSVPSummarySuccessResponse struct {
	Data  *domain.RSVPSummary `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Get godoc
// @Summary Get a guest's RSVP
// @Tags rsvp
// @Produce json
// @Param guestID path int true "Guest ID"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (unknown guest or no RSVP yet)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/{guestID}/rsvp [get]
func (c *RSVPController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "guestID")
	if !ok {
		return
	}
	rsvp, err := c.Service.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNoResponse) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, msgNoRSVP)
		return
	}
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// AdminGet godoc
// @Summary Get a guest's RSVP (admin)
// @Tags admin
// @Produce json
// @Security AdminBasic
// @Security AdminBearer
// @Param guestID path int true "Guest ID"
// @Success 200 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/guests/{guestID}/rsvp [get]
func (c *RSVPController) AdminGet(w http.ResponseWriter, r *http.Request) {
	c.Get(w, r)
}

// Submit godoc
// @Summary Submit or replace an RSVP
// @Description Stores the guest's response, replacing any earlier one, and emails a confirmation.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param guestID path int true "Guest ID"
// @Param body body SubmitRSVPRequest true "Response"
// @Success 201 {object} controllers.RSVPSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /guests/{guestID}/rsvp [post]
func (c *RSVPController) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := helpers.PathID(w, r, "guestID")
	if !ok {
		return
	}
	var req SubmitRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, err := c.Service.Submit(r.Context(), id, domain.RSVPInput{
		Attending:   *req.Attending,
		PlusOne:     req.PlusOne,
		PlusOneName: req.PlusOneName,
		Message:     req.Message,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, msgGuestNotFound)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, rsvp)
}

// Summary godoc
// @Summary RSVP counts
// @Tags admin
// @Produce json
// @Security AdminBasic
// @Security AdminBearer
// @Success 200 {object} controllers.RSVPSummarySuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/rsvps/summary [get]
func (c *RSVPController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Service.Summary(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}
