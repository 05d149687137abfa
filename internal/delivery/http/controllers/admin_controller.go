package controllers

import (
	"log/slog"
	"net/http"

	"github.com/Epiphane/wedding-site/internal/delivery/http/helpers"
	"github.com/Epiphane/wedding-site/internal/domain"
)

// LoginRequest is the request body for POST /admin/login.
type LoginRequest struct {
	Password string `json:"password"`
}

// Validate implements Validator.
func (l LoginRequest) Validate() []string {
	if l.Password == "" {
		return []string{"password is required"}
	}
	return nil
}

// LoginResponse is the data of a successful admin login.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// LoginSuccessResponse is the success envelope for POST /admin/login.
type LoginSuccessResponse struct {
	Data  LoginResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AdminController struct {
	Logger *slog.Logger
	Auth   domain.AdminAuthenticator
}

func NewAdminController(logger *slog.Logger, auth domain.AdminAuthenticator) *AdminController {
	return &AdminController{
		Logger: logger,
		Auth:   auth,
	}
}

// Login godoc
// @Summary Exchange the admin password for a bearer token
// @Tags admin
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Admin password"
// @Success 200 {object} controllers.LoginSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/login [post]
func (c *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Auth.Login(r.Context(), req.Password)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer"})
}
