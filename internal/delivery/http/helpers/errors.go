package helpers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Epiphane/wedding-site/internal/domain"
)

// Messages for the non-descriptive error responses.
const (
	MsgConflict = "a guest with that name or email already exists"
	MsgInternal = "internal server error"
)

// WriteServiceError maps a service error onto the envelope. Unexpected errors
// are logged and reported as a 500 without their detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFoundMsg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(verr.Fields, "; "))
	case errors.Is(err, domain.ErrPlusOneNotAllowed):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, domain.ErrPlusOneNotAllowed.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, notFoundMsg)
	case domain.IsDuplicate(err):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, MsgConflict)
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, MsgInternal)
	}
}
