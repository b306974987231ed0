package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"portfolio/middleware"
	"portfolio/models"

	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// writeServiceError maps a service failure to its HTTP status. Validation
// messages are echoed back; everything else gets a fixed message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		middleware.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, models.ErrAuthentication):
		middleware.WriteUnauthorized(w)
	case errors.Is(err, models.ErrAuthorization):
		middleware.WriteError(w, http.StatusForbidden, "forbidden", "You do not have access to this resource")
	case errors.Is(err, models.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, models.ErrConflict):
		middleware.WriteError(w, http.StatusConflict, "conflict", "Resource already exists")
	default:
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		middleware.WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(text))
}
