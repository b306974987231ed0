package handlers

import (
	"context"
	"errors"
	"mime"
	"net/http"

	"portfolio/metrics"
	"portfolio/middleware"
	"portfolio/models"
)

type Authenticator interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (string, error)
}

type AuthHandler struct {
	auth    Authenticator
	metrics *metrics.Collector
}

func NewAuthHandler(auth Authenticator, m *metrics.Collector) *AuthHandler {
	return &AuthHandler{
		auth:    auth,
		metrics: m,
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// readCredentials accepts a JSON body, a urlencoded or multipart form, or
// query parameters.
func readCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var c credentials
		ok := decodeJSON(w, r, &c)
		return c, ok
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return credentials{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}, true
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}

	if err := h.auth.Register(r.Context(), creds.Username, creds.Password); err != nil {
		h.metrics.RecordRegistration(registrationResult(err))
		writeServiceError(w, r, err)
		return
	}

	h.metrics.RecordRegistration("success")
	writeText(w, http.StatusOK, "User registered successfully")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := readCredentials(w, r)
	if !ok {
		return
	}
	if creds.Username == "" || creds.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	token, err := h.auth.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if errors.Is(err, models.ErrAuthentication) {
			h.metrics.RecordLogin("failure")
		}
		writeServiceError(w, r, err)
		return
	}

	h.metrics.RecordLogin("success")
	writeText(w, http.StatusOK, token)
}

func (h *AuthHandler) Protected(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "You accessed a protected API!")
}

func registrationResult(err error) string {
	switch {
	case errors.Is(err, models.ErrConflict):
		return "conflict"
	case errors.Is(err, models.ErrValidation):
		return "invalid"
	default:
		return "error"
	}
}
