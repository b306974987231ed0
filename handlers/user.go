package handlers

import (
	"context"
	"net/http"

	"portfolio/middleware"
	"portfolio/models"
)

type ProfileService interface {
	GetProfile(ctx context.Context, principal, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, principal, username string, fields models.ProfileFields) error
	DeleteAccount(ctx context.Context, principal, username string) error
}

type UserHandler struct {
	profiles ProfileService
}

func NewUserHandler(profiles ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())

	user, err := h.profiles.GetProfile(r.Context(), username, username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())

	var fields models.ProfileFields
	if !decodeJSON(w, r, &fields) {
		return
	}

	if err := h.profiles.UpdateProfile(r.Context(), username, username, fields); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())

	if err := h.profiles.DeleteAccount(r.Context(), username, username); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
