package handlers

import (
	"context"
	"net/http"
	"strconv"

	"portfolio/middleware"
	"portfolio/models"
	"portfolio/services"

	"github.com/go-chi/chi/v5"
)

type ProjectService interface {
	ListProjects(ctx context.Context, username string) ([]models.Project, error)
	CreateProject(ctx context.Context, username string, input services.ProjectInput) (*models.Project, error)
	GetProject(ctx context.Context, principal string, id uint) (*models.Project, error)
	UpdateProject(ctx context.Context, principal string, id uint, input services.ProjectInput) (*models.Project, error)
	DeleteProject(ctx context.Context, principal string, id uint) error
}

type ProjectHandler struct {
	projects ProjectService
}

func NewProjectHandler(projects ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())

	projects, err := h.projects.ListProjects(r.Context(), username)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromContext(r.Context())

	var input services.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	project, err := h.projects.CreateProject(r.Context(), username, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	project, err := h.projects.GetProject(r.Context(), middleware.UsernameFromContext(r.Context()), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	var input services.ProjectInput
	if !decodeJSON(w, r, &input) {
		return
	}

	project, err := h.projects.UpdateProject(r.Context(), middleware.UsernameFromContext(r.Context()), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	if err := h.projects.DeleteProject(r.Context(), middleware.UsernameFromContext(r.Context()), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func projectID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 0)
	if err != nil || id == 0 {
		middleware.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid project id")
		return 0, false
	}
	return uint(id), true
}
