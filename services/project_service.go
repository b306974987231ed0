package services

import (
	"context"
	"fmt"
	"strings"

	"portfolio/models"

	"github.com/rs/zerolog/log"
)

type ProjectStore interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
}

// ProjectInput carries the client-editable project fields.
type ProjectInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	RepoLink     string   `json:"repoLink"`
	Technologies []string `json:"technologies"`
	Screenshot   string   `json:"screenshot"`
	Status       string   `json:"status"`
}

type ProjectService struct {
	projects ProjectStore
}

func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

func (s *ProjectService) ListProjects(ctx context.Context, username string) ([]models.Project, error) {
	projects, err := s.projects.ListByOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		projects[i].Normalize()
	}
	return projects, nil
}

// CreateProject stores a new project owned by username. Calling it twice
// with the same input creates two projects.
func (s *ProjectService) CreateProject(ctx context.Context, username string, input ProjectInput) (*models.Project, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: no authenticated principal", models.ErrAuthentication)
	}

	project := &models.Project{Owner: username}
	if err := input.applyTo(project); err != nil {
		return nil, err
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	log.Info().Str("username", username).Uint("project_id", project.ID).Msg("project created")
	project.Normalize()
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, principal string, id uint) (*models.Project, error) {
	project, err := s.load(ctx, principal, ActionRead, id)
	if err != nil {
		return nil, err
	}
	project.Normalize()
	return project, nil
}

// UpdateProject overwrites every editable field. Any status may follow any other.
func (s *ProjectService) UpdateProject(ctx context.Context, principal string, id uint, input ProjectInput) (*models.Project, error) {
	project, err := s.load(ctx, principal, ActionUpdate, id)
	if err != nil {
		return nil, err
	}

	if err := input.applyTo(project); err != nil {
		return nil, err
	}
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	project.Normalize()
	return project, nil
}

// DeleteProject removes the project once ownership is confirmed.
func (s *ProjectService) DeleteProject(ctx context.Context, principal string, id uint) error {
	if _, err := s.load(ctx, principal, ActionDelete, id); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().Str("username", principal).Uint("project_id", id).Msg("project deleted")
	return nil
}

func (s *ProjectService) load(ctx context.Context, principal string, action Action, id uint) (*models.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(principal, action, project); err != nil {
		log.Warn().Str("username", principal).Uint("project_id", id).Str("action", string(action)).Msg("project access denied")
		return nil, err
	}
	return project, nil
}

func (in ProjectInput) applyTo(project *models.Project) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	status, err := models.ParseProjectStatus(in.Status)
	if err != nil {
		return err
	}

	project.Title = title
	project.Description = in.Description
	project.RepoLink = strings.TrimSpace(in.RepoLink)
	project.Technologies = cleanList(in.Technologies)
	project.Screenshot = strings.TrimSpace(in.Screenshot)
	project.Status = status
	return nil
}
