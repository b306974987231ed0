package database

import (
	"context"
	"errors"
	"fmt"

	"portfolio/models"

	"gorm.io/gorm"
)

type ProjectStore struct {
	db *gorm.DB
}

func NewProjectStore(db *gorm.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// Create inserts the project and fills in its assigned ID. An owner with no
// user row yields models.ErrNotFound.
func (s *ProjectStore) Create(ctx context.Context, project *models.Project) error {
	project.ID = 0
	err := s.db.WithContext(ctx).Create(project).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: user %q", models.ErrNotFound, project.Owner)
	}
	return err
}

func (s *ProjectStore) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err, "project %d", id)
	}
	return &project, nil
}

func (s *ProjectStore) ListByOwner(ctx context.Context, owner string) ([]models.Project, error) {
	projects := []models.Project{}
	err := s.db.WithContext(ctx).Where("owner = ?", owner).Order("id asc").Find(&projects).Error
	return projects, err
}

// Update overwrites the editable columns. ID and Owner are left untouched.
func (s *ProjectStore) Update(ctx context.Context, project *models.Project) error {
	result := s.db.WithContext(ctx).
		Model(&models.Project{ID: project.ID}).
		Select("Title", "Description", "RepoLink", "Technologies", "Screenshot", "Status").
		Updates(project)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: project %d", models.ErrNotFound, project.ID)
	}
	return nil
}

func (s *ProjectStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: project %d", models.ErrNotFound, id)
	}
	return nil
}
