package database

import (
	"context"
	"errors"
	"fmt"

	"portfolio/models"

	"gorm.io/gorm"
)

// UserStore persists credentials and profile fields keyed by username.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user. A duplicate username yields models.ErrConflict.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: username %q", models.ErrConflict, user.Username)
	}
	return err
}

func (s *UserStore) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// FindByUsername loads the user row without its projects.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, notFound(err, "user %q", username)
	}
	return &user, nil
}

// FindProfile loads the user together with its projects in id order.
func (s *UserStore) FindProfile(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("id asc")
		}).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, notFound(err, "user %q", username)
	}
	return &user, nil
}

// UpdateProfile overwrites every profile field, zero values included.
func (s *UserStore) UpdateProfile(ctx context.Context, username string, fields models.ProfileFields) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{Username: username}).
		Select("Email", "Bio", "Avatar", "Location", "Skills").
		Updates(&models.User{
			Email:    fields.Email,
			Bio:      fields.Bio,
			Avatar:   fields.Avatar,
			Location: fields.Location,
			Skills:   fields.Skills,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %q", models.ErrNotFound, username)
	}
	return nil
}

// Delete removes the user and every project it owns in one transaction.
func (s *UserStore) Delete(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner = ?", username).Delete(&models.Project{}).Error; err != nil {
			return err
		}

		result := tx.Where("username = ?", username).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: user %q", models.ErrNotFound, username)
		}
		return nil
	})
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{models.ErrNotFound}, args...)...)
	}
	return err
}
