package services

import (
	"context"
	"fmt"
	"strings"

	"portfolio/models"

	"github.com/rs/zerolog/log"
)

type ProfileStore interface {
	FindProfile(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, username string, fields models.ProfileFields) error
	Delete(ctx context.Context, username string) error
}

type ProfileService struct {
	users ProfileStore
}

func NewProfileService(users ProfileStore) *ProfileService {
	return &ProfileService{users: users}
}

// GetProfile returns the user's profile including owned projects.
func (s *ProfileService) GetProfile(ctx context.Context, principal, username string) (*models.User, error) {
	if err := authorize(principal, ActionRead, &models.User{Username: username}); err != nil {
		return nil, err
	}

	user, err := s.users.FindProfile(ctx, username)
	if err != nil {
		return nil, err
	}
	user.Normalize()
	return user, nil
}

// UpdateProfile replaces email, bio, avatar, location and skills.
func (s *ProfileService) UpdateProfile(ctx context.Context, principal, username string, fields models.ProfileFields) error {
	if err := authorize(principal, ActionUpdate, &models.User{Username: username}); err != nil {
		return err
	}

	fields.Skills = cleanList(fields.Skills)
	if strings.ContainsAny(fields.Email, " \t\r\n") {
		return fmt.Errorf("%w: email must not contain whitespace", models.ErrValidation)
	}
	return s.users.UpdateProfile(ctx, username, fields)
}

// DeleteAccount removes the user and all of their projects.
func (s *ProfileService) DeleteAccount(ctx context.Context, principal, username string) error {
	if err := authorize(principal, ActionDelete, &models.User{Username: username}); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, username); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("account deleted")
	return nil
}

// cleanList trims entries and drops empty ones. The result is never nil.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
