package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"portfolio/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const maxUsernameLength = 100

// CredentialStore is the subset of the user store the auth flow needs.
type CredentialStore interface {
	Create(ctx context.Context, user *models.User) error
	Exists(ctx context.Context, username string) (bool, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type TokenIssuer interface {
	Issue(username string) (string, error)
}

type AuthService struct {
	users  CredentialStore
	tokens TokenIssuer
	cost   int

	// dummyHash is compared against when the username is unknown.
	dummyHash []byte
}

// NewAuthService uses bcrypt.DefaultCost when cost is zero.
func NewAuthService(users CredentialStore, tokens TokenIssuer, cost int) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummyHash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		log.Warn().Err(err).Int("cost", cost).Msg("failed to build dummy password hash")
	}
	return &AuthService{
		users:     users,
		tokens:    tokens,
		cost:      cost,
		dummyHash: dummyHash,
	}
}

// Register stores a new account with a bcrypt hash of password.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return err
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: username %q", models.ErrConflict, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return fmt.Errorf("%w: password must be at most 72 bytes", models.ErrValidation)
		}
		return fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	log.Info().Str("username", username).Msg("user registered")
	return nil
}

// Authenticate checks the password and returns a fresh bearer token.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return "", err
		}
		// Both failure paths pay for one bcrypt comparison.
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		log.Warn().Str("username", username).Msg("login failed: unknown user")
		return "", fmt.Errorf("%w: invalid credentials", models.ErrAuthentication)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("username", username).Msg("login failed: wrong password")
		return "", fmt.Errorf("%w: invalid credentials", models.ErrAuthentication)
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func validateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return fmt.Errorf("%w: username must be at most %d characters", models.ErrValidation, maxUsernameLength)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", models.ErrValidation)
	}
	return nil
}
