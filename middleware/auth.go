package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"portfolio/metrics"
	"portfolio/services"

	"github.com/rs/zerolog/log"
)

type contextKey string

const usernameContextKey contextKey = "username"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticator resolves the bearer token of each request to a username.
type Authenticator struct {
	tokens  TokenVerifier
	metrics *metrics.Collector
}

func NewAuthenticator(tokens TokenVerifier, m *metrics.Collector) *Authenticator {
	return &Authenticator{tokens: tokens, metrics: m}
}

// Authenticate lets requests without an Authorization header through as
// anonymous. A header that is present but malformed, invalid or expired is
// answered with 401.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			a.reject(w, r, "malformed", nil)
			return
		}

		username, err := a.tokens.Verify(token)
		if err != nil {
			reason := "invalid"
			if errors.Is(err, services.ErrExpiredToken) {
				reason = "expired"
			}
			a.reject(w, r, reason, err)
			return
		}

		recordUsername(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(WithUsername(r.Context(), username)))
	})
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, reason string, err error) {
	if a.metrics != nil {
		a.metrics.RecordTokenRejection(reason)
	}
	log.Warn().Err(err).Str("reason", reason).Str("path", r.URL.Path).Msg("bearer token rejected")
	WriteUnauthorized(w)
}

// RequireUser answers 401 unless Authenticate established a username.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UsernameFromContext(r.Context()) == "" {
			WriteUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameContextKey, username)
}

// UsernameFromContext returns "" for anonymous requests.
func UsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(usernameContextKey).(string)
	return username
}
