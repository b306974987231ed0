package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio/metrics"
	"portfolio/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	now     time.Time
	tokens  *services.TokenService
	handler http.Handler
	seen    *string
	called  *bool
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	tokens, err := services.NewTokenService([]byte("k"), time.Hour, services.WithClock(func() time.Time { return f.now }))
	require.NoError(t, err)
	f.tokens = tokens

	var seen string
	var called bool
	f.seen, f.called = &seen, &called

	auth := NewAuthenticator(tokens, metrics.NewCollector(prometheus.NewRegistry()))
	f.handler = auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = UsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	return f
}

func (f *authFixture) do(authHeader string) *httptest.ResponseRecorder {
	*f.seen, *f.called = "", false
	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateAnonymousPassesThrough(t *testing.T) {
	f := newAuthFixture(t)

	rec := f.do("")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *f.called)
	assert.Empty(t, *f.seen)
}

func TestAuthenticateValidToken(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.tokens.Issue("alice")
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + token, "bearer " + token} {
		rec := f.do(header)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", *f.seen)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.tokens.Issue("alice")
	require.NoError(t, err)

	cases := map[string]string{
		"wrong scheme": "Basic YWxpY2U6cHcx",
		"no token":     "Bearer ",
		"garbage":      "Bearer not.a.jwt",
		"tampered":     "Bearer " + token + "x",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := f.do(header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, *f.called, "request must not continue as anonymous")

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "unauthenticated", body.Code)
		})
	}
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	token, err := f.tokens.Issue("alice")
	require.NoError(t, err)

	f.now = f.now.Add(61 * time.Minute)

	rec := f.do("Bearer " + token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, *f.called)
	assert.NotEmpty(t, rec.Header().Get("WWW-Authenticate"))
}

func TestRequireUser(t *testing.T) {
	h := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUsername(req.Context(), "alice"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
