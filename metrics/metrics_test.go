package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Get("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, path := range []string{"/api/projects/1", "/api/projects/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/api/projects/{id}", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestAuthCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin("success")
	c.RecordLogin("failure")
	c.RecordLogin("failure")
	c.RecordTokenRejection("expired")
	c.RecordRegistration("conflict")
	c.RecordRateLimited("/api/auth/login")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.logins.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.tokenRejections.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.registrations.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rateLimited.WithLabelValues("/api/auth/login")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin("success")

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.True(t, strings.Contains(string(body), `portfolio_logins_total{result="success"} 1`))
}
