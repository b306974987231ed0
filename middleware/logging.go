package middleware

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const accessLogContextKey contextKey = "access_log"

// accessLog collects fields that inner handlers learn after RequestLogger
// has already passed the request on.
type accessLog struct {
	username string
}

func recordUsername(ctx context.Context, username string) {
	if entry, ok := ctx.Value(accessLogContextKey).(*accessLog); ok {
		entry.username = username
	}
}

// RequestLogger writes one access log line per request, including requests
// rejected by inner middleware. Usernames set by Authenticate further down
// the chain appear on the line.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		entry := &accessLog{username: UsernameFromContext(r.Context())}

		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), accessLogContextKey, entry)))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := zerolog.InfoLevel
		switch {
		case status >= 500:
			level = zerolog.ErrorLevel
		case status >= 400:
			level = zerolog.WarnLevel
		}

		event := log.WithLevel(level).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimiddleware.GetReqID(r.Context()))
		if entry.username != "" {
			event = event.Str("username", entry.username)
		}
		event.Msg("http request")
	})
}
