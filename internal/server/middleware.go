package server

import (
	"net/http"
	"strings"
	"time"

	"petcare15/internal/metrics"

	"github.com/sirupsen/logrus"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LogRequests writes one entry per request once the handler has finished.
func (s *Service) LogRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		entry := s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		})
		if rw.statusCode >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request served")
	})
}

// instrument records request metrics under the route pattern.
func (s *Service) instrument(route string, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(r.Method, route, rw.statusCode, time.Since(started))
	})
}

// RequireAdmin rejects requests without a valid admin session before any
// handler logic runs.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.guard.CheckRequest(r) {
			s.logger.WithField("path", r.URL.Path).Debug("admin session missing or invalid")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RedirectTrailingSlash sends /api/profiles/ to /api/profiles with a 301.
// The query is carried over.
func (s *Service) RedirectTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		trimmed := strings.TrimRight(r.URL.Path, "/")
		if trimmed == r.URL.Path || trimmed == "" {
			next.ServeHTTP(w, r)
			return
		}

		target := *r.URL
		target.Path = trimmed
		target.RawPath = ""
		http.Redirect(w, r, target.String(), http.StatusMovedPermanently)
	})
}
