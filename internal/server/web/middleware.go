package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/bluecup/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

const requestIDHeader = "X-Request-ID"

// UserIDFromContext returns the user stored by requireSession.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// requestLogger tags each request with an id and logs its outcome.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rw, r)

		s.logger.Info(r.Context(), "http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start),
		)
	})
}

// requireSession lets the request through only with a live session cookie.
func (s *HTTPServer) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := readSessionCookie(r)
		if !ok {
			s.unauthenticated(w, r)
			return
		}

		userID, err := s.deps.Auth.ValidateSession(r.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) || errors.Is(err, common.ErrTokenExpired) {
				clearSessionCookie(w, s.deps.SecureCookie)
				s.unauthenticated(w, r)
				return
			}
			s.internalError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// unauthenticated sends browsers to the login page and remembers where they
// were going. Non-navigational requests get a 401 naming the same target.
func (s *HTTPServer) unauthenticated(w http.ResponseWriter, r *http.Request) {
	next := r.URL.RequestURI()
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		http.Redirect(w, r, "/login?next="+url.QueryEscape(next), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated", "next": next})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
