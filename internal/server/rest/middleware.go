package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/seedshop/internal/server/auth"
	"github.com/dmitrijs2005/seedshop/internal/server/models"
)

type contextKey string

const userKey contextKey = "user"

// currentUser returns the authenticated user stored by the auth middleware.
func currentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(userKey).(*models.User)
	return user, ok
}

// authenticate verifies the bearer token and loads the account it names. The
// request proceeds with the user attached to the context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}

		claims, err := auth.VerifyToken(parts[1], []byte(s.config.SecretKey))
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}
		id, err := claims.UserID()
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}

		user, err := s.users.GetByID(r.Context(), id)
		if err != nil {
			writeDetail(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly refuses requests from non-admin accounts. Must run after
// authenticate.
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(r)
		if !ok || !user.IsAdmin() {
			writeDetail(w, http.StatusForbidden, "Not enough permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// rateLimit applies a global token-bucket limit to all requests.
func (s *Server) rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeDetail(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.log.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
