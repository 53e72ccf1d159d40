package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sumzhq/sumz-portal/internal/auth"
	"github.com/sumzhq/sumz-portal/internal/model"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_id"

// SessionResolver resolves a session token to a user ID.
// An empty user ID means the token is unknown or expired.
type SessionResolver interface {
	GetSession(ctx context.Context, token string) (string, error)
}

// UserLoader loads a user record by ID.
type UserLoader interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// SessionConfig holds dependencies for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Sessions SessionResolver
	Users    UserLoader
}

// LoadUser resolves the session cookie into the request context.
// Anonymous requests and stale cookies pass through untouched; enforcement
// is left to RequirePage / RequireJSON.
func LoadUser(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := cfg.Sessions.GetSession(r.Context(), cookie.Value)
			if err != nil {
				cfg.Logger.Error("session lookup failed",
					slog.String("error", err.Error()),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				next.ServeHTTP(w, r)
				return
			}
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := cfg.Users.GetUserByID(r.Context(), userID)
			if err != nil {
				// Session points at a user that no longer exists; treat as anonymous.
				next.ServeHTTP(w, r)
				return
			}

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePage rejects anonymous requests on HTML routes by redirecting
// to the login page.
func RequirePage() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.UserFromContext(r.Context()) == nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireJSON rejects anonymous requests on JSON routes with 401.
func RequireJSON() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.UserFromContext(r.Context()) == nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"message":"Authentication required."}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
