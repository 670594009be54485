package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hireboard/hireboard/internal/api/response"
	"github.com/hireboard/hireboard/internal/session"
)

// SessionResolver resolves a bearer token to a session.
type SessionResolver interface {
	Get(ctx context.Context, token string) (*session.Session, bool, error)
}

// Auth guards protected routes. Every request re-resolves its token against
// the session store; nothing is trusted from the client beyond the token.
type Auth struct {
	sessions SessionResolver
}

// NewAuth creates the Auth middleware.
func NewAuth(sessions SessionResolver) *Auth {
	return &Auth{sessions: sessions}
}

// Authenticate validates the Bearer token and attaches the resolved session
// to the request context. Unauthenticated requests get a 401 and never reach
// the handler.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r)
		if token == "" {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Missing or invalid Authorization header", nil)
			return
		}

		sess, found, err := a.sessions.Get(r.Context(), token)
		if err != nil {
			response.Error(w, http.StatusInternalServerError,
				"INTERNAL_ERROR", "Failed to validate session", nil)
			return
		}
		if !found {
			response.Error(w, http.StatusUnauthorized,
				"INVALID_TOKEN", "Session expired or unknown", nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(SetSession(r.Context(), sess)))
	})
}

// RequireRole returns middleware that checks the authenticated session's role.
func (a *Auth) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := GetSession(r)
			if !ok || sess.Role != role {
				response.Error(w, http.StatusForbidden,
					"FORBIDDEN", "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ExtractBearerToken exposes the token for handlers that need it directly
// (logout revokes the presented token).
func ExtractBearerToken(r *http.Request) string {
	return extractBearerToken(r)
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
