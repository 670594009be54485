package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	mw "github.com/hireboard/hireboard/internal/api/middleware"
	"github.com/hireboard/hireboard/internal/api/response"
	"github.com/hireboard/hireboard/internal/session"
	"github.com/hireboard/hireboard/internal/telemetry"
)

// Authenticator is the slice of the session manager the auth handlers need.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*session.Session, error)
	Logout(ctx context.Context, token string) error
}

// NewLoginHandler returns the handler for POST /login.
func NewLoginHandler(auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}
		if req.Email == "" || req.Password == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required", nil)
			return
		}

		sess, err := auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				telemetry.LoginFailures.Inc()
				response.Error(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}

		response.JSON(w, loginResponse{
			Token: sess.Token,
			User: loginUser{
				ID:    sess.UserID,
				Email: sess.Email,
				Name:  sess.Name,
				Role:  sess.Role,
			},
		})
	}
}

// NewLogoutHandler returns the handler for POST /logout. Revoking an already
// revoked token still succeeds.
func NewLogoutHandler(auth Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mw.ExtractBearerToken(r)
		if err := auth.Logout(r.Context(), token); err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred", nil)
			return
		}
		response.JSON(w, map[string]string{"status": "logged_out"})
	}
}

type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

type loginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
