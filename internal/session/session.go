// Package session implements the admin session store. Sessions are persisted
// in Redis with a TTL so a restarted client can resume without re-submitting
// credentials. This is a convenience cache, not a security boundary: every
// privileged request re-checks its token against the store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hireboard/hireboard/internal/cache"
	"github.com/hireboard/hireboard/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is the authenticated-admin context attached to requests.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Manager issues, resolves and revokes sessions.
type Manager struct {
	store store.Store
	cache cache.Cache
	ttl   time.Duration
}

// NewManager creates a session Manager.
func NewManager(s store.Store, c cache.Cache, ttl time.Duration) *Manager {
	return &Manager{store: s, cache: c, ttl: ttl}
}

// Login verifies credentials against the user store and, on success, issues
// an opaque token and persists the session. A missing user and a wrong
// password both return ErrInvalidCredentials so callers cannot probe for
// registered emails.
func (m *Manager) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := m.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	if err := m.cache.Set(ctx, cache.SessionKey(sess.Token), payload, m.ttl); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return sess, nil
}

// Get resolves a token to its session. The second return value is false when
// the token is unknown or expired.
func (m *Manager) Get(ctx context.Context, token string) (*Session, bool, error) {
	if token == "" {
		return nil, false, nil
	}

	payload, found, err := m.cache.Get(ctx, cache.SessionKey(token))
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, true, nil
}

// Logout revokes a token. Idempotent: revoking an unknown token is not an
// error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.cache.Delete(ctx, cache.SessionKey(token)); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
