package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hireboard/hireboard/internal/cache"
	"github.com/hireboard/hireboard/internal/config"
	"github.com/hireboard/hireboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─── mock cache ──────────────────────────────────────────────────────────────

type testCache struct {
	pingErr error
}

func (c *testCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }
func (c *testCache) Get(_ context.Context, _ string) ([]byte, bool, error)            { return nil, false, nil }
func (c *testCache) Delete(_ context.Context, _ string) error                         { return nil }
func (c *testCache) Ping(_ context.Context) error                                     { return c.pingErr }
func (c *testCache) IncrWithExpiry(_ context.Context, _ string, _ time.Duration) (int64, error) {
	return 1, nil
}

var _ cache.Cache = (*testCache)(nil)

// ─── health handler tests ───────────────────────────────────────────────────

func TestHealthHandler_AllOK(t *testing.T) {
	h := healthHandler(store.NewMemoryStore(), &testCache{})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
	services := data["services"].(map[string]any)
	assert.Equal(t, "ok", services["store"])
	assert.Equal(t, "ok", services["cache"])
}

func TestHealthHandler_CacheDegraded(t *testing.T) {
	h := healthHandler(store.NewMemoryStore(), &testCache{pingErr: errors.New("redis down")})

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	h(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "DEGRADED", errObj["code"])
}

// ─── admin bootstrap tests ──────────────────────────────────────────────────

func TestBootstrapAdmin_CreatesAccount(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	err := bootstrapAdmin(ctx, s, config.AdminConfig{
		Email:    "admin@acme.com",
		Name:     "Acme Admin",
		Password: "s3cret",
	})
	require.NoError(t, err)

	user, err := s.GetUserByEmail(ctx, "admin@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestBootstrapAdmin_SkipsExisting(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	cfg := config.AdminConfig{Email: "admin@acme.com", Name: "Acme Admin", Password: "s3cret"}
	require.NoError(t, bootstrapAdmin(ctx, s, cfg))

	before, err := s.GetUserByEmail(ctx, "admin@acme.com")
	require.NoError(t, err)

	cfg.Password = "changed"
	require.NoError(t, bootstrapAdmin(ctx, s, cfg))

	after, err := s.GetUserByEmail(ctx, "admin@acme.com")
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
}

func TestBootstrapAdmin_NoopWithoutEmail(t *testing.T) {
	s := store.NewMemoryStore()
	require.NoError(t, bootstrapAdmin(context.Background(), s, config.AdminConfig{}))
}

// ─── run() config validation tests ──────────────────────────────────────────

func TestRun_FailsOnMissingConfig(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "REDIS_URL", "STORE_BACKEND"} {
		t.Setenv(key, "")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestRun_FailsOnBadBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("REDIS_URL", "redis://localhost:6379")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_BACKEND")
}

// ─── shutdown timeout constant test ─────────────────────────────────────────

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 30*time.Second, shutdownTimeout)
}
