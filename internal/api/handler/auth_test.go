package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hireboard/hireboard/internal/session"
)

// --- mock Authenticator ---

type mockAuth struct {
	loginFn   func(email, password string) (*session.Session, error)
	loggedOut []string
}

func (m *mockAuth) Login(_ context.Context, email, password string) (*session.Session, error) {
	return m.loginFn(email, password)
}

func (m *mockAuth) Logout(_ context.Context, token string) error {
	m.loggedOut = append(m.loggedOut, token)
	return nil
}

func loginReq(t *testing.T, body any) *http.Request {
	t.Helper()
	b, _ := json.Marshal(body)
	r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(b))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuth{loginFn: func(email, _ string) (*session.Session, error) {
		return &session.Session{
			Token:  "tok-123",
			UserID: "u1",
			Email:  email,
			Name:   "Admin",
			Role:   "admin",
		}, nil
	}}

	h := NewLoginHandler(auth)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, loginReq(t, map[string]string{"email": "admin@acme.com", "password": "secret"}))

	data := parseData(t, rec, http.StatusOK)
	if data["token"] != "tok-123" {
		t.Errorf("unexpected token: %v", data["token"])
	}
	user := data["user"].(map[string]any)
	if user["email"] != "admin@acme.com" || user["role"] != "admin" {
		t.Errorf("unexpected user payload: %v", user)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	auth := &mockAuth{loginFn: func(_, _ string) (*session.Session, error) {
		return nil, session.ErrInvalidCredentials
	}}

	h := NewLoginHandler(auth)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, loginReq(t, map[string]string{"email": "admin@acme.com", "password": "wrong"}))

	status, code := parseErr(t, rec)
	if status != http.StatusUnauthorized || code != "INVALID_CREDENTIALS" {
		t.Errorf("expected 401 INVALID_CREDENTIALS, got %d %s", status, code)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	auth := &mockAuth{loginFn: func(_, _ string) (*session.Session, error) {
		t.Fatal("login should not be attempted")
		return nil, nil
	}}

	h := NewLoginHandler(auth)
	for _, body := range []map[string]string{
		{"email": "admin@acme.com"},
		{"password": "secret"},
		{},
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, loginReq(t, body))

		status, code := parseErr(t, rec)
		if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
			t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
		}
	}
}

func TestLogin_InvalidJSON(t *testing.T) {
	auth := &mockAuth{loginFn: func(_, _ string) (*session.Session, error) {
		return nil, errors.New("unreachable")
	}}

	h := NewLoginHandler(auth)
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte("{broken")))
	h.ServeHTTP(rec, r)

	status, code := parseErr(t, rec)
	if status != http.StatusBadRequest || code != "INVALID_REQUEST" {
		t.Errorf("expected 400 INVALID_REQUEST, got %d %s", status, code)
	}
}

func TestLogout_RevokesPresentedToken(t *testing.T) {
	auth := &mockAuth{}
	h := NewLogoutHandler(auth)
	rec := httptest.NewRecorder()

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.Header.Set("Authorization", "Bearer tok-456")
	h.ServeHTTP(rec, r)

	data := parseData(t, rec, http.StatusOK)
	if data["status"] != "logged_out" {
		t.Errorf("unexpected body: %v", data)
	}
	if len(auth.loggedOut) != 1 || auth.loggedOut[0] != "tok-456" {
		t.Errorf("token not revoked: %v", auth.loggedOut)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	auth := &mockAuth{}
	h := NewLogoutHandler(auth)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/logout", nil)
		r.Header.Set("Authorization", "Bearer tok-789")
		h.ServeHTTP(rec, r)
		if rec.Code != http.StatusOK {
			t.Fatalf("logout %d: expected 200, got %d", i, rec.Code)
		}
	}
}
