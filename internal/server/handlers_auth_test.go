package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLogin(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "correct password", body: `{"password":"open-sesame"}`, wantStatus: http.StatusOK},
		{name: "wrong password", body: `{"password":"nope"}`, wantStatus: http.StatusUnauthorized},
		{name: "password differs by case", body: `{"password":"Open-Sesame"}`, wantStatus: http.StatusUnauthorized},
		{name: "empty password", body: `{"password":""}`, wantStatus: http.StatusBadRequest},
		{name: "empty object", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "no body", body: "", wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"password":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, srv, http.MethodPost, "/auth/login", tt.body, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandleLogin_ReturnsToken(t *testing.T) {
	srv := newTestServer(t)

	rec := serve(t, srv, http.MethodPost, "/auth/login", `{"password":"open-sesame"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[types.LoginResponse](t, rec)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
	assert.True(t, srv.gate.Authenticated(resp.Token))
}

func TestGatedRoutes_RequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, target := range []string{
		"/auth/session",
		"/api/summary",
		"/api/vendors",
		"/api/vendors/vendor-01/trend",
		"/api/roles",
		"/api/pass-rate",
		"/api/placements",
		"/api/job-families",
		"/api/funnel",
		"/api/efficiency",
		"/api/rate-cards",
		"/api/regions",
		"/api/export.xlsx",
		"/api/export.csv",
	} {
		t.Run(target, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, serve(t, srv, http.MethodGet, target, "", "").Code)
			assert.Equal(t, http.StatusUnauthorized, serve(t, srv, http.MethodGet, target, "", "garbage").Code)
		})
	}
}

func TestHandleSession(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	rec := serve(t, srv, http.MethodGet, "/auth/session", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[types.SessionResponse](t, rec)
	assert.True(t, resp.Authenticated)
	assert.False(t, resp.ExpiresAt.IsZero())
}

func TestHandleLogout(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)
	other := login(t, srv)

	rec := serve(t, srv, http.MethodPost, "/auth/logout", "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer opens anything
	assert.Equal(t, http.StatusUnauthorized, serve(t, srv, http.MethodGet, "/auth/session", "", token).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(t, srv, http.MethodPost, "/auth/logout", "", token).Code)

	// Other sessions are unaffected
	assert.Equal(t, http.StatusOK, serve(t, srv, http.MethodGet, "/auth/session", "", other).Code)
}
