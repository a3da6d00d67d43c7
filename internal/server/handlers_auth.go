package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/jonathan/vendor-insights/internal/server/middleware"
	"github.com/jonathan/vendor-insights/internal/session"
	"github.com/jonathan/vendor-insights/internal/types"
	"go.uber.org/zap"
)

// maxLoginBody bounds the login request body
const maxLoginBody = 4 << 10

// handleLogin exchanges the shared password for a session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxLoginBody)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "password is required")
		return
	}

	token, err := s.gate.Login(req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			s.logger.Info("login rejected", zap.String("remote", s.extractClientID(r)))
			s.errorResponse(w, http.StatusUnauthorized, "Invalid password")
			return
		}
		s.logger.Error("login failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
	})
}

// handleLogout closes the caller's session.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetToken(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := s.gate.Logout(token); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleSession reports the caller's session. Only reachable with a valid token.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	resp := types.SessionResponse{Authenticated: true}
	if sessionID, err := middleware.GetSessionID(r); err == nil {
		if exp, ok := s.gate.ExpiresAt(sessionID); ok {
			resp.ExpiresAt = exp
		}
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
