// Package session implements the dashboard's access gate: a single shared password that,
// once presented, opens a session identified by a signed token.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/vendor-insights/internal/config"
	"github.com/jonathan/vendor-insights/internal/server/middleware"
)

var (
	// ErrInvalidCredentials is returned when the shared password does not match
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrSessionRevoked is returned for a well-formed token whose session was logged out
	ErrSessionRevoked = errors.New("session has been logged out")
)

// Token is the result of a successful login
type Token struct {
	Value     string
	SessionID uuid.UUID
	ExpiresAt time.Time
}

// Gate checks the shared password and tracks live sessions. There is no per-user
// identity; every session is equivalent.
type Gate struct {
	passwordHash string
	passwords    *config.PasswordConfig
	tokens       *TokenService

	mu       sync.RWMutex
	sessions map[uuid.UUID]time.Time
}

// NewGate hashes the shared password once and returns a gate with no open sessions.
func NewGate(password string, passwords *config.PasswordConfig, tokens *TokenService) (*Gate, error) {
	if password == "" {
		return nil, fmt.Errorf("dashboard password cannot be empty")
	}
	hash, err := passwords.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Gate{
		passwordHash: hash,
		passwords:    passwords,
		tokens:       tokens,
		sessions:     make(map[uuid.UUID]time.Time),
	}, nil
}

// Login opens a session when password matches the shared password exactly.
func (g *Gate) Login(password string) (*Token, error) {
	if !g.passwords.VerifyPassword(password, g.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	sessionID := uuid.New()
	value, expiresAt, err := g.tokens.GenerateToken(sessionID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.sessions[sessionID] = expiresAt
	g.mu.Unlock()

	return &Token{Value: value, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// Logout closes the session named by token. Logging out twice is an error.
func (g *Gate) Logout(token string) error {
	claims, err := g.Validate(token)
	if err != nil {
		return err
	}
	g.mu.Lock()
	delete(g.sessions, claims.SessionID)
	g.mu.Unlock()
	return nil
}

// Validate returns the claims of a token whose session is still open.
func (g *Gate) Validate(token string) (*Claims, error) {
	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}
	g.mu.RLock()
	_, open := g.sessions[claims.SessionID]
	g.mu.RUnlock()
	if !open {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Authenticated reports whether token names an open session.
func (g *Gate) Authenticated(token string) bool {
	_, err := g.Validate(token)
	return err == nil
}

// ExpiresAt returns the expiry of an open session.
func (g *Gate) ExpiresAt(sessionID uuid.UUID) (time.Time, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	exp, ok := g.sessions[sessionID]
	return exp, ok
}

// PruneExpired forgets sessions whose tokens have expired and returns how many were removed.
func (g *Gate) PruneExpired(now time.Time) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	removed := 0
	for id, exp := range g.sessions {
		if !exp.After(now) {
			delete(g.sessions, id)
			removed++
		}
	}
	return removed
}

// AsTokenValidator returns a TokenValidator adapter for this Gate.
// This allows the Gate to be used with middleware without creating import cycles.
func (g *Gate) AsTokenValidator() middleware.TokenValidator {
	return &gateValidator{gate: g}
}

// gateValidator adapts Gate to middleware.TokenValidator interface.
type gateValidator struct {
	gate *Gate
}

func (v *gateValidator) ValidateToken(tokenString string) (middleware.SessionGetter, error) {
	claims, err := v.gate.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}
