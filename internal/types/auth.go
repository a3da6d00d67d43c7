package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// LoginRequest represents the dashboard login request.
// There are no user accounts, only the shared dashboard password.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the session token issued on a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResponse reports whether the caller holds a live session.
type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expires_at,omitempty"`
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
