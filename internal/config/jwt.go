// Package config provides JWT configuration functionality.
package config

import "fmt"

// DefaultJWTExpirationHours is the session lifetime used when none is configured
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for session token signing and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig creates a token configuration. A zero expiration selects
// DefaultJWTExpirationHours; the secret is required.
func NewJWTConfig(secret string, expirationHours int) (*JWTConfig, error) {
	if expirationHours == 0 {
		expirationHours = DefaultJWTExpirationHours
	}

	config := &JWTConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
