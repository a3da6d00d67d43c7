// Package config provides password configuration and hashing functionality.
package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when no cost is configured
const DefaultBcryptCost = 12

// PasswordConfig holds configuration for hashing and checking the shared dashboard password.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret for additional security
}

// NewPasswordConfig creates a password configuration. A zero cost selects DefaultBcryptCost.
func NewPasswordConfig(cost int, pepper string) (*PasswordConfig, error) {
	if cost == 0 {
		cost = DefaultBcryptCost
	}

	config := &PasswordConfig{
		BcryptCost: cost,
		Pepper:     pepper,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *PasswordConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	return nil
}

// HashPassword hashes a password using bcrypt (with optional pepper).
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(c.peppered(pw)), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword verifies a password against a stored hash (with optional pepper).
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(c.peppered(pw)))
	return err == nil
}

func (c *PasswordConfig) peppered(pw string) string {
	if c.Pepper != "" {
		return pw + c.Pepper
	}
	return pw
}
