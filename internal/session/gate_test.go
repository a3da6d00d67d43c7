package session

import (
	"sync"
	"testing"
	"time"

	"github.com/jonathan/vendor-insights/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGate(t *testing.T) *Gate {
	t.Helper()
	passwords, err := config.NewPasswordConfig(10, "pepper")
	require.NoError(t, err)
	gate, err := NewGate("open-sesame", passwords, setupTestTokenService(t, 1))
	require.NoError(t, err)
	return gate
}

func TestNewGate_EmptyPassword(t *testing.T) {
	passwords, err := config.NewPasswordConfig(10, "")
	require.NoError(t, err)

	_, err = NewGate("", passwords, setupTestTokenService(t, 1))
	assert.Error(t, err)
}

func TestGate_Login(t *testing.T) {
	gate := newTestGate(t)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"exact match", "open-sesame", nil},
		{"wrong password", "open-sesame!", ErrInvalidCredentials},
		{"case matters", "Open-Sesame", ErrInvalidCredentials},
		{"surrounding space", " open-sesame", ErrInvalidCredentials},
		{"empty", "", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := gate.Login(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, token)
				return
			}
			require.NoError(t, err)
			assert.True(t, gate.Authenticated(token.Value))
			exp, ok := gate.ExpiresAt(token.SessionID)
			assert.True(t, ok)
			assert.Equal(t, token.ExpiresAt, exp)
		})
	}
}

func TestGate_Logout(t *testing.T) {
	gate := newTestGate(t)

	first, err := gate.Login("open-sesame")
	require.NoError(t, err)
	second, err := gate.Login("open-sesame")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	require.NoError(t, gate.Logout(first.Value))
	assert.False(t, gate.Authenticated(first.Value))
	assert.True(t, gate.Authenticated(second.Value), "other sessions stay open")

	assert.ErrorIs(t, gate.Logout(first.Value), ErrSessionRevoked)
	_, err = gate.Validate(first.Value)
	assert.ErrorIs(t, err, ErrSessionRevoked)
}

func TestGate_PruneExpired(t *testing.T) {
	gate := newTestGate(t)

	token, err := gate.Login("open-sesame")
	require.NoError(t, err)

	assert.Equal(t, 0, gate.PruneExpired(time.Now()))
	assert.Equal(t, 1, gate.PruneExpired(token.ExpiresAt))
	_, ok := gate.ExpiresAt(token.SessionID)
	assert.False(t, ok)
}

func TestGate_AsTokenValidator(t *testing.T) {
	gate := newTestGate(t)
	validator := gate.AsTokenValidator()

	token, err := gate.Login("open-sesame")
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, token.SessionID, claims.GetSessionID())

	_, err = validator.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestGate_ConcurrentLogin(t *testing.T) {
	gate := newTestGate(t)

	var wg sync.WaitGroup
	tokens := make([]*Token, 8)
	for i := range tokens {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok, err := gate.Login("open-sesame")
			assert.NoError(t, err)
			tokens[i] = tok
		}(i)
	}
	wg.Wait()

	for _, tok := range tokens {
		require.NotNil(t, tok)
		assert.True(t, gate.Authenticated(tok.Value))
	}
}
