package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stemchat/internal/config"
)

func testTokenManager() *TokenManager {
	cfg := &config.Config{}
	cfg.Session.Secret = "test-secret"
	cfg.Session.TokenTTL = 1
	return NewTokenManager(cfg)
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := testTokenManager()

	token, err := tm.Generate(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.AccountID)
	assert.Equal(t, "alice", claims.Handle)
	// The subject is the account id string handed to the resolver.
	assert.Equal(t, "42", claims.Subject)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := testTokenManager()

	_, err := tm.Validate("not.a.token")
	assert.Error(t, err)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	tm := testTokenManager()
	other := &config.Config{}
	other.Session.Secret = "other-secret"
	other.Session.TokenTTL = 1
	foreign := NewTokenManager(other)

	token, err := foreign.Generate(7, "mallory")
	require.NoError(t, err)

	_, err = tm.Validate(token)
	assert.Error(t, err)
}
