package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple", password: "pw1"},
		{name: "long", password: "correct horse battery staple with extras"},
		{name: "unicode", password: "pässwörd✓"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			digest, err := HashPassword(tc.password)
			require.NoError(t, err)
			require.NotEmpty(t, digest)

			// The digest is never the plaintext.
			assert.NotEqual(t, tc.password, digest)

			assert.True(t, CheckPassword(tc.password, digest))
			assert.False(t, CheckPassword(tc.password+"x", digest))
		})
	}
}

func TestHashPassword_EmptyRejected(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("pw1")
	require.NoError(t, err)
	second, err := HashPassword("pw1")
	require.NoError(t, err)

	// bcrypt embeds a fresh salt each time.
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPassword("pw1", first))
	assert.True(t, CheckPassword("pw1", second))
}

func TestCheckPassword_Mismatches(t *testing.T) {
	digest, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.False(t, CheckPassword("pw2", digest))
	assert.False(t, CheckPassword("", digest))
	assert.False(t, CheckPassword("pw1", ""))
	assert.False(t, CheckPassword("pw1", "not-a-bcrypt-digest"))
}
