package impl

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetSecret(t *testing.T) {
	secret, hash, err := newResetSecret()
	require.NoError(t, err)

	assert.Len(t, secret, 64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, secret, hash)

	sum := sha256.Sum256([]byte(secret))
	assert.Equal(t, hex.EncodeToString(sum[:]), hash)
}

func TestNewResetSecretUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 16 {
		secret, _, err := newResetSecret()
		require.NoError(t, err)

		_, dup := seen[secret]
		require.False(t, dup)
		seen[secret] = struct{}{}
	}
}

func TestHashResetSecretDeterministic(t *testing.T) {
	assert.Equal(t, hashResetSecret("abc"), hashResetSecret("abc"))
	assert.NotEqual(t, hashResetSecret("abc"), hashResetSecret("abd"))
}
