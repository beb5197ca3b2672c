package impl

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

// resetSecretBytes is the entropy of a password reset secret before hex
// encoding. 32 bytes keeps the secret unguessable within any realistic
// validity window.
const resetSecretBytes = 32

// newResetSecret generates a fresh reset secret and the hash that gets
// persisted. The plaintext leaves the process only inside the reset mail.
func newResetSecret() (secret, hash string, err error) {
	buf := make([]byte, resetSecretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, "failed to generate reset secret")
	}

	secret = hex.EncodeToString(buf)

	return secret, hashResetSecret(secret), nil
}

// hashResetSecret maps a plaintext reset secret to its stored form. The
// same mapping is applied at lookup time, so the database never holds a
// usable secret.
func hashResetSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}
