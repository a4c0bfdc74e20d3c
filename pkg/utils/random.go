package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns n cryptographically random bytes hex-encoded.
// Used for refresh token values and password reset tokens, which must be
// indistinguishable from random and never derived from user data.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
