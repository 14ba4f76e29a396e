package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionID returns a 256-bit random identifier encoded as hex.
func GenerateSessionID() (string, error) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return hex.EncodeToString(token), nil
}

// GenerateSecureToken returns a 256-bit random secret encoded as hex. Used
// for the state-signing key when none is configured.
func GenerateSecureToken() (string, error) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return hex.EncodeToString(token), nil
}
