package random

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// String returns n bytes of cryptographically secure randomness,
// base64url-encoded without padding.
func String(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Nonce returns a client-generated raw nonce suitable for binding into
// an ID token request. 32 bytes = 256 bits of entropy.
func Nonce() (string, error) {
	return String(32)
}

// State returns an opaque OAuth state parameter.
func State() (string, error) {
	return String(32)
}

// PKCE returns a code verifier and its S256 challenge.
func PKCE() (verifier string, challenge string, err error) {
	verifier, err = String(32)
	if err != nil {
		return "", "", err
	}
	hash := sha256.Sum256([]byte(verifier))
	return verifier, base64.RawURLEncoding.EncodeToString(hash[:]), nil
}

// FlowID returns a unique identifier for a pending sign-in flow.
func FlowID() string {
	return uuid.NewString()
}
