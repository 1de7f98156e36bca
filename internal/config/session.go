package config

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// sessionKeyInfo binds derived keys to the session cookie use
const sessionKeyInfo = "intern-ease session cookie v1"

// SessionConfig holds the key used to sign session cookies
type SessionConfig struct {
	SigningKey []byte
	// Ephemeral is true when no secret was configured; cookies will not
	// survive a restart and will not validate across instances.
	Ephemeral bool
}

// NewSessionConfig derives a 32-byte HMAC key from secret with HKDF-SHA256.
// An empty secret yields a random per-process key.
func NewSessionConfig(secret string) (*SessionConfig, error) {
	if secret == "" {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
		return &SessionConfig{SigningKey: key, Ephemeral: true}, nil
	}

	if len(secret) < 16 {
		return nil, fmt.Errorf("SESSION_SECRET must be at least 16 characters, got %d", len(secret))
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive session key: %w", err)
	}
	return &SessionConfig{SigningKey: key}, nil
}
