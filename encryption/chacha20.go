package encryption

import (
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// NewChaCha20 creates a Sealer using ChaCha20-Poly1305, a modern AEAD
// cipher that performs well on CPUs without AES hardware acceleration
// (e.g. ARM devices consuming event streams at the edge).
// The key is hashed with SHA-256, so any shared passphrase works as a key.
func NewChaCha20(key string) (*Sealer, error) {
	aead, err := chacha20poly1305.New(deriveKey(key))
	if err != nil {
		return nil, fmt.Errorf("create chacha20: %w", err)
	}

	return &Sealer{aead: aead}, nil
}
