package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the length of keys handed to gorilla/csrf.
const KeySize = 32

// GenerateSecret creates a random 32-byte secret, hex-encoded.
func GenerateSecret() (string, error) {
	bytes := make([]byte, KeySize)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// DecodeSecret turns a configured secret into key bytes. Hex strings are
// decoded; anything else is used as raw bytes.
func DecodeSecret(secret string) []byte {
	if key, err := hex.DecodeString(secret); err == nil {
		return key
	}
	return []byte(secret)
}

// DeriveKey expands a configured secret of any length into a KeySize key
// bound to purpose, so one SESSION_SECRET can feed several consumers.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret must not be empty")
	}
	key := make([]byte, KeySize)
	r := hkdf.New(sha256.New, DecodeSecret(secret), nil, []byte(purpose))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", purpose, err)
	}
	return key, nil
}
