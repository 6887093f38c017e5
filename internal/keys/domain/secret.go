package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
)

// Secret is the 32-byte key driving both tokenization and format-preserving
// transformation. It is an immutable value: Bytes returns a copy, and
// the String and LogValue methods never reveal the key material.
type Secret struct {
	key [SecretSize]byte
}

// NewSecret builds a Secret from raw bytes. Returns ErrInvalidKeySize unless
// len(b) == 32.
func NewSecret(b []byte) (Secret, error) {
	var s Secret
	if len(b) != SecretSize {
		return s, fmt.Errorf("%w: got %d", ErrInvalidKeySize, len(b))
	}
	copy(s.key[:], b)
	return s, nil
}

// ParseSecretHex parses the boundary representation of a secret: exactly 64
// hex characters.
func ParseSecretHex(h string) (Secret, error) {
	if len(h) != hex.EncodedLen(SecretSize) {
		return Secret{}, ErrInvalidSecretHex
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Secret{}, ErrInvalidSecretHex
	}
	defer Zero(b)
	return NewSecret(b)
}

// Bytes returns a copy of the raw key material.
func (s Secret) Bytes() []byte {
	b := make([]byte, SecretSize)
	copy(b, s.key[:])
	return b
}

// Hex returns the lowercase 64-character hex encoding of the secret.
func (s Secret) Hex() string {
	return hex.EncodeToString(s.key[:])
}

// IsZero reports whether the secret was never initialized.
func (s Secret) IsZero() bool {
	return s.key == [SecretSize]byte{}
}

// Equal reports whether two secrets hold the same key material.
func (s Secret) Equal(other Secret) bool {
	return s.key == other.key
}

// Fingerprint returns the first 8 hex characters of SHA-256(secret). It is safe
// to display and lets operators tell keys apart.
func (s Secret) Fingerprint() string {
	sum := sha256.Sum256(s.key[:])
	return hex.EncodeToString(sum[:4])
}

// String implements fmt.Stringer without exposing the key.
func (s Secret) String() string {
	return "secret(" + s.Fingerprint() + ")"
}

// LogValue implements slog.LogValuer without exposing the key.
func (s Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}
