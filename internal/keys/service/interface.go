// Package service provides the storage and remote key-management capabilities
// behind secret provisioning: the on-disk key store and envelope data key services.
package service

import (
	"context"
)

// DataKey is a freshly generated envelope data key. Only Ciphertext may be
// persisted; Plaintext is the anonymization secret.
type DataKey struct {
	Plaintext  []byte
	Ciphertext []byte
}

// DataKeyService is the remote envelope-encryption capability.
type DataKeyService interface {
	// GenerateDataKey asks the remote service for a new 256-bit data key.
	GenerateDataKey(ctx context.Context) (*DataKey, error)

	// Decrypt unwraps a ciphertext blob previously returned by GenerateDataKey.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// KMSKeeper is the subset of *secrets.Keeper used for wrapping data keys.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KeyStore reads and writes key files. It is the only component that touches
// the secret storage location.
type KeyStore interface {
	// Load returns the file content or domain.ErrKeyFileNotFound when it does not exist.
	Load(path string) ([]byte, error)

	// Save writes data with owner-only permissions, creating parent directories.
	Save(path string, data []byte) error
}
