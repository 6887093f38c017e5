// Package usecase implements secret provisioning: local generation with on-disk
// caching, or envelope-encrypted remote data keys with ciphertext-only persistence.
package usecase

import (
	"context"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// KeyProvider obtains the 32-byte anonymization secret.
type KeyProvider interface {
	// ObtainSecret returns the secret for mode ("local" or "remote") using dataDir as
	// the key file location. Returns ErrUnknownKeyMode for any other mode.
	ObtainSecret(ctx context.Context, mode string, dataDir string) (keysDomain.Secret, error)
}
