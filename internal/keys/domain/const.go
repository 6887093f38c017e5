// Package domain defines the secret key material and the key provisioning modes
// used to pseudonymize telemetry records.
package domain

import (
	"os"

	"github.com/allisson/anonymizer/internal/errors"
)

// Mode selects where the 256-bit anonymization secret comes from.
type Mode string

const (
	// ModeLocal keeps the raw secret in {data_dir}/secret_key.bin and generates it on first use.
	ModeLocal Mode = "local"

	// ModeRemote keeps only a wrapped data key in {data_dir}/kms_data_key.bin. The plaintext
	// is recovered through the remote key-management service on every call.
	ModeRemote Mode = "remote"
)

const (
	// SecretSize is the only accepted secret length in bytes.
	SecretSize = 32

	// LocalKeyFile is the file name of the raw local secret.
	LocalKeyFile = "secret_key.bin"

	// RemoteKeyFile is the file name of the wrapped remote data key.
	RemoteKeyFile = "kms_data_key.bin"

	// FilePermissions restricts key files to the owner.
	FilePermissions os.FileMode = 0600

	// DirPermissions restricts the data directory to the owner.
	DirPermissions os.FileMode = 0700
)

// ParseMode converts a mode string into a Mode. Returns ErrUnknownKeyMode for
// anything other than "local" or "remote".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLocal, ModeRemote:
		return Mode(s), nil
	default:
		return "", errors.Wrapf(ErrUnknownKeyMode, "mode %q", s)
	}
}

// RemoteConfig holds the environment settings required by ModeRemote.
type RemoteConfig struct {
	// Region is the region identifier of the key-management service.
	Region string
	// KeyID identifies the remote wrapping key (key id, ARN, alias or keeper URI).
	KeyID string
}

// Validate checks that both remote settings are present.
func (r RemoteConfig) Validate() error {
	if r.Region == "" {
		return ErrRemoteRegionNotSet
	}
	if r.KeyID == "" {
		return ErrRemoteKeyIDNotSet
	}
	return nil
}
