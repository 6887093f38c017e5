package domain

import (
	"github.com/allisson/anonymizer/internal/errors"
)

// Key provisioning error definitions.
var (
	// ErrUnknownKeyMode indicates the key mode is neither "local" nor "remote".
	ErrUnknownKeyMode = errors.Wrap(errors.ErrConfiguration, "key mode must be 'local' or 'remote'")

	// ErrRemoteRegionNotSet indicates remote mode was requested without a region identifier.
	ErrRemoteRegionNotSet = errors.Wrap(
		errors.ErrConfiguration,
		"set AWS_REGION (or AWS_DEFAULT_REGION) for remote key mode",
	)

	// ErrRemoteKeyIDNotSet indicates remote mode was requested without a remote key identifier.
	ErrRemoteKeyIDNotSet = errors.Wrap(errors.ErrConfiguration, "set AWS_KMS_KEY_ID for remote key mode")

	// ErrRemoteServiceNotConfigured indicates remote mode has no data key service factory.
	ErrRemoteServiceNotConfigured = errors.Wrap(errors.ErrConfiguration, "remote data key service not configured")

	// ErrInvalidKeySize indicates stored or unwrapped key material is not exactly 32 bytes.
	//
	// A key of the wrong size is treated as corruption. Regenerating it would silently
	// change every token produced from here on, so the error is always fatal.
	ErrInvalidKeySize = errors.Wrap(errors.ErrIntegrity, "invalid key size (expected 32 bytes)")

	// ErrInvalidSecretHex indicates a hex-encoded secret could not be parsed.
	ErrInvalidSecretHex = errors.Wrap(errors.ErrInvalidInput, "secret must be 64 hex characters")

	// ErrKeyFileNotFound indicates the key file does not exist yet.
	ErrKeyFileNotFound = errors.Wrap(errors.ErrNotFound, "key file not found")
)
