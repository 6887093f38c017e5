package domain

import (
	"github.com/allisson/anonymizer/internal/errors"
)

var (
	// ErrInvalidMode indicates an unsupported anonymization mode.
	ErrInvalidMode = errors.Wrap(errors.ErrInvalidInput, "invalid anonymization mode")

	// ErrNoColumns indicates no target columns were requested.
	ErrNoColumns = errors.Wrap(errors.ErrInvalidInput, "no columns to anonymize")

	// ErrInvalidTokenLength indicates a hash token length outside 1..52.
	ErrInvalidTokenLength = errors.Wrap(errors.ErrInvalidInput, "invalid token length")

	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.Wrap(errors.ErrInvalidInput, "invalid worker count")

	// ErrSecretNotSet indicates a zero-value secret was passed to a run.
	ErrSecretNotSet = errors.Wrap(errors.ErrInvalidInput, "secret is not set")

	// ErrRunNotFound indicates no audit mappings were stored for a run.
	ErrRunNotFound = errors.Wrap(errors.ErrNotFound, "anonymization run not found")
)
