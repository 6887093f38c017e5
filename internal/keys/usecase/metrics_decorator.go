package usecase

import (
	"context"
	"time"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/metrics"
)

// keyProviderWithMetrics decorates KeyProvider with metrics instrumentation.
type keyProviderWithMetrics struct {
	next    KeyProvider
	metrics metrics.BusinessMetrics
}

// NewKeyProviderWithMetrics wraps a KeyProvider with metrics recording.
func NewKeyProviderWithMetrics(provider KeyProvider, m metrics.BusinessMetrics) KeyProvider {
	return &keyProviderWithMetrics{
		next:    provider,
		metrics: m,
	}
}

// ObtainSecret records metrics for secret provisioning.
func (k *keyProviderWithMetrics) ObtainSecret(
	ctx context.Context,
	mode string,
	dataDir string,
) (keysDomain.Secret, error) {
	start := time.Now()
	secret, err := k.next.ObtainSecret(ctx, mode, dataDir)

	status := "success"
	if err != nil {
		status = "error"
	}

	operation := "obtain_secret_" + mode
	if _, parseErr := keysDomain.ParseMode(mode); parseErr != nil {
		operation = "obtain_secret_unknown"
	}

	k.metrics.RecordOperation(ctx, "keys", operation, status)
	k.metrics.RecordDuration(ctx, "keys", operation, time.Since(start), status)

	return secret, err
}
