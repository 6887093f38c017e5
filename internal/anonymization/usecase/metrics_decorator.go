package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/metrics"
	"github.com/allisson/anonymizer/internal/records"
)

// anonymizationUseCaseWithMetrics decorates AnonymizationUseCase with metrics instrumentation.
type anonymizationUseCaseWithMetrics struct {
	next    AnonymizationUseCase
	metrics metrics.BusinessMetrics
}

// NewAnonymizationUseCaseWithMetrics wraps an AnonymizationUseCase with metrics recording.
func NewAnonymizationUseCaseWithMetrics(
	useCase AnonymizationUseCase,
	m metrics.BusinessMetrics,
) AnonymizationUseCase {
	return &anonymizationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Anonymize records metrics per mode.
func (a *anonymizationUseCaseWithMetrics) Anonymize(
	ctx context.Context,
	table records.Table,
	secret keysDomain.Secret,
	opts domain.Options,
) (*domain.Result, error) {
	start := time.Now()
	result, err := a.next.Anonymize(ctx, table, secret, opts)

	status := "success"
	if err != nil {
		status = "error"
	}

	operation := "anonymize_unknown"
	if mode, parseErr := domain.ParseMode(string(opts.WithDefaults().Mode)); parseErr == nil {
		operation = "anonymize_" + mode.String()
	}

	a.metrics.RecordOperation(ctx, "anonymization", operation, status)
	a.metrics.RecordDuration(ctx, "anonymization", operation, time.Since(start), status)
	if err == nil && result != nil {
		var values int64
		for _, m := range result.Mappings {
			values += int64(len(m.Entries))
		}
		a.metrics.RecordValues(ctx, "anonymization", operation, values)
	}

	return result, err
}

// auditUseCaseWithMetrics decorates AuditUseCase with metrics instrumentation.
type auditUseCaseWithMetrics struct {
	next    AuditUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditUseCaseWithMetrics wraps an AuditUseCase with metrics recording.
func NewAuditUseCaseWithMetrics(useCase AuditUseCase, m metrics.BusinessMetrics) AuditUseCase {
	return &auditUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Record records metrics for audit persistence.
func (a *auditUseCaseWithMetrics) Record(
	ctx context.Context,
	mode domain.Mode,
	result *domain.Result,
) (*domain.AuditRun, error) {
	start := time.Now()
	run, err := a.next.Record(ctx, mode, result)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "anonymization", "audit_record", status)
	a.metrics.RecordDuration(ctx, "anonymization", "audit_record", time.Since(start), status)

	return run, err
}

// Get records metrics for audit lookups.
func (a *auditUseCaseWithMetrics) Get(ctx context.Context, runID uuid.UUID) (*domain.AuditRun, error) {
	start := time.Now()
	run, err := a.next.Get(ctx, runID)

	status := "success"
	if err != nil {
		status = "error"
	}

	a.metrics.RecordOperation(ctx, "anonymization", "audit_get", status)
	a.metrics.RecordDuration(ctx, "anonymization", "audit_get", time.Since(start), status)

	return run, err
}
