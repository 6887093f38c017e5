// Package usecase implements the anonymization orchestrator and the audit trail of
// original to anonymized mappings.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// MappingRepository persists audit mappings.
type MappingRepository interface {
	// CreateBatch stores one row per mapping entry of run. Uses transaction support via database.GetTx().
	CreateBatch(ctx context.Context, run *domain.AuditRun) error

	// ListByRun returns the stored rows of a run ordered by record index and insertion order.
	ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.AuditRecord, error)
}

// AnonymizationUseCase anonymizes the target columns of a record set.
type AnonymizationUseCase interface {
	// Anonymize transforms opts.Columns of table under secret and returns the resulting
	// table (a copy unless opts.InPlace) with one mapping per record in input order.
	Anonymize(
		ctx context.Context,
		table records.Table,
		secret keysDomain.Secret,
		opts domain.Options,
	) (*domain.Result, error)
}

// AuditUseCase stores and retrieves the mapping trail of anonymization runs.
type AuditUseCase interface {
	// Record persists the mappings of result as a new run inside a transaction.
	Record(ctx context.Context, mode domain.Mode, result *domain.Result) (*domain.AuditRun, error)

	// Get loads a previously recorded run.
	Get(ctx context.Context, runID uuid.UUID) (*domain.AuditRun, error)
}
