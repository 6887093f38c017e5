package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/database"
)

// auditUseCase implements AuditUseCase.
type auditUseCase struct {
	txManager database.TxManager
	repo      MappingRepository
	logger    *slog.Logger
}

// NewAuditUseCase creates an AuditUseCase backed by repo.
func NewAuditUseCase(txManager database.TxManager, repo MappingRepository, logger *slog.Logger) AuditUseCase {
	return &auditUseCase{
		txManager: txManager,
		repo:      repo,
		logger:    logger,
	}
}

// Record implements AuditUseCase.
func (a *auditUseCase) Record(
	ctx context.Context,
	mode domain.Mode,
	result *domain.Result,
) (*domain.AuditRun, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	run := &domain.AuditRun{
		ID:        id,
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
		Mappings:  result.Mappings,
	}

	err = a.txManager.WithTx(ctx, func(ctx context.Context) error {
		return a.repo.CreateBatch(ctx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record anonymization run: %w", err)
	}

	a.logger.Info("anonymization run recorded",
		slog.String("run_id", run.ID.String()),
		slog.String("mode", mode.String()),
		slog.Int("records", len(run.Mappings)),
	)
	return run, nil
}

// Get implements AuditUseCase.
func (a *auditUseCase) Get(ctx context.Context, runID uuid.UUID) (*domain.AuditRun, error) {
	rows, err := a.repo.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrRunNotFound
	}

	return &domain.AuditRun{
		ID:        runID,
		Mode:      rows[0].Mode,
		CreatedAt: rows[0].CreatedAt,
		Mappings:  domain.GroupAuditRecords(rows),
	}, nil
}
