// Package mysql implements persistence of anonymization audit mappings for MySQL.
package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/anonymization/repository"
	"github.com/allisson/anonymizer/internal/database"
	apperrors "github.com/allisson/anonymizer/internal/errors"
)

// MySQLMappingRepository implements mapping persistence for MySQL databases.
type MySQLMappingRepository struct {
	db *sql.DB
}

// NewMySQLMappingRepository creates a new MySQL mapping repository.
func NewMySQLMappingRepository(db *sql.DB) *MySQLMappingRepository {
	return &MySQLMappingRepository{db: db}
}

// CreateBatch inserts one row per mapping entry of run.
func (m *MySQLMappingRepository) CreateBatch(ctx context.Context, run *domain.AuditRun) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO anonymization_mappings 
			  (id, run_id, mode, record_index, column_name, original_value, anonymized_value, created_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	runID, err := run.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal run id")
	}

	for _, row := range run.Flatten() {
		id, err := row.ID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal mapping id")
		}

		_, err = querier.ExecContext(
			ctx,
			query,
			id,
			runID,
			string(row.Mode),
			row.RecordIndex,
			row.Column,
			repository.NullString(row.OriginalValue),
			repository.NullString(row.AnonymizedValue),
			row.CreatedAt,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to create anonymization mapping")
		}
	}
	return nil
}

// ListByRun returns the rows of a run ordered by record index and id.
func (m *MySQLMappingRepository) ListByRun(ctx context.Context, runID uuid.UUID) ([]*domain.AuditRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, run_id, mode, record_index, column_name, original_value, anonymized_value, created_at 
			  FROM anonymization_mappings 
			  WHERE run_id = ? 
			  ORDER BY record_index ASC, id ASC`

	runIDBytes, err := runID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal run id")
	}

	rows, err := querier.QueryContext(ctx, query, runIDBytes)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list anonymization mappings")
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]*domain.AuditRecord, 0)
	for rows.Next() {
		var (
			record               domain.AuditRecord
			id, rid              []byte
			mode                 string
			original, anonymized sql.NullString
		)
		if err := rows.Scan(
			&id,
			&rid,
			&mode,
			&record.RecordIndex,
			&record.Column,
			&original,
			&anonymized,
			&record.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan anonymization mapping")
		}
		if err := record.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal mapping id")
		}
		if err := record.RunID.UnmarshalBinary(rid); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal run id")
		}
		record.Mode = domain.Mode(mode)
		record.OriginalValue = repository.ValueFromNullString(original)
		record.AnonymizedValue = repository.ValueFromNullString(anonymized)
		out = append(out, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate anonymization mappings")
	}
	return out, nil
}
