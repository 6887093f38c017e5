// Package repository implements persistence of anonymization audit mappings for
// PostgreSQL, with the MySQL variant in the mysql subpackage.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/database"
	apperrors "github.com/allisson/anonymizer/internal/errors"
	"github.com/allisson/anonymizer/internal/records"
)

// PostgreSQLMappingRepository implements mapping persistence for PostgreSQL databases.
type PostgreSQLMappingRepository struct {
	db *sql.DB
}

// NewPostgreSQLMappingRepository creates a new PostgreSQL mapping repository.
func NewPostgreSQLMappingRepository(db *sql.DB) *PostgreSQLMappingRepository {
	return &PostgreSQLMappingRepository{db: db}
}

// CreateBatch inserts one row per mapping entry of run.
func (p *PostgreSQLMappingRepository) CreateBatch(ctx context.Context, run *domain.AuditRun) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO anonymization_mappings 
			  (id, run_id, mode, record_index, column_name, original_value, anonymized_value, created_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, row := range run.Flatten() {
		_, err := querier.ExecContext(
			ctx,
			query,
			row.ID,
			row.RunID,
			string(row.Mode),
			row.RecordIndex,
			row.Column,
			NullString(row.OriginalValue),
			NullString(row.AnonymizedValue),
			row.CreatedAt,
		)
		if err != nil {
			return apperrors.Wrap(err, "failed to create anonymization mapping")
		}
	}
	return nil
}

// ListByRun returns the rows of a run ordered by record index and id.
func (p *PostgreSQLMappingRepository) ListByRun(
	ctx context.Context,
	runID uuid.UUID,
) ([]*domain.AuditRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, run_id, mode, record_index, column_name, original_value, anonymized_value, created_at 
			  FROM anonymization_mappings 
			  WHERE run_id = $1 
			  ORDER BY record_index ASC, id ASC`

	rows, err := querier.QueryContext(ctx, query, runID)
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
			mode                 string
			original, anonymized sql.NullString
		)
		if err := rows.Scan(
			&record.ID,
			&record.RunID,
			&mode,
			&record.RecordIndex,
			&record.Column,
			&original,
			&anonymized,
			&record.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan anonymization mapping")
		}
		record.Mode = domain.Mode(mode)
		record.OriginalValue = ValueFromNullString(original)
		record.AnonymizedValue = ValueFromNullString(anonymized)
		out = append(out, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate anonymization mappings")
	}
	return out, nil
}

// NullString converts a cell to its nullable SQL form.
func NullString(v records.Value) sql.NullString {
	return sql.NullString{String: v.String, Valid: v.Valid}
}

// ValueFromNullString converts a nullable SQL string to a cell.
func ValueFromNullString(s sql.NullString) records.Value {
	if !s.Valid {
		return records.Null()
	}
	return records.NewValue(s.String)
}
