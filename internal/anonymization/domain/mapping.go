package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/anonymizer/internal/records"
)

// MappingEntry pairs an original value with its anonymized replacement.
type MappingEntry struct {
	Column     string        `json:"column"`
	Original   records.Value `json:"original"`
	Anonymized records.Value `json:"anonymized"`
}

// RecordMapping holds the entries for one record in target column order.
// It encodes as a JSON object keyed by column.
type RecordMapping struct {
	Entries []MappingEntry
}

// Get returns the entry for column.
func (m RecordMapping) Get(column string) (MappingEntry, bool) {
	for _, e := range m.Entries {
		if e.Column == column {
			return e, true
		}
	}
	return MappingEntry{}, false
}

// Columns returns the mapped columns in order.
func (m RecordMapping) Columns() []string {
	cols := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		cols[i] = e.Column
	}
	return cols
}

type mappingPair struct {
	Original   records.Value `json:"original"`
	Anonymized records.Value `json:"anonymized"`
}

// MarshalJSON encodes {"col": {"original": ..., "anonymized": ...}, ...} keeping entry order.
func (m RecordMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Column)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(mappingPair{Original: e.Original, Anonymized: e.Anonymized})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AuditRun is a persisted anonymization run.
type AuditRun struct {
	ID        uuid.UUID
	Mode      Mode
	CreatedAt time.Time
	Mappings  []RecordMapping
}

// AuditRecord is one stored mapping row.
type AuditRecord struct {
	ID              uuid.UUID
	RunID           uuid.UUID
	Mode            Mode
	RecordIndex     int
	Column          string
	OriginalValue   records.Value
	AnonymizedValue records.Value
	CreatedAt       time.Time
}

// Flatten expands a run into one row per mapped cell.
func (r *AuditRun) Flatten() []*AuditRecord {
	var out []*AuditRecord
	for idx, m := range r.Mappings {
		for _, e := range m.Entries {
			out = append(out, &AuditRecord{
				ID:              uuid.Must(uuid.NewV7()),
				RunID:           r.ID,
				Mode:            r.Mode,
				RecordIndex:     idx,
				Column:          e.Column,
				OriginalValue:   e.Original,
				AnonymizedValue: e.Anonymized,
				CreatedAt:       r.CreatedAt,
			})
		}
	}
	return out
}

// GroupAuditRecords rebuilds per-record mappings from stored rows ordered by record index.
func GroupAuditRecords(rows []*AuditRecord) []RecordMapping {
	var out []RecordMapping
	for _, row := range rows {
		for len(out) <= row.RecordIndex {
			out = append(out, RecordMapping{})
		}
		out[row.RecordIndex].Entries = append(out[row.RecordIndex].Entries, MappingEntry{
			Column:     row.Column,
			Original:   row.OriginalValue,
			Anonymized: row.AnonymizedValue,
		})
	}
	return out
}
