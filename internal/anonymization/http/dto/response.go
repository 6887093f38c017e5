package dto

import (
	"encoding/json"
	"time"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// AnonymizeResponse carries the anonymized records in input order. Mappings are
// included only when requested; RunID is set when the run was recorded.
type AnonymizeResponse struct {
	RunID    string                 `json:"run_id,omitempty"`
	Records  []json.RawMessage      `json:"records"`
	Mappings []domain.RecordMapping `json:"mappings,omitempty"`
}

// MapResultToResponse converts an anonymization result to an API response.
func MapResultToResponse(
	result *domain.Result,
	includeMappings bool,
	run *domain.AuditRun,
) (AnonymizeResponse, error) {
	response := AnonymizeResponse{
		Records: make([]json.RawMessage, 0, result.Table.Len()),
	}
	for row := 0; row < result.Table.Len(); row++ {
		encoded, err := records.EncodeRow(result.Table, row)
		if err != nil {
			return AnonymizeResponse{}, err
		}
		response.Records = append(response.Records, encoded)
	}
	if includeMappings {
		response.Mappings = result.Mappings
	}
	if run != nil {
		response.RunID = run.ID.String()
	}
	return response, nil
}

// RunResponse represents a recorded anonymization run in API responses.
type RunResponse struct {
	ID        string                 `json:"id"`
	Mode      string                 `json:"mode"`
	CreatedAt time.Time              `json:"created_at"`
	Offset    int                    `json:"offset"`
	Limit     int                    `json:"limit"`
	Total     int                    `json:"total"`
	Mappings  []domain.RecordMapping `json:"mappings"`
}

// MapRunToResponse converts a run to an API response holding one page of its
// record mappings.
func MapRunToResponse(run *domain.AuditRun, page []domain.RecordMapping, offset, limit int) RunResponse {
	if page == nil {
		page = []domain.RecordMapping{}
	}
	return RunResponse{
		ID:        run.ID.String(),
		Mode:      string(run.Mode),
		CreatedAt: run.CreatedAt,
		Offset:    offset,
		Limit:     limit,
		Total:     len(run.Mappings),
		Mappings:  page,
	}
}
