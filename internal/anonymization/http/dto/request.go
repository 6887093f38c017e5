// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"bytes"
	"encoding/json"
	"fmt"

	validation "github.com/jellydator/validation"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/records"
	customValidation "github.com/allisson/anonymizer/internal/validation"
)

// MaxRecordsPerRequest bounds the record count of a single anonymize request.
const MaxRecordsPerRequest = 10000

// AnonymizeRequest contains the records to anonymize and the per-request options.
// Optional fields fall back to the server defaults.
type AnonymizeRequest struct {
	Columns             []string          `json:"columns"`
	Mode                string            `json:"mode,omitempty"`
	EmailPreserveDomain *bool             `json:"email_preserve_domain,omitempty"`
	HMACTokenLength     *int              `json:"hmac_token_len,omitempty"`
	HMACEmailLength     *int              `json:"hmac_email_len,omitempty"`
	Records             []json.RawMessage `json:"records"`
	IncludeMappings     bool              `json:"include_mappings"`
}

// Validate checks if the anonymize request is valid.
func (r *AnonymizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Columns,
			validation.Required,
			customValidation.ColumnNames,
		),
		validation.Field(&r.Mode, customValidation.AnonymizationMode),
		validation.Field(&r.HMACTokenLength,
			validation.Min(1),
			validation.Max(domain.MaxTokenLength),
		),
		validation.Field(&r.HMACEmailLength,
			validation.Min(1),
			validation.Max(domain.MaxTokenLength),
		),
		validation.Field(&r.Records,
			validation.Required,
			validation.Length(1, MaxRecordsPerRequest),
		),
	)
}

// ToOptions overlays the request fields on defaults. The table built by ToTable is
// owned by the request, so the run works in place.
func (r *AnonymizeRequest) ToOptions(defaults domain.Options) (domain.Options, error) {
	opts := defaults
	opts.Columns = r.Columns
	opts.InPlace = true

	if r.Mode != "" {
		mode, err := domain.ParseMode(r.Mode)
		if err != nil {
			return domain.Options{}, err
		}
		opts.Mode = mode
	}
	if r.EmailPreserveDomain != nil {
		opts.EmailPreserveDomain = *r.EmailPreserveDomain
	}
	if r.HMACTokenLength != nil {
		opts.HMACTokenLength = *r.HMACTokenLength
	}
	if r.HMACEmailLength != nil {
		opts.HMACEmailLength = *r.HMACEmailLength
	}
	return opts, nil
}

// ToTable decodes the request records into a table. Columns are the union of the
// record keys in first-seen order.
func (r *AnonymizeRequest) ToTable() (*records.MemoryTable, error) {
	var buf bytes.Buffer
	for _, raw := range r.Records {
		buf.Write(raw)
		buf.WriteByte('\n')
	}
	table, err := records.ReadJSONLines(&buf)
	if err != nil {
		return nil, fmt.Errorf("invalid records: %w", err)
	}
	return table, nil
}
