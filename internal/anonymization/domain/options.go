package domain

import (
	"github.com/allisson/anonymizer/internal/records"
)

// Options configures one anonymization run.
type Options struct {
	// Columns lists the target columns. Columns absent from the table are skipped.
	Columns []string
	Mode    Mode
	// InPlace mutates the input table instead of working on a copy.
	InPlace bool
	// EmailPreserveDomain keeps the domain of email values readable.
	EmailPreserveDomain bool
	// HMACTokenLength is the token length for generic columns in hash mode.
	HMACTokenLength int
	// HMACEmailLength is the token length for email parts in hash mode.
	HMACEmailLength int
	// LegacyEmailLength hashes whole non-preserved emails to
	// HMACEmailLength plus the domain length characters.
	LegacyEmailLength bool
	// Workers bounds record-level parallelism.
	Workers int
}

// DefaultOptions returns hash mode with domain preservation and default token lengths.
func DefaultOptions(columns ...string) Options {
	return Options{
		Columns:             columns,
		Mode:                ModeHash,
		EmailPreserveDomain: true,
		HMACTokenLength:     DefaultTokenLength,
		HMACEmailLength:     DefaultEmailTokenLength,
		Workers:             1,
	}
}

// WithDefaults fills zero values with their defaults.
func (o Options) WithDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeHash
	}
	if o.HMACTokenLength == 0 {
		o.HMACTokenLength = DefaultTokenLength
	}
	if o.HMACEmailLength == 0 {
		o.HMACEmailLength = DefaultEmailTokenLength
	}
	if o.Workers == 0 {
		o.Workers = 1
	}
	return o
}

// Validate checks the options after defaults are applied.
func (o Options) Validate() error {
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if len(o.Columns) == 0 {
		return ErrNoColumns
	}
	if o.HMACTokenLength < 1 || o.HMACTokenLength > MaxTokenLength {
		return ErrInvalidTokenLength
	}
	if o.HMACEmailLength < 1 || o.HMACEmailLength > MaxTokenLength {
		return ErrInvalidTokenLength
	}
	if o.Workers < 1 {
		return ErrInvalidWorkers
	}
	return nil
}

// Result is the output of a run: the anonymized table and one mapping per record.
type Result struct {
	Table    records.Table
	Mappings []RecordMapping
}
