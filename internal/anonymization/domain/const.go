// Package domain defines the anonymization models: modes, column classification,
// per-record mappings and run options.
package domain

import (
	"strings"

	"github.com/allisson/anonymizer/internal/errors"
)

// Mode selects the per-value transformation.
type Mode string

const (
	// ModeHash replaces values with truncated keyed-hash tokens.
	ModeHash Mode = "hash"
	// ModeFormatPreserving keeps each value's length and character classes.
	ModeFormatPreserving Mode = "format-preserving"
)

// ParseMode parses a mode name case-insensitively. "fpe" is accepted as an alias
// for format-preserving.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeHash):
		return ModeHash, nil
	case string(ModeFormatPreserving), "fpe":
		return ModeFormatPreserving, nil
	default:
		return "", errors.Wrapf(ErrInvalidMode, "mode %q", s)
	}
}

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// ColumnClassification picks the email or generic rule set for a column.
type ColumnClassification int

const (
	ColumnGeneric ColumnClassification = iota
	ColumnEmail
)

func (c ColumnClassification) String() string {
	if c == ColumnEmail {
		return "email"
	}
	return "generic"
}

// ClassifyColumn treats any column whose name contains "email" (any case) as an email column.
func ClassifyColumn(name string) ColumnClassification {
	if strings.Contains(strings.ToLower(name), "email") {
		return ColumnEmail
	}
	return ColumnGeneric
}

// Token lengths used when options leave them unset.
const (
	DefaultTokenLength      = 22
	DefaultEmailTokenLength = 16

	// MaxTokenLength is the length of an unpadded base32 HMAC-SHA256 digest.
	MaxTokenLength = 52
)

// Tweaks that domain-separate the format-preserving transformations of email parts.
const (
	TweakEmail       = "email"
	TweakEmailLocal  = "email-local"
	TweakEmailDomain = "email-domain"
)
