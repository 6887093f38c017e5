// Package service implements the per-value anonymization primitives: the keyed-hash
// tokenizer, the format-preserving transformer with its shim fallback, and the FF1
// cipher adapter.
package service

import (
	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// FormatCipher is a true format-preserving cipher. Implementations return an error
// for any input they cannot encipher; callers fall back to the shim.
type FormatCipher interface {
	// EncryptNumeric enciphers a string of decimal digits into digits of the same length.
	EncryptNumeric(digits string, tweak []byte) (string, error)
	// EncryptString enciphers value over alphabet into a string of the same length.
	EncryptString(alphabet, value string, tweak []byte) (string, error)
}

// ValueAnonymizer transforms one cell according to its column classification.
type ValueAnonymizer interface {
	AnonymizeValue(column string, class domain.ColumnClassification, v records.Value) records.Value
}
