// Package records provides the tabular record set the anonymizer reads from and
// writes to, plus CSV and JSON Lines codecs for it.
package records

import (
	"bytes"
	"encoding/json"
)

// Value is a single cell. A Value with Valid == false is missing (null) and passes
// through every transformation unchanged.
type Value struct {
	String string
	Valid  bool

	// literal marks non-string JSON scalars (numbers, booleans) so they are written
	// back verbatim.
	literal bool
}

// NewValue returns a present string cell.
func NewValue(s string) Value {
	return Value{String: s, Valid: true}
}

// Null returns a missing cell.
func Null() Value {
	return Value{}
}

// IsNull reports whether v is missing.
func (v Value) IsNull() bool {
	return !v.Valid
}

// Equal compares two cells by presence and string content.
func (v Value) Equal(other Value) bool {
	return v.Valid == other.Valid && v.String == other.String
}

// MarshalJSON encodes missing cells as null and literals verbatim.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return []byte("null"), nil
	}
	if v.literal {
		return []byte(v.String), nil
	}
	return json.Marshal(v.String)
}

// UnmarshalJSON accepts null, strings and any other JSON value; non-string values
// keep their compact JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Null()
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = NewValue(s)
		return nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return err
	}
	*v = Value{String: compact.String(), Valid: true, literal: true}
	return nil
}
