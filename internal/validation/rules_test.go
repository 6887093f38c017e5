package validation

import (
	"errors"
	"testing"

	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/anonymizer/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("columns: cannot be blank"))
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "columns: cannot be blank")
}

func TestStringRules(t *testing.T) {
	tests := []struct {
		name      string
		rule      validation.Rule
		value     string
		shouldErr bool
	}{
		{"not blank ok", NotBlank, "email", false},
		{"not blank spaces", NotBlank, "   ", true},
		{"no whitespace ok", NoWhitespace, "email", false},
		{"no whitespace leading", NoWhitespace, " email", true},
		{"mode hash", AnonymizationMode, "hash", false},
		{"mode fpe alias", AnonymizationMode, "fpe", false},
		{"mode unknown", AnonymizationMode, "encrypt", true},
		{"mode empty passes", AnonymizationMode, "", false},
		{"key mode local", KeyMode, "local", false},
		{"key mode unknown", KeyMode, "hsm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, tt.rule)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestColumnNames(t *testing.T) {
	assert.NoError(t, validation.Validate([]string{"email", "group"}, ColumnNames))
	assert.Error(t, validation.Validate([]string{"email", " "}, ColumnNames))
	assert.Error(t, validation.Validate("email", ColumnNames))
}
