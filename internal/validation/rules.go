// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	anonymizationDomain "github.com/allisson/anonymizer/internal/anonymization/domain"
	apperrors "github.com/allisson/anonymizer/internal/errors"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// AnonymizationMode validates an anonymization mode name. Empty strings pass so
// that Required decides.
var AnonymizationMode = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := anonymizationDomain.ParseMode(s)
		return err == nil
	},
	validation.NewError("validation_anonymization_mode", "must be hash or format-preserving"),
)

// KeyMode validates a key provisioning mode name.
var KeyMode = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := keysDomain.ParseMode(s)
		return err == nil
	},
	validation.NewError("validation_key_mode", "must be local or remote"),
)

// ColumnNames validates a list of target column names: each must be non-blank.
var ColumnNames = validation.By(func(value interface{}) error {
	columns, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_columns_type", "must be a list of strings")
	}
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return validation.NewError("validation_column_blank", "must not contain blank column names")
		}
	}
	return nil
})
