// Package validate provides input validation utilities for the nd dispatcher,
// ensuring option records and namespace tokens are well formed before any
// resolution or orchestration runs.
//
// Implements validation over the go-playground/validator library plus
// dispatcher-specific rules for namespace segments. Catching malformed input at
// the CLI boundary keeps the resolver and orchestrators free of defensive
// checks.
//
// VALIDATION COVERAGE:
//   - Fields: single-value validation via validator tags
//   - Frequencies: non-negative second counts for update and clock windows
//   - Segments: namespace token format (no reserved separator, non-empty)
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nd-dev/toolbelt/internal/config"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// ValidateField validates individual values against specified validation rules
// using the go-playground/validator library. Provides flexible validation for
// single fields without requiring struct definitions.
//
// Example: ValidateField(freq, "min=0")
func ValidateField(value interface{}, tag string) error {
	return validate.Var(value, tag)
}

// ValidateRequiredString validates that a string field is not empty, with a
// consistent error message naming the field.
func ValidateRequiredString(value, fieldName string) error {
	if err := ValidateField(value, "required"); err != nil {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}
	return nil
}

// ValidateFrequencySeconds validates a freshness-window flag value. Zero is
// allowed: for the clock check it means "check on every invocation".
func ValidateFrequencySeconds(seconds int, name string) error {
	if err := ValidateField(seconds, "min=0"); err != nil {
		return fmt.Errorf("%s must be zero or a positive number of seconds", name)
	}
	return nil
}

// SegmentFormat validates a namespace token before it is joined into a
// candidate executable name. A segment containing the reserved separator would
// alias a deeper namespace path and produce undefined catalog behavior, so it
// is rejected here rather than escaped.
func SegmentFormat(segment string) error {
	if segment == "" {
		return fmt.Errorf("namespace segment cannot be empty")
	}
	if strings.Contains(segment, config.NamespaceSeparator) {
		return fmt.Errorf("namespace segment %q cannot contain the reserved separator %q",
			segment, config.NamespaceSeparator)
	}
	return nil
}
