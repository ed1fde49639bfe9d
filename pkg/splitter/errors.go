package splitter

import (
	"fmt"
	"strings"

	goValidator "github.com/go-playground/validator/v10"
)

// HeaderNotFoundError is returned when no frame header can be found in the
// search window around a split target.
type HeaderNotFoundError struct {
	Position int64
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("frame header not found near position %d", e.Position)
}

// optionFieldDescriptions describes each validated field of Options.
var optionFieldDescriptions = map[string]string{
	"Header":    "must contain at least one byte.",
	"MaxSize":   "must be greater than zero.",
	"OutputDir": "must be set.",
	"Workers":   "must not be negative.",
}

// ValidationError represents invalid split options.
type ValidationError struct {
	Errors []ValidationErrorItem
}

type ValidationErrorItem struct {
	Message     string
	FailedField string
}

func (err *ValidationError) Error() string {
	messages := make([]string, 0, len(err.Errors))
	for _, e := range err.Errors {
		messages = append(messages, fmt.Sprintf("  - %q %s", strings.ToLower(e.FailedField), e.Message))
	}
	return "invalid split options\n" + strings.Join(messages, "\n")
}

func handleValidatorError(errs error) error {
	fieldErrs, ok := errs.(goValidator.ValidationErrors)
	if !ok {
		return errs
	}

	validationErrors := &ValidationError{}
	for _, err := range fieldErrs {
		validationErrors.Errors = append(validationErrors.Errors, ValidationErrorItem{
			FailedField: err.Field(),
			Message:     optionFieldDescriptions[err.Field()],
		})
	}

	return validationErrors
}
