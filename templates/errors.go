package templates

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for template registration and validation.
var (
	ErrInvalidTemplate   = errors.New("templates: template is invalid")
	ErrDuplicateTemplate = errors.New("templates: template already registered")
	ErrInvalidSchema     = errors.New("templates: schema is invalid")
	ErrValidation        = errors.New("templates: parameters failed validation")
)

// Issue describes one problem with a submitted parameter.
// Field is empty for problems that are not tied to a single parameter.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationError reports every issue found while validating parameters.
type ValidationError struct {
	Issues []Issue
}

// Error implements error.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Field == "" {
			parts = append(parts, is.Message)
			continue
		}
		parts = append(parts, is.Field+": "+is.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Flatten groups issues the way form libraries usually present them:
// messages that are not tied to a field, and messages per field.
func (e *ValidationError) Flatten() FlatIssues {
	flat := FlatIssues{
		FormErrors:  []string{},
		FieldErrors: map[string][]string{},
	}
	for _, is := range e.Issues {
		if is.Field == "" {
			flat.FormErrors = append(flat.FormErrors, is.Message)
			continue
		}
		flat.FieldErrors[is.Field] = append(flat.FieldErrors[is.Field], is.Message)
	}
	return flat
}

// FlatIssues is the grouped form of a ValidationError.
type FlatIssues struct {
	FormErrors  []string            `json:"formErrors"`
	FieldErrors map[string][]string `json:"fieldErrors"`
}
