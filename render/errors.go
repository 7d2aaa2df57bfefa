package render

import (
	"errors"
	"fmt"

	"github.com/jonwraymond/ogimage/templates"
)

// Sentinel errors for render operations.
var (
	ErrTemplateNotFound  = errors.New("render: template not found")
	ErrInvalidParameters = errors.New("render: invalid parameters")
	ErrRenderFailed      = errors.New("render: failed to render image")

	// ErrTemplatePanic is wrapped when a template render function panics.
	ErrTemplatePanic = errors.New("render: template panicked")

	// ErrNilRegistry is returned by New without a registry.
	ErrNilRegistry = errors.New("render: registry is nil")
)

// TemplateNotFoundError reports an unknown template name.
type TemplateNotFoundError struct {
	Name      string
	Available []string
}

// Error implements error.
func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrTemplateNotFound, e.Name)
}

// Is reports whether target is ErrTemplateNotFound.
func (e *TemplateNotFoundError) Is(target error) bool {
	return target == ErrTemplateNotFound
}

// InvalidParametersError reports parameters rejected by a template schema.
type InvalidParametersError struct {
	Template string
	Err      *templates.ValidationError
}

// Error implements error.
func (e *InvalidParametersError) Error() string {
	return fmt.Sprintf("%s for %q: %v", ErrInvalidParameters, e.Template, e.Err)
}

// Is reports whether target is ErrInvalidParameters.
func (e *InvalidParametersError) Is(target error) bool {
	return target == ErrInvalidParameters
}

// Unwrap returns the schema validation error.
func (e *InvalidParametersError) Unwrap() error {
	return e.Err
}

// Details returns the issues grouped by field.
func (e *InvalidParametersError) Details() templates.FlatIssues {
	return e.Err.Flatten()
}

// RenderFailedError reports a failure while producing the image.
type RenderFailedError struct {
	Template string
	Err      error
}

// Error implements error.
func (e *RenderFailedError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrRenderFailed, e.Template, e.Err)
}

// Is reports whether target is ErrRenderFailed.
func (e *RenderFailedError) Is(target error) bool {
	return target == ErrRenderFailed
}

// Unwrap returns the underlying engine error.
func (e *RenderFailedError) Unwrap() error {
	return e.Err
}

// Message returns the engine error text without the render prefix.
func (e *RenderFailedError) Message() string {
	if e.Err == nil {
		return "Unknown error"
	}
	return e.Err.Error()
}

// Status classifies the outcome of a render.
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusBadRequest
	StatusServerError
)

// String returns the name of the status class.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusBadRequest:
		return "bad_request"
	default:
		return "server_error"
	}
}

// StatusOf maps err to a status class. Anything unrecognized is a server error.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrTemplateNotFound):
		return StatusNotFound
	case errors.Is(err, ErrInvalidParameters):
		return StatusBadRequest
	default:
		return StatusServerError
	}
}
