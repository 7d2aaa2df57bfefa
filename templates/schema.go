package templates

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const schemaResource = "params.json"

// Schema validates the query parameters of one template.
//
// Contract:
// - Concurrency: safe for concurrent use after construction.
// - Errors: Validate returns a *ValidationError (matching ErrValidation) when
// parameters are rejected.
type Schema struct {
	fields   []Field
	byName   map[string]int
	compiled *jsonschema.Schema
	printer  *message.Printer
}

// NewSchema compiles a schema from field declarations.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields:  fields,
		byName:  make(map[string]int, len(fields)),
		printer: message.NewPrinter(language.English),
	}
	for i, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidSchema, i)
		}
		if _, dup := s.byName[f.name]; dup {
			return nil, fmt.Errorf("%w: field %q declared twice", ErrInvalidSchema, f.name)
		}
		s.byName[f.name] = i
	}

	raw, err := json.Marshal(s.Document())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	c := jsonschema.NewCompiler()
	c.AssertFormat()
	if err := c.AddResource(schemaResource, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	s.compiled, err = c.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Useful for package-level template declarations.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Document returns the JSON Schema for the parameters.
// Unknown properties are allowed so that Validate can strip them.
func (s *Schema) Document() map[string]any {
	props := make(map[string]any, len(s.fields))
	required := []string{}
	for _, f := range s.fields {
		p := map[string]any{"type": "string"}
		if f.min > 0 {
			p["minLength"] = f.min
		}
		if f.max > 0 {
			p["maxLength"] = f.max
		}
		if f.format != "" {
			p["format"] = f.format
		}
		if f.def != nil {
			p["default"] = *f.def
		}
		props[f.name] = p
		if f.required {
			required = append(required, f.name)
		}
	}
	return map[string]any{
		"$schema":    "https://json-schema.org/draft/2020-12/schema",
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// Fields describes every declared field in declaration order.
func (s *Schema) Fields() []FieldInfo {
	out := make([]FieldInfo, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.info()
	}
	return out
}

// Validate checks raw parameters against the schema.
//
// Parameters that are not declared are dropped. Absent fields with a
// default are filled in. An empty string is a present value and is
// validated like any other.
func (s *Schema) Validate(raw map[string]string) (Params, error) {
	instance := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		if v, ok := raw[f.name]; ok {
			instance[f.name] = v
		}
	}

	if err := s.compiled.Validate(instance); err != nil {
		return nil, &ValidationError{Issues: s.issues(err, instance)}
	}

	params := make(Params, len(s.fields))
	for _, f := range s.fields {
		if v, ok := instance[f.name]; ok {
			params[f.name] = v.(string)
			continue
		}
		if f.def != nil {
			params[f.name] = *f.def
		}
	}
	return params, nil
}

func (s *Schema) issues(err error, instance map[string]any) []Issue {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []Issue{{Message: err.Error()}}
	}

	var issues []Issue
	reportedMissing := false
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		if len(e.InstanceLocation) > 0 {
			name := e.InstanceLocation[0]
			issues = append(issues, Issue{Field: name, Message: s.message(name, e.ErrorKind)})
			return
		}
		// Object-level failures are missing required fields.
		if reportedMissing {
			return
		}
		reportedMissing = true
		before := len(issues)
		for _, f := range s.fields {
			if _, ok := instance[f.name]; f.required && !ok {
				issues = append(issues, Issue{Field: f.name, Message: "Required"})
			}
		}
		if len(issues) == before {
			issues = append(issues, Issue{Message: e.ErrorKind.LocalizedString(s.printer)})
		}
	}
	walk(ve)

	if len(issues) == 0 {
		issues = append(issues, Issue{Message: ve.Error()})
	}
	return issues
}

func (s *Schema) message(name string, kind jsonschema.ErrorKind) string {
	i, ok := s.byName[name]
	if !ok || kind == nil {
		return "Invalid value"
	}
	f := s.fields[i]

	keyword := ""
	if path := kind.KeywordPath(); len(path) > 0 {
		keyword = path[len(path)-1]
	}
	switch keyword {
	case "minLength":
		return fmt.Sprintf("String must contain at least %d character(s)", f.min)
	case "maxLength":
		return fmt.Sprintf("String must contain at most %d character(s)", f.max)
	case "format":
		if f.format == FormatURL {
			return "Invalid url"
		}
	case "type":
		return "Expected string"
	}
	return kind.LocalizedString(s.printer)
}
