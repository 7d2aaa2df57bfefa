package templates

import "strings"

// FormatURL marks a field whose value must be an absolute URL.
const FormatURL = "uri"

// Field declares one string parameter of a template.
// Fields are built with String and refined with chained methods:
//
//	templates.String("title").Min(1).Max(100)
//	templates.String("logo").URL().Optional()
//	templates.String("bgColor").Default("#0f172a")
type Field struct {
	name     string
	required bool
	def      *string
	min      int
	max      int
	format   string
}

// String declares a required string field.
func String(name string) Field {
	return Field{name: name, required: true}
}

// Min sets the minimum length in characters.
func (f Field) Min(n int) Field {
	f.min = n
	return f
}

// Max sets the maximum length in characters.
func (f Field) Max(n int) Field {
	f.max = n
	return f
}

// URL requires the value to be an absolute URL.
func (f Field) URL() Field {
	f.format = FormatURL
	return f
}

// Optional allows the field to be absent.
func (f Field) Optional() Field {
	f.required = false
	return f
}

// Default makes the field optional and fills v when it is absent.
func (f Field) Default(v string) Field {
	f.required = false
	f.def = &v
	return f
}

// Name returns the parameter name.
func (f Field) Name() string { return f.name }

// FieldInfo describes a field for template introspection.
type FieldInfo struct {
	Key       string  `json:"key"`
	Type      string  `json:"type"`
	Required  bool    `json:"required"`
	Default   *string `json:"default,omitempty"`
	MinLength int     `json:"minLength,omitempty"`
	MaxLength int     `json:"maxLength,omitempty"`
	Format    string  `json:"format,omitempty"`

	// Advanced marks color overrides that most callers leave alone.
	Advanced bool `json:"advanced"`
}

func (f Field) info() FieldInfo {
	return FieldInfo{
		Key:       f.name,
		Type:      "string",
		Required:  f.required,
		Default:   f.def,
		MinLength: f.min,
		MaxLength: f.max,
		Format:    f.format,
		Advanced:  IsAdvancedField(f.name),
	}
}

// IsAdvancedField reports whether a parameter is a per-color override.
// The theme color itself is not advanced.
func IsAdvancedField(name string) bool {
	if name == "textMuted" {
		return true
	}
	return strings.HasSuffix(name, "Color") && name != "themeColor"
}
