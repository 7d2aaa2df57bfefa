package templates

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func genericSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema(
		String("title").Min(1).Max(100),
		String("subtitle").Max(150).Optional(),
		String("logo").URL().Optional(),
		String("bgColor").Default("#0f172a"),
		String("accentColor").Default("#6366f1"),
	)
	if err != nil {
		t.Fatalf("NewSchema() error = %v", err)
	}
	return s
}

func TestSchema_ValidAppliesDefaultsAndStripsUnknown(t *testing.T) {
	s := genericSchema(t)

	got, err := s.Validate(map[string]string{
		"title":   "Hello",
		"utm_src": "newsletter",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	want := Params{
		"title":       "Hello",
		"bgColor":     "#0f172a",
		"accentColor": "#6366f1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Validate mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_EmptyStringIsPresent(t *testing.T) {
	s := genericSchema(t)

	got, err := s.Validate(map[string]string{
		"title":    "Hello",
		"subtitle": "",
		"bgColor":  "",
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if v, ok := got.Lookup("subtitle"); !ok || v != "" {
		t.Errorf("subtitle = %q, %v; want present and empty", v, ok)
	}
	if got.Has("subtitle") {
		t.Error("Has(subtitle) should be false for an empty value")
	}
	if v := got.Get("bgColor"); v != "" {
		t.Errorf("bgColor = %q, default must not replace a supplied empty value", v)
	}
}

func TestSchema_Rejections(t *testing.T) {
	s := genericSchema(t)

	tests := []struct {
		name      string
		raw       map[string]string
		wantField string
	}{
		{"missing required", map[string]string{"subtitle": "x"}, "title"},
		{"too short", map[string]string{"title": ""}, "title"},
		{"too long", map[string]string{"title": strings.Repeat("a", 101)}, "title"},
		{"subtitle too long", map[string]string{"title": "ok", "subtitle": strings.Repeat("b", 151)}, "subtitle"},
		{"relative url", map[string]string{"title": "ok", "logo": "not a url"}, "logo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := s.Validate(tt.raw)
			if err == nil {
				t.Fatalf("Validate() = %v, want error", params)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v should match ErrValidation", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error %T is not *ValidationError", err)
			}
			found := false
			for _, is := range ve.Issues {
				if is.Field == tt.wantField && is.Message != "" {
					found = true
				}
			}
			if !found {
				t.Errorf("issues %+v do not mention %q", ve.Issues, tt.wantField)
			}
		})
	}
}

func TestSchema_MissingRequiredMessage(t *testing.T) {
	s := genericSchema(t)
	_, err := s.Validate(map[string]string{})

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	flat := ve.Flatten()
	if diff := cmp.Diff([]string{"Required"}, flat.FieldErrors["title"]); diff != "" {
		t.Errorf("title errors mismatch (-want +got):\n%s", diff)
	}
	if len(flat.FormErrors) != 0 {
		t.Errorf("FormErrors = %v, want none", flat.FormErrors)
	}
}

func TestSchema_AbsoluteURLAccepted(t *testing.T) {
	s := genericSchema(t)
	if _, err := s.Validate(map[string]string{"title": "ok", "logo": "https://example.com/logo.png"}); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewSchema_RejectsBadDeclarations(t *testing.T) {
	if _, err := NewSchema(String("")); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("unnamed field: error = %v, want ErrInvalidSchema", err)
	}
	if _, err := NewSchema(String("a"), String("a")); !errors.Is(err, ErrInvalidSchema) {
		t.Errorf("duplicate field: error = %v, want ErrInvalidSchema", err)
	}
}

func TestSchema_Fields(t *testing.T) {
	s, err := NewSchema(
		String("title").Min(1).Max(100),
		String("themeColor").Default("#5C0909"),
		String("glowColor").Optional(),
	)
	if err != nil {
		t.Fatal(err)
	}

	def := "#5C0909"
	want := []FieldInfo{
		{Key: "title", Type: "string", Required: true, MinLength: 1, MaxLength: 100},
		{Key: "themeColor", Type: "string", Default: &def},
		{Key: "glowColor", Type: "string", Advanced: true},
	}
	if diff := cmp.Diff(want, s.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSchema_Document(t *testing.T) {
	s, err := NewSchema(String("title").Min(1), String("logo").URL().Optional())
	if err != nil {
		t.Fatal(err)
	}
	doc := s.Document()
	if diff := cmp.Diff([]string{"title"}, doc["required"]); diff != "" {
		t.Errorf("required mismatch (-want +got):\n%s", diff)
	}
	props := doc["properties"].(map[string]any)
	logo := props["logo"].(map[string]any)
	if logo["format"] != FormatURL {
		t.Errorf("logo format = %v, want %q", logo["format"], FormatURL)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Issues: []Issue{
		{Field: "title", Message: "Required"},
		{Message: "bad request"},
	}}
	want := "templates: parameters failed validation: title: Required; bad request"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
