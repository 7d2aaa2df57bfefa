package templates

import (
	"fmt"

	"github.com/jonwraymond/ogimage/markup"
)

// OGConfig is the standard social preview size.
var OGConfig = Config{Width: 1200, Height: 630}

// Config is the output size of a render.
type Config struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Merge returns c with every non-zero field of override applied.
func (c Config) Merge(override Config) Config {
	if override.Width > 0 {
		c.Width = override.Width
	}
	if override.Height > 0 {
		c.Height = override.Height
	}
	return c
}

// Validate checks that both dimensions are positive.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %dx%d", ErrInvalidTemplate, c.Width, c.Height)
	}
	return nil
}

// Params holds validated template parameters.
type Params map[string]string

// Get returns the value of name, or "" when absent.
func (p Params) Get(name string) string {
	return p[name]
}

// Has reports whether name holds a non-empty value.
// Templates use it to decide whether optional content is shown.
func (p Params) Has(name string) bool {
	return p[name] != ""
}

// Lookup returns the value of name and whether it was set at all.
func (p Params) Lookup(name string) (string, bool) {
	v, ok := p[name]
	return v, ok
}

// RenderFunc turns validated parameters into a markup tree.
// It must be pure: same inputs, same tree, no side effects.
type RenderFunc func(p Params, c Config) *markup.Node

// Template is a named, validated image design.
type Template struct {
	Name          string
	Description   string
	Schema        *Schema
	DefaultConfig Config
	Render        RenderFunc
}

// Validate checks that the template is complete.
func (t *Template) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: template is nil", ErrInvalidTemplate)
	}
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	if t.Schema == nil {
		return fmt.Errorf("%w: %s: schema is required", ErrInvalidTemplate, t.Name)
	}
	if t.Render == nil {
		return fmt.Errorf("%w: %s: render function is required", ErrInvalidTemplate, t.Name)
	}
	if err := t.DefaultConfig.Validate(); err != nil {
		return fmt.Errorf("%s: %w", t.Name, err)
	}
	return nil
}

// Summary is the public description of a registered template.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
