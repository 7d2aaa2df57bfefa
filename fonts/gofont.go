package fonts

import (
	"context"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
)

// GoFontName is the family name reported by GoFontProvider.
const GoFontName = "Go"

// GoFontProvider serves the Go font family embedded in the binary.
// It needs no files on disk, which makes it the fallback when no font
// directory is configured.
type GoFontProvider struct{}

// NewGoFontProvider creates a provider for the embedded Go fonts.
func NewGoFontProvider() *GoFontProvider {
	return &GoFontProvider{}
}

// Load parses the embedded faces.
func (p *GoFontProvider) Load(_ context.Context) ([]Font, error) {
	faces := []struct {
		weight int
		style  string
		data   []byte
	}{
		{400, StyleNormal, goregular.TTF},
		{400, StyleItalic, goitalic.TTF},
		{500, StyleNormal, gomedium.TTF},
		{700, StyleNormal, gobold.TTF},
		{700, StyleItalic, gobolditalic.TTF},
	}

	out := make([]Font, 0, len(faces))
	for _, f := range faces {
		font, err := Parse(GoFontName, f.weight, f.style, f.data)
		if err != nil {
			return nil, err
		}
		out = append(out, font)
	}
	return out, nil
}

// Ensure GoFontProvider implements Provider
var _ Provider = (*GoFontProvider)(nil)
