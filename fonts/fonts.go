// Package fonts loads the font table used to lay out and draw text.
//
// A Provider returns parsed fonts tagged with family name, weight and style.
// DirProvider reads TrueType files from a directory; GoFontProvider serves
// the Go fonts compiled into the binary. Cached wraps any provider so the
// table is loaded once per process and shared by concurrent callers.
package fonts

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Font styles.
const (
	StyleNormal = "normal"
	StyleItalic = "italic"
)

// Sentinel errors for font loading.
var (
	ErrNoFonts     = errors.New("fonts: no fonts available")
	ErrInvalidFont = errors.New("fonts: font data is invalid")
)

// Font is one face of a font family.
type Font struct {
	Name   string
	Weight int
	Style  string
	Data   []byte

	// Face is the parsed font. It is safe for concurrent use as long as
	// each caller brings its own sfnt.Buffer.
	Face *sfnt.Font
}

// Provider supplies the font table.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Load should honor cancellation where it performs I/O.
// - Errors: Load returns an error if any configured face cannot be loaded.
type Provider interface {
	Load(ctx context.Context) ([]Font, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) ([]Font, error)

// Load implements Provider.
func (f ProviderFunc) Load(ctx context.Context) ([]Font, error) {
	return f(ctx)
}

// Parse builds a Font from raw TrueType or OpenType data.
func Parse(name string, weight int, style string, data []byte) (Font, error) {
	face, err := sfnt.Parse(data)
	if err != nil {
		return Font{}, fmt.Errorf("%w: %s %d: %v", ErrInvalidFont, name, weight, err)
	}
	if style == "" {
		style = StyleNormal
	}
	return Font{Name: name, Weight: weight, Style: style, Data: data, Face: face}, nil
}

// Match picks the font closest to the requested weight and style.
// Fonts with the requested style are preferred; among them the nearest
// weight wins, ties going to the heavier face. Returns false for an
// empty table.
func Match(table []Font, weight int, style string) (Font, bool) {
	best := -1
	bestScore := 0
	for i, f := range table {
		score := abs(f.Weight - weight)
		if f.Weight > weight {
			score = score*2 - 1
		} else {
			score *= 2
		}
		if f.Style != style {
			score += 10_000
		}
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 {
		return Font{}, false
	}
	return table[best], true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
