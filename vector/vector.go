package vector

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/ogimage/fonts"
	"github.com/jonwraymond/ogimage/markup"
)

var (
	// ErrNilNode is returned when there is no tree to render.
	ErrNilNode = errors.New("vector: nil node")

	// ErrInvalidSize is returned for non-positive canvas dimensions.
	ErrInvalidSize = errors.New("vector: invalid canvas size")
)

// Options controls a single render.
type Options struct {
	Width  int
	Height int
	Fonts  []fonts.Font
}

// Renderer turns a markup tree into an SVG document.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: implementations honor cancellation before starting work.
// - Errors: ErrNilNode, ErrInvalidSize or a font error; never partial output.
type Renderer interface {
	Render(ctx context.Context, root *markup.Node, opts Options) ([]byte, error)
}

// SVGRenderer lays out the tree and writes glyph outlines. It holds no state.
type SVGRenderer struct{}

// NewSVGRenderer creates a renderer.
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

// Render implements Renderer. The root element is sized to the canvas.
func (r *SVGRenderer) Render(ctx context.Context, root *markup.Node, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNilNode
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if len(opts.Fonts) == 0 {
		return nil, fonts.ErrNoFonts
	}

	tree := build(markup.Normalize(root), rootStyle())
	if tree == nil {
		return (&painter{}).document(opts.Width, opts.Height), nil
	}

	sh := &shaper{table: opts.Fonts}
	l := &layouter{shaper: sh}
	w, h := float64(opts.Width), float64(opts.Height)
	l.layout(tree, w, h, true)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := &painter{shaper: sh}
	if err := p.paint(tree, 0, 0, 1); err != nil {
		return nil, err
	}
	return p.document(opts.Width, opts.Height), nil
}

// Ensure SVGRenderer implements Renderer
var _ Renderer = (*SVGRenderer)(nil)
