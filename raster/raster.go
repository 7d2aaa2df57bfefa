// Package raster converts SVG documents to PNG images.
//
// SVGRasterizer parses the document with oksvg and fills paths with the
// rasterx scanline rasterizer. Output is scaled to a target width with the
// aspect ratio kept.
package raster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

var (
	// ErrEmptyDocument is returned for zero-length input.
	ErrEmptyDocument = errors.New("raster: empty document")

	// ErrInvalidDocument is returned when the SVG cannot be parsed or has no size.
	ErrInvalidDocument = errors.New("raster: invalid svg document")
)

// Options controls rasterization.
type Options struct {
	// FitToWidth is the output width in pixels. Zero keeps the document width.
	FitToWidth int
}

// Rasterizer converts SVG to PNG.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: cancellation is checked before decoding and before encoding.
// - Errors: input problems wrap ErrEmptyDocument or ErrInvalidDocument.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, opts Options) ([]byte, error)
}

// SVGRasterizer rasterizes with oksvg and rasterx.
type SVGRasterizer struct {
	encoder png.Encoder
}

// NewSVGRasterizer creates a rasterizer that encodes with the given PNG
// compression level.
func NewSVGRasterizer(level png.CompressionLevel) *SVGRasterizer {
	return &SVGRasterizer{encoder: png.Encoder{CompressionLevel: level}}
}

// Rasterize implements Rasterizer.
func (r *SVGRasterizer) Rasterize(ctx context.Context, svg []byte, opts Options) ([]byte, error) {
	if len(svg) == 0 {
		return nil, ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("%w: viewBox %gx%g", ErrInvalidDocument, vw, vh)
	}

	w, h := Fit(vw, vh, opts.FitToWidth)
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.encoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("raster: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Fit returns the pixel size of a w by h document scaled to width. A
// non-positive width keeps the document size.
func Fit(w, h float64, width int) (int, int) {
	if width <= 0 {
		return max(1, int(math.Round(w))), max(1, int(math.Round(h)))
	}
	return width, max(1, int(math.Round(h*float64(width)/w)))
}

// Ensure SVGRasterizer implements Rasterizer
var _ Rasterizer = (*SVGRasterizer)(nil)
