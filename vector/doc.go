// Package vector lays out a markup tree and draws it as an SVG document.
//
// Layout follows a subset of CSS flexbox: every element is a flex
// container (row by default), children grow and shrink along the main axis,
// and align along the cross axis. Absolute positioning, percentage sizes,
// auto margins and translate transforms are supported.
//
// Text is shaped with the supplied font table and emitted as glyph outlines,
// so the output does not depend on fonts installed where it is rasterized.
// Backgrounds may be solid colors or linear and radial gradients.
//
// Image elements are drawn as neutral placeholders; remote images are never
// fetched. Blur filters, shadows and clipping are ignored.
package vector
