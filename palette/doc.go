// Package palette derives a harmonious UI color palette from a single theme color.
//
// Colors are handled as "#rrggbb" strings. Conversion between hex and HSL uses
// integer degrees and percentages, so a round trip through HSL can move a
// channel by a few units.
//
// Derivation never fails: a malformed hex string yields meaningless but
// well-formed colors.
package palette
