package vector

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jonwraymond/ogimage/markup"
)

type unit uint8

const (
	unitNone unit = iota
	unitPx
	unitPct
	unitAuto
)

// length is a CSS length that may depend on a reference size.
type length struct {
	v float64
	u unit
}

func px(v float64) length { return length{v, unitPx} }

func (l length) set() bool  { return l.u != unitNone }
func (l length) auto() bool { return l.u == unitAuto }

// resolve returns the length in pixels against ref. Percentages of an
// unknown (NaN) reference, auto and unset lengths report false.
func (l length) resolve(ref float64) (float64, bool) {
	switch l.u {
	case unitPx:
		return l.v, true
	case unitPct:
		if math.IsNaN(ref) {
			return 0, false
		}
		return l.v / 100 * ref, true
	}
	return 0, false
}

// or resolves l, falling back to def.
func (l length) or(ref, def float64) float64 {
	if v, ok := l.resolve(ref); ok {
		return v
	}
	return def
}

// parseLength parses numbers (pixels), "Npx", "N%", "Nem", "Nrem" and "auto".
func parseLength(v any, fontSize float64) length {
	switch x := v.(type) {
	case int:
		return px(float64(x))
	case int64:
		return px(float64(x))
	case float64:
		return px(x)
	case float32:
		return px(float64(x))
	case string:
		return parseLengthString(x, fontSize)
	}
	return length{}
}

func parseLengthString(s string, fontSize float64) length {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return length{}
	case s == "auto":
		return length{u: unitAuto}
	case strings.HasSuffix(s, "%"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64); err == nil {
			return length{f, unitPct}
		}
	case strings.HasSuffix(s, "rem"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "rem"), 64); err == nil {
			return px(f * 16)
		}
	case strings.HasSuffix(s, "em"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "em"), 64); err == nil {
			return px(f * fontSize)
		}
	case strings.HasSuffix(s, "px"):
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64); err == nil {
			return px(f)
		}
	default:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return px(f)
		}
	}
	return length{}
}

// parseNumber parses a unitless number such as flexGrow or opacity.
func parseNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// sides holds per-side lengths in top, right, bottom, left order.
type sides [4]length

const (
	top = iota
	right
	bottom
	left
)

// parseSides expands a CSS shorthand of one to four lengths.
func parseSides(v any, fontSize float64) sides {
	if s, ok := v.(string); ok {
		parts := strings.Fields(s)
		ls := make([]length, len(parts))
		for i, p := range parts {
			ls[i] = parseLengthString(p, fontSize)
		}
		switch len(ls) {
		case 1:
			return sides{ls[0], ls[0], ls[0], ls[0]}
		case 2:
			return sides{ls[0], ls[1], ls[0], ls[1]}
		case 3:
			return sides{ls[0], ls[1], ls[2], ls[1]}
		case 4:
			return sides{ls[0], ls[1], ls[2], ls[3]}
		}
		return sides{}
	}
	l := parseLength(v, fontSize)
	return sides{l, l, l, l}
}

type borderSide struct {
	width float64
	color rgba
}

type lineHeight struct {
	factor float64 // multiple of the font size when > 0
	px     float64 // absolute height when > 0
}

// computed is the resolved style of a box.
type computed struct {
	// Inherited text properties.
	color          rgba
	fontSize       float64
	fontWeight     int
	fontStyle      string
	lineHeight     lineHeight
	letterSpacing  float64
	textAlign      string
	textTransform  string
	whiteSpace     string
	textDecoration string

	// Box properties.
	display    string
	direction  string
	justify    string
	alignItems string
	alignSelf  string
	grow       float64
	shrink     float64
	basis      length
	width      length
	height     length
	minWidth   length
	maxWidth   length
	minHeight  length
	maxHeight  length
	padding    sides
	margin     sides
	rowGap     length
	columnGap  length
	position   string
	inset      sides
	border     [4]borderSide
	radius     length
	background string
	opacity    float64
	overflow   string
	transform  string
}

func rootStyle() *computed {
	return &computed{
		color:      black,
		fontSize:   16,
		fontWeight: 400,
		fontStyle:  "normal",
		textAlign:  "left",
		whiteSpace: "normal",
	}
}

// inherit starts a child style: text properties carry over and box
// properties take their initial values.
func (p *computed) inherit() *computed {
	return &computed{
		color:          p.color,
		fontSize:       p.fontSize,
		fontWeight:     p.fontWeight,
		fontStyle:      p.fontStyle,
		lineHeight:     p.lineHeight,
		letterSpacing:  p.letterSpacing,
		textAlign:      p.textAlign,
		textTransform:  p.textTransform,
		whiteSpace:     p.whiteSpace,
		textDecoration: p.textDecoration,

		display:   "flex",
		direction: "row",
		justify:   "flex-start",
		shrink:    1,
		opacity:   1,
		position:  "relative",
	}
}

// resolveStyle computes the style of an element from its parent's.
func resolveStyle(parent *computed, s markup.Style) *computed {
	c := parent.inherit()

	// Font size first: em lengths below depend on it.
	if v, ok := s["fontSize"]; ok {
		if l := parseLength(v, parent.fontSize); l.u == unitPx {
			c.fontSize = l.v
		} else if l.u == unitPct {
			c.fontSize = parent.fontSize * l.v / 100
		}
	}
	fs := c.fontSize

	// Shorthands first so that longhands override them regardless of order.
	if v, ok := s["flex"]; ok {
		applyFlexShorthand(c, v, fs)
	}
	if v, ok := s["gap"]; ok {
		gs := parseSides(v, fs)
		c.rowGap, c.columnGap = gs[top], gs[right]
	}
	if v, ok := s["inset"]; ok {
		c.inset = parseSides(v, fs)
	}
	if v, ok := s["background"]; ok {
		c.background = asString(v)
	}

	for _, key := range slices.Sorted(maps.Keys(s)) {
		v := s[key]
		switch key {
		case "color":
			if col, ok := parseColor(asString(v)); ok {
				c.color = col
			}
		case "fontWeight":
			if n, ok := parseNumber(v); ok {
				c.fontWeight = int(n)
			} else if asString(v) == "bold" {
				c.fontWeight = 700
			} else if asString(v) == "normal" {
				c.fontWeight = 400
			}
		case "fontStyle":
			c.fontStyle = asString(v)
		case "lineHeight":
			if n, ok := v.(string); ok && strings.HasSuffix(n, "px") {
				c.lineHeight = lineHeight{px: parseLengthString(n, fs).v}
			} else if f, ok := parseNumber(v); ok {
				c.lineHeight = lineHeight{factor: f}
			} else if asString(v) == "normal" {
				c.lineHeight = lineHeight{}
			}
		case "letterSpacing":
			c.letterSpacing = parseLength(v, fs).or(math.NaN(), 0)
		case "textAlign":
			c.textAlign = asString(v)
		case "textTransform":
			c.textTransform = asString(v)
		case "whiteSpace":
			c.whiteSpace = asString(v)
		case "textDecoration", "textDecorationLine":
			c.textDecoration = asString(v)

		case "display":
			c.display = asString(v)
		case "flexDirection":
			c.direction = asString(v)
		case "justifyContent":
			c.justify = asString(v)
		case "alignItems":
			c.alignItems = asString(v)
		case "alignSelf":
			c.alignSelf = asString(v)
		case "flexGrow":
			c.grow, _ = parseNumber(v)
		case "flexShrink":
			c.shrink, _ = parseNumber(v)
		case "flexBasis":
			c.basis = parseLength(v, fs)
		case "width":
			c.width = parseLength(v, fs)
		case "height":
			c.height = parseLength(v, fs)
		case "minWidth":
			c.minWidth = parseLength(v, fs)
		case "maxWidth":
			c.maxWidth = parseLength(v, fs)
		case "minHeight":
			c.minHeight = parseLength(v, fs)
		case "maxHeight":
			c.maxHeight = parseLength(v, fs)
		case "rowGap":
			c.rowGap = parseLength(v, fs)
		case "columnGap":
			c.columnGap = parseLength(v, fs)
		case "position":
			c.position = asString(v)
		case "top":
			c.inset[top] = parseLength(v, fs)
		case "right":
			c.inset[right] = parseLength(v, fs)
		case "bottom":
			c.inset[bottom] = parseLength(v, fs)
		case "left":
			c.inset[left] = parseLength(v, fs)
		case "borderRadius":
			c.radius = parseLength(v, fs)
		case "backgroundColor", "backgroundImage":
			c.background = asString(v)
		case "opacity":
			if n, ok := parseNumber(v); ok {
				c.opacity = clamp01(n)
			}
		case "overflow":
			c.overflow = asString(v)
		case "transform":
			c.transform = asString(v)
		}
	}

	if v, ok := s["padding"]; ok {
		c.padding = parseSides(v, fs)
	}
	if v, ok := s["margin"]; ok {
		c.margin = parseSides(v, fs)
	}
	applySideLonghands(&c.padding, s, "padding", fs)
	applySideLonghands(&c.margin, s, "margin", fs)
	applyBorders(c, s, fs)

	return c
}

func applyFlexShorthand(c *computed, v any, fs float64) {
	if n, ok := parseNumber(v); ok {
		c.grow, c.shrink, c.basis = n, 1, px(0)
		return
	}
	parts := strings.Fields(asString(v))
	switch {
	case len(parts) == 1 && parts[0] == "none":
		c.grow, c.shrink, c.basis = 0, 0, length{u: unitAuto}
	case len(parts) == 1 && parts[0] == "auto":
		c.grow, c.shrink, c.basis = 1, 1, length{u: unitAuto}
	case len(parts) >= 2:
		c.grow, _ = parseNumber(parts[0])
		if n, ok := parseNumber(parts[1]); ok {
			c.shrink = n
			if len(parts) == 3 {
				c.basis = parseLengthString(parts[2], fs)
			} else {
				c.basis = px(0)
			}
		} else {
			c.shrink = 1
			c.basis = parseLengthString(parts[1], fs)
		}
	}
}

var sideNames = [4]string{"Top", "Right", "Bottom", "Left"}

func applySideLonghands(dst *sides, s markup.Style, prefix string, fs float64) {
	if v, ok := s[prefix+"Horizontal"]; ok {
		l := parseLength(v, fs)
		dst[left], dst[right] = l, l
	}
	if v, ok := s[prefix+"Vertical"]; ok {
		l := parseLength(v, fs)
		dst[top], dst[bottom] = l, l
	}
	for i, name := range sideNames {
		if v, ok := s[prefix+name]; ok {
			dst[i] = parseLength(v, fs)
		}
	}
}

func applyBorders(c *computed, s markup.Style, fs float64) {
	if v, ok := s["border"]; ok {
		b := parseBorder(asString(v), fs)
		c.border = [4]borderSide{b, b, b, b}
	}
	if v, ok := s["borderWidth"]; ok {
		w := parseLength(v, fs).or(math.NaN(), 0)
		for i := range c.border {
			c.border[i].width = w
		}
	}
	if v, ok := s["borderColor"]; ok {
		if col, ok := parseColor(asString(v)); ok {
			for i := range c.border {
				c.border[i].color = col
			}
		}
	}
	for i, name := range sideNames {
		if v, ok := s["border"+name]; ok {
			c.border[i] = parseBorder(asString(v), fs)
		}
		if v, ok := s["border"+name+"Width"]; ok {
			c.border[i].width = parseLength(v, fs).or(math.NaN(), 0)
		}
		if v, ok := s["border"+name+"Color"]; ok {
			if col, ok := parseColor(asString(v)); ok {
				c.border[i].color = col
			}
		}
	}
	// A width without a color draws in the text color.
	for i := range c.border {
		if c.border[i].width > 0 && c.border[i].color == (rgba{}) {
			c.border[i].color = c.color
		}
	}
}

// parseBorder parses "<width> <style> <color>" in any order.
func parseBorder(s string, fs float64) borderSide {
	var b borderSide
	if s == "none" || s == "0" {
		return b
	}
	for _, part := range splitTopLevel(s, ' ') {
		switch part {
		case "solid", "dashed", "dotted", "double":
			continue
		case "none":
			return borderSide{}
		}
		if l := parseLengthString(part, fs); l.u == unitPx {
			b.width = l.v
			continue
		}
		if col, ok := parseColor(part); ok {
			b.color = col
		}
	}
	return b
}

// splitTopLevel splits s on sep outside parentheses, dropping empty parts.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				if p := strings.TrimSpace(s[start:i]); p != "" {
					parts = append(parts, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}
