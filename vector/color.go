package vector

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// rgba is a color with alpha in [0,1].
type rgba struct {
	r, g, b uint8
	a       float64
}

var (
	black       = rgba{0, 0, 0, 1}
	transparent = rgba{}
)

// hex formats the opaque part of the color as "#rrggbb".
func (c rgba) hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.r, c.g, c.b)
}

// parseColor parses the CSS color forms used by templates: #rgb, #rgba,
// #rrggbb, #rrggbbaa, rgb(), rgba(), named colors and "transparent".
func parseColor(s string) (rgba, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "":
		return rgba{}, false
	case s == "transparent":
		return transparent, true
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseRGBFunc(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return rgba{c.R, c.G, c.B, float64(c.A) / 255}, true
	}
	return rgba{}, false
}

func parseHexColor(h string) (rgba, bool) {
	expand := func(s string) string {
		var b strings.Builder
		for _, ch := range s {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		return b.String()
	}
	switch len(h) {
	case 3, 4:
		h = expand(h)
	case 6, 8:
	default:
		return rgba{}, false
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rgba{}, false
	}
	if len(h) == 6 {
		return rgba{uint8(v >> 16), uint8(v >> 8), uint8(v), 1}, true
	}
	return rgba{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), float64(uint8(v)) / 255}, true
}

func parseRGBFunc(s string) (rgba, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return rgba{}, false
	}
	inner := s[open+1 : len(s)-1]
	inner = strings.ReplaceAll(inner, "/", " ")
	inner = strings.ReplaceAll(inner, ",", " ")
	parts := strings.Fields(inner)
	if len(parts) != 3 && len(parts) != 4 {
		return rgba{}, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := parseChannel(parts[i])
		if !ok {
			return rgba{}, false
		}
		ch[i] = v
	}
	a := 1.0
	if len(parts) == 4 {
		p := parts[3]
		var err error
		if strings.HasSuffix(p, "%") {
			a, err = strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
			a /= 100
		} else {
			a, err = strconv.ParseFloat(p, 64)
		}
		if err != nil {
			return rgba{}, false
		}
	}
	return rgba{ch[0], ch[1], ch[2], clamp01(a)}, true
}

func parseChannel(p string) (uint8, bool) {
	if strings.HasSuffix(p, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(p, "%"), 64)
		if err != nil {
			return 0, false
		}
		return uint8(clamp01(v/100)*255 + 0.5), true
	}
	v, err := strconv.ParseFloat(p, 64)
	if err != nil {
		return 0, false
	}
	return uint8(max(0, min(255, v)) + 0.5), true
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
