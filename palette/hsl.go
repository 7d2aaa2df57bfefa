package palette

import (
	"fmt"
	"math"
	"strings"
)

// HSL is a color in hue/saturation/lightness space.
// H is in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H int
	S int
	L int
}

// String formats the color as "hsl(h, s%, l%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// HexToHSL converts a "#rrggbb" color (leading '#' optional) to HSL.
func HexToHSL(hex string) HSL {
	r, g, b := channels(hex)

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}

		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSL{
		H: round(h*360) % 360,
		S: round(s * 100),
		L: round(l * 100),
	}
}

// HSLToHex converts an HSL color to a lowercase "#rrggbb" string.
func HSLToHex(c HSL) string {
	h := float64(c.H) / 360
	s := float64(c.S) / 100
	l := float64(c.L) / 100

	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}

	return fmt.Sprintf("#%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

// Luminance returns the relative luminance of a "#rrggbb" color in [0,1].
func Luminance(hex string) float64 {
	r, g, b := channels(hex)
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// IsLight reports whether a color is light enough to need dark text.
func IsLight(hex string) bool {
	return Luminance(hex) > lightThreshold
}

const lightThreshold = 0.4

func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// channels parses the first three byte pairs of a hex color into [0,1] values.
// A pair that does not start with a hex digit reads as 0.
func channels(hex string) (r, g, b float64) {
	hex = strings.TrimPrefix(hex, "#")
	return parsePair(hex, 0), parsePair(hex, 2), parsePair(hex, 4)
}

func parsePair(hex string, at int) float64 {
	if at >= len(hex) {
		return 0
	}
	end := min(at+2, len(hex))
	v := 0
	for _, ch := range hex[at:end] {
		d, ok := hexDigit(ch)
		if !ok {
			break
		}
		v = v*16 + d
	}
	return float64(v) / 255
}

func hexDigit(ch rune) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10, true
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10, true
	}
	return 0, false
}

// round rounds half up.
func round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampByte(x float64) int {
	return max(0, min(255, round(x*255)))
}
