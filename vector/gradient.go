package vector

import (
	"math"
	"strconv"
	"strings"
)

type gradientKind uint8

const (
	linearKind gradientKind = iota
	radialKind
)

type stop struct {
	color  rgba
	offset float64 // fraction in [0,1]; NaN until distributed
}

// gradient is a parsed CSS gradient, resolved against a box when painted.
type gradient struct {
	kind  gradientKind
	angle float64 // degrees, CSS convention: 0 points up, clockwise
	// corner keywords defer the angle until the box size is known
	corner string

	atX, atY length // radial center
	radius   length // explicit radial size
	stops    []stop
}

// parseGradient parses linear-gradient() and radial-gradient() values.
func parseGradient(s string) (*gradient, bool) {
	s = strings.TrimSpace(s)
	var g gradient
	var inner string
	switch {
	case strings.HasPrefix(s, "linear-gradient(") && strings.HasSuffix(s, ")"):
		g.kind, g.angle = linearKind, 180
		inner = s[len("linear-gradient(") : len(s)-1]
	case strings.HasPrefix(s, "radial-gradient(") && strings.HasSuffix(s, ")"):
		g.kind = radialKind
		g.atX, g.atY = length{50, unitPct}, length{50, unitPct}
		inner = s[len("radial-gradient(") : len(s)-1]
	default:
		return nil, false
	}

	parts := splitTopLevel(inner, ',')
	if len(parts) == 0 {
		return nil, false
	}
	if _, ok := parseStop(parts[0]); !ok {
		if g.kind == linearKind {
			g.parseDirection(parts[0])
		} else {
			g.parseShape(parts[0])
		}
		parts = parts[1:]
	}
	for _, p := range parts {
		st, ok := parseStop(p)
		if !ok {
			return nil, false
		}
		g.stops = append(g.stops, st)
	}
	if len(g.stops) == 0 {
		return nil, false
	}
	distribute(g.stops)
	return &g, true
}

func parseStop(s string) (stop, bool) {
	fields := splitTopLevel(s, ' ')
	if len(fields) == 0 {
		return stop{}, false
	}
	c, ok := parseColor(fields[0])
	if !ok {
		return stop{}, false
	}
	st := stop{color: c, offset: math.NaN()}
	if len(fields) > 1 {
		if l := parseLengthString(fields[1], 16); l.u == unitPct {
			st.offset = l.v / 100
		}
	}
	return st, true
}

// distribute fills missing stop offsets evenly between their neighbours.
func distribute(stops []stop) {
	if math.IsNaN(stops[0].offset) {
		stops[0].offset = 0
	}
	last := len(stops) - 1
	if math.IsNaN(stops[last].offset) {
		stops[last].offset = 1
	}
	for i := 1; i < last; {
		if !math.IsNaN(stops[i].offset) {
			stops[i].offset = math.Max(stops[i].offset, stops[i-1].offset)
			i++
			continue
		}
		j := i
		for math.IsNaN(stops[j].offset) {
			j++
		}
		from, to := stops[i-1].offset, stops[j].offset
		step := (to - from) / float64(j-i+1)
		for k := i; k < j; k++ {
			stops[k].offset = from + step*float64(k-i+1)
		}
		i = j
	}
}

func (g *gradient) parseDirection(s string) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "to "); ok {
		switch strings.Join(strings.Fields(rest), " ") {
		case "top":
			g.angle = 0
		case "right":
			g.angle = 90
		case "bottom":
			g.angle = 180
		case "left":
			g.angle = 270
		case "top right", "right top":
			g.corner = "top right"
		case "bottom right", "right bottom":
			g.corner = "bottom right"
		case "bottom left", "left bottom":
			g.corner = "bottom left"
		case "top left", "left top":
			g.corner = "top left"
		}
		return
	}
	for _, u := range []struct {
		suffix string
		scale  float64
	}{{"deg", 1}, {"turn", 360}, {"rad", 180 / math.Pi}} {
		if v, ok := strings.CutSuffix(s, u.suffix); ok {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				g.angle = f * u.scale
			}
			return
		}
	}
}

func (g *gradient) parseShape(s string) {
	shape, at, _ := strings.Cut(" "+s+" ", " at ")
	for _, f := range strings.Fields(shape) {
		if l := parseLengthString(f, 16); l.u == unitPx || l.u == unitPct {
			g.radius = l
		}
	}
	pos := strings.Fields(at)
	if len(pos) == 0 {
		return
	}
	keyword := func(f string) (length, bool) {
		switch f {
		case "left", "top":
			return length{0, unitPct}, true
		case "center":
			return length{50, unitPct}, true
		case "right", "bottom":
			return length{100, unitPct}, true
		}
		return parseLengthString(f, 16), false
	}
	if len(pos) == 1 {
		l, _ := keyword(pos[0])
		if pos[0] == "top" || pos[0] == "bottom" {
			g.atY = l
		} else {
			g.atX = l
		}
		return
	}
	// Vertical keywords may come first.
	if pos[0] == "top" || pos[0] == "bottom" {
		pos[0], pos[1] = pos[1], pos[0]
	}
	g.atX, _ = keyword(pos[0])
	g.atY, _ = keyword(pos[1])
}

// resolveAngle returns the gradient angle for a box of size w by h.
func (g *gradient) resolveAngle(w, h float64) float64 {
	if g.corner == "" {
		return g.angle
	}
	a := math.Atan2(h, w) * 180 / math.Pi
	switch g.corner {
	case "top right":
		return a
	case "bottom right":
		return 180 - a
	case "bottom left":
		return 180 + a
	}
	return 360 - a
}

// linearPoints returns the gradient line endpoints in absolute coordinates.
func (g *gradient) linearPoints(x, y, w, h float64) (x1, y1, x2, y2 float64) {
	theta := g.resolveAngle(w, h) * math.Pi / 180
	dx, dy := math.Sin(theta), -math.Cos(theta)
	half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
	cx, cy := x+w/2, y+h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}

// radialCircle returns the center and radius in absolute coordinates. The
// default size reaches the farthest corner.
func (g *gradient) radialCircle(x, y, w, h float64) (cx, cy, r float64) {
	ox, oy := g.atX.or(w, w/2), g.atY.or(h, h/2)
	cx, cy = x+ox, y+oy
	if v, ok := g.radius.resolve(math.Hypot(w, h) / math.Sqrt2); ok {
		return cx, cy, v
	}
	fx := math.Max(ox, w-ox)
	fy := math.Max(oy, h-oy)
	return cx, cy, math.Hypot(fx, fy)
}
