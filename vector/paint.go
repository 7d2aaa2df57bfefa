package vector

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/jonwraymond/ogimage/markup"
)

// placeholder is the fill drawn in place of images.
var placeholder = rgba{0xcb, 0xd5, 0xe1, 0.35}

// painter writes boxes as SVG elements. Gradients are collected in defs so
// the document can declare them before first use.
type painter struct {
	shaper *shaper
	defs   strings.Builder
	body   strings.Builder
	ids    int
}

func num(v float64) string {
	s := strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// document assembles the final SVG.
func (p *painter) document(w, h int) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, w, h, w, h)
	if p.defs.Len() > 0 {
		b.WriteString("<defs>")
		b.WriteString(p.defs.String())
		b.WriteString("</defs>")
	}
	b.WriteString(p.body.String())
	b.WriteString("</svg>")
	return []byte(b.String())
}

// paint draws b whose parent border box starts at (ox, oy).
func (p *painter) paint(b *box, ox, oy, opacity float64) error {
	x, y := ox+b.x, oy+b.y
	if b.isText() {
		return p.text(b, x, y, opacity)
	}

	opacity *= b.st.opacity
	dx, dy := translate(b.st.transform, b.w, b.h)
	x, y = x+dx, y+dy
	if opacity <= 0 {
		return nil
	}

	r := b.st.radius.or(math.Min(b.w, b.h), 0)
	r = math.Min(r, math.Min(b.w, b.h)/2)

	if b.node.Kind == markup.KindImg {
		p.rect(x, y, b.w, b.h, r, placeholder.hex(), placeholder.a*opacity)
	}
	p.background(b.st.background, x, y, b.w, b.h, r, opacity)
	p.borders(b, x, y, r, opacity)

	for _, k := range b.kids {
		if err := p.paint(k, x, y, opacity); err != nil {
			return err
		}
	}
	return nil
}

func (p *painter) rect(x, y, w, h, r float64, fill string, alpha float64) {
	if w <= 0 || h <= 0 || alpha <= 0 {
		return
	}
	fmt.Fprintf(&p.body, `<rect x="%s" y="%s" width="%s" height="%s"`, num(x), num(y), num(w), num(h))
	if r > 0 {
		fmt.Fprintf(&p.body, ` rx="%s" ry="%s"`, num(r), num(r))
	}
	fmt.Fprintf(&p.body, ` fill="%s"`, fill)
	if alpha < 1 {
		fmt.Fprintf(&p.body, ` fill-opacity="%s"`, num(alpha))
	}
	p.body.WriteString("/>")
}

// background paints comma-separated background layers, last layer first.
func (p *painter) background(value string, x, y, w, h, r, opacity float64) {
	if value == "" || value == "none" {
		return
	}
	for _, layer := range slices.Backward(splitTopLevel(value, ',')) {
		if g, ok := parseGradient(layer); ok {
			p.rect(x, y, w, h, r, "url(#"+p.gradientDef(g, x, y, w, h)+")", opacity)
			continue
		}
		if c, ok := parseColor(layer); ok {
			p.rect(x, y, w, h, r, c.hex(), c.a*opacity)
		}
	}
}

func (p *painter) gradientDef(g *gradient, x, y, w, h float64) string {
	p.ids++
	id := "g" + strconv.Itoa(p.ids)
	switch g.kind {
	case linearKind:
		x1, y1, x2, y2 := g.linearPoints(x, y, w, h)
		fmt.Fprintf(&p.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`,
			id, num(x1), num(y1), num(x2), num(y2))
	case radialKind:
		cx, cy, r := g.radialCircle(x, y, w, h)
		fmt.Fprintf(&p.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%s" cy="%s" r="%s" fx="%s" fy="%s">`,
			id, num(cx), num(cy), num(r), num(cx), num(cy))
	}
	for _, s := range g.stops {
		fmt.Fprintf(&p.defs, `<stop offset="%s" stop-color="%s" stop-opacity="%s"/>`,
			num(clamp01(s.offset)), s.color.hex(), num(s.color.a))
	}
	if g.kind == linearKind {
		p.defs.WriteString("</linearGradient>")
	} else {
		p.defs.WriteString("</radialGradient>")
	}
	return id
}

// borders draws a uniform border as an inset stroke and mixed borders as
// per-side strips.
func (p *painter) borders(b *box, x, y, r, opacity float64) {
	bs := b.st.border
	if bs[0].width > 0 && bs[0] == bs[1] && bs[1] == bs[2] && bs[2] == bs[3] {
		bw, c := bs[0].width, bs[0].color
		alpha := c.a * opacity
		if alpha <= 0 {
			return
		}
		fmt.Fprintf(&p.body, `<rect x="%s" y="%s" width="%s" height="%s"`,
			num(x+bw/2), num(y+bw/2), num(math.Max(b.w-bw, 0)), num(math.Max(b.h-bw, 0)))
		if r > 0 {
			ir := math.Max(r-bw/2, 0)
			fmt.Fprintf(&p.body, ` rx="%s" ry="%s"`, num(ir), num(ir))
		}
		fmt.Fprintf(&p.body, ` fill="none" stroke="%s" stroke-width="%s"`, c.hex(), num(bw))
		if alpha < 1 {
			fmt.Fprintf(&p.body, ` stroke-opacity="%s"`, num(alpha))
		}
		p.body.WriteString("/>")
		return
	}

	for side, s := range bs {
		if s.width <= 0 {
			continue
		}
		switch side {
		case top:
			p.rect(x, y, b.w, s.width, 0, s.color.hex(), s.color.a*opacity)
		case bottom:
			p.rect(x, y+b.h-s.width, b.w, s.width, 0, s.color.hex(), s.color.a*opacity)
		case left:
			p.rect(x, y, s.width, b.h, 0, s.color.hex(), s.color.a*opacity)
		case right:
			p.rect(x+b.w-s.width, y, s.width, b.h, 0, s.color.hex(), s.color.a*opacity)
		}
	}
}

// text draws the wrapped lines of a text box as glyph outlines.
func (p *painter) text(b *box, x, y, opacity float64) error {
	st := b.st
	alpha := st.color.a * opacity
	if alpha <= 0 || len(b.lines) == 0 {
		return nil
	}
	ascent, descent := p.shaper.metrics(st)
	lh := p.shaper.lineHeightPx(st)

	var d strings.Builder
	var decorations [][4]float64
	for i, line := range b.lines {
		lx := x
		switch st.textAlign {
		case "center":
			lx += (b.w - line.width) / 2
		case "right", "end":
			lx += b.w - line.width
		}
		baseline := y + float64(i)*lh + (lh-(ascent+descent))/2 + ascent

		glyphs, _ := p.shaper.shape(line.text, st)
		if err := p.shaper.outline(&d, glyphs, lx, baseline, st.fontSize); err != nil {
			return fmt.Errorf("vector: outline %q: %w", line.text, err)
		}

		thick := math.Max(1, st.fontSize/16)
		switch st.textDecoration {
		case "underline":
			decorations = append(decorations, [4]float64{lx, baseline + descent/2, line.width, thick})
		case "line-through":
			decorations = append(decorations, [4]float64{lx, baseline - ascent*0.3, line.width, thick})
		}
	}

	if d.Len() > 0 {
		fmt.Fprintf(&p.body, `<path d="%s" fill="%s"`, d.String(), st.color.hex())
		if alpha < 1 {
			fmt.Fprintf(&p.body, ` fill-opacity="%s"`, num(alpha))
		}
		p.body.WriteString("/>")
	}
	for _, r := range decorations {
		p.rect(r[0], r[1], r[2], r[3], 0, st.color.hex(), alpha)
	}
	return nil
}

// translate sums translate, translateX and translateY functions. Percentages
// refer to the element's own size.
func translate(transform string, w, h float64) (dx, dy float64) {
	for _, fn := range splitTopLevel(transform, ' ') {
		name, args, ok := strings.Cut(fn, "(")
		if !ok {
			continue
		}
		vals := splitTopLevel(strings.TrimSuffix(args, ")"), ',')
		at := func(i int, ref float64) float64 {
			if i >= len(vals) {
				return 0
			}
			return parseLengthString(vals[i], 16).or(ref, 0)
		}
		switch name {
		case "translate":
			dx += at(0, w)
			dy += at(1, h)
		case "translateX":
			dx += at(0, w)
		case "translateY":
			dy += at(0, h)
		}
	}
	return dx, dy
}
