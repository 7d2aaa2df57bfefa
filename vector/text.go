package vector

import (
	"errors"
	"math"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/jonwraymond/ogimage/fonts"
)

// missingAdvance is the advance, in ems, of a character no font can draw.
const missingAdvance = 0.6

// shaper measures and outlines text with a font table. It owns an
// sfnt.Buffer and must not be shared between goroutines.
type shaper struct {
	table []fonts.Font
	buf   sfnt.Buffer
}

// glyph is one positioned character.
type glyph struct {
	face    *sfnt.Font
	index   sfnt.GlyphIndex
	x       float64 // pen position relative to the line start
	advance float64
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// primary returns the face used for metrics at the given weight and style.
func (s *shaper) primary(st *computed) *sfnt.Font {
	f, ok := fonts.Match(s.table, st.fontWeight, st.fontStyle)
	if !ok {
		return nil
	}
	return f.Face
}

// lookup finds a face that has a glyph for r, preferring the matched face.
func (s *shaper) lookup(primary *sfnt.Font, r rune) (*sfnt.Font, sfnt.GlyphIndex) {
	if primary != nil {
		if idx, err := primary.GlyphIndex(&s.buf, r); err == nil && idx != 0 {
			return primary, idx
		}
	}
	for _, f := range s.table {
		if f.Face == nil || f.Face == primary {
			continue
		}
		if idx, err := f.Face.GlyphIndex(&s.buf, r); err == nil && idx != 0 {
			return f.Face, idx
		}
	}
	return nil, 0
}

// shape positions the glyphs of a single line of text.
func (s *shaper) shape(text string, st *computed) ([]glyph, float64) {
	primary := s.primary(st)
	size := ppem(st.fontSize)

	var (
		out      []glyph
		pen      float64
		prevFace *sfnt.Font
		prevIdx  sfnt.GlyphIndex
	)
	for _, r := range text {
		face, idx := s.lookup(primary, r)
		adv := missingAdvance * st.fontSize
		if face != nil {
			if a, err := face.GlyphAdvance(&s.buf, idx, size, font.HintingNone); err == nil {
				adv = fromFixed(a)
			}
			if face == prevFace {
				if k, err := face.Kern(&s.buf, prevIdx, idx, size, font.HintingNone); err == nil {
					pen += fromFixed(k)
				}
			}
		}
		if unicode.IsSpace(r) {
			face = nil
		}
		out = append(out, glyph{face: face, index: idx, x: pen, advance: adv})
		pen += adv + st.letterSpacing
		prevFace, prevIdx = face, idx
	}
	return out, pen
}

// measure returns the advance width of a single line.
func (s *shaper) measure(text string, st *computed) float64 {
	_, w := s.shape(text, st)
	return w
}

// metrics returns the ascent and descent of the primary face.
func (s *shaper) metrics(st *computed) (ascent, descent float64) {
	if f := s.primary(st); f != nil {
		if m, err := f.Metrics(&s.buf, ppem(st.fontSize), font.HintingNone); err == nil {
			return fromFixed(m.Ascent), fromFixed(m.Descent)
		}
	}
	return st.fontSize * 0.8, st.fontSize * 0.2
}

// lineHeightPx resolves the line height of st.
func (s *shaper) lineHeightPx(st *computed) float64 {
	switch {
	case st.lineHeight.px > 0:
		return st.lineHeight.px
	case st.lineHeight.factor > 0:
		return st.lineHeight.factor * st.fontSize
	}
	a, d := s.metrics(st)
	return a + d
}

// textLine is one wrapped line of a text run.
type textLine struct {
	text  string
	width float64
}

func transformText(text string, st *computed) string {
	switch st.textTransform {
	case "uppercase":
		return strings.ToUpper(text)
	case "lowercase":
		return strings.ToLower(text)
	case "capitalize":
		words := strings.Fields(text)
		for i, w := range words {
			rs := []rune(w)
			rs[0] = unicode.ToUpper(rs[0])
			words[i] = string(rs)
		}
		return strings.Join(words, " ")
	}
	return text
}

// collapse applies normal white-space handling.
func collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// wrap breaks text into lines no wider than maxWidth. Words wider than
// maxWidth overflow on their own line. NaN disables wrapping.
func (s *shaper) wrap(text string, st *computed, maxWidth float64) []textLine {
	if text == "" {
		return nil
	}
	if math.IsNaN(maxWidth) || st.whiteSpace == "nowrap" || st.whiteSpace == "pre" {
		return []textLine{{text: text, width: s.measure(text, st)}}
	}

	words := strings.Split(text, " ")
	var lines []textLine
	cur := words[0]
	curW := s.measure(cur, st)
	for _, w := range words[1:] {
		candidate := cur + " " + w
		cw := s.measure(candidate, st)
		if cw <= maxWidth+0.5 {
			cur, curW = candidate, cw
			continue
		}
		lines = append(lines, textLine{text: cur, width: curW})
		cur, curW = w, s.measure(w, st)
	}
	return append(lines, textLine{text: cur, width: curW})
}

// minContent is the width of the widest word.
func (s *shaper) minContent(text string, st *computed) float64 {
	if st.whiteSpace == "nowrap" || st.whiteSpace == "pre" {
		return s.measure(text, st)
	}
	widest := 0.0
	for _, w := range strings.Split(text, " ") {
		widest = max(widest, s.measure(w, st))
	}
	return widest
}

// outline appends the SVG path data of a shaped line whose pen starts at
// (x, baseline).
func (s *shaper) outline(b *strings.Builder, glyphs []glyph, x, baseline, size float64) error {
	scale := ppem(size)
	for _, g := range glyphs {
		if g.face == nil {
			continue
		}
		segs, err := g.face.LoadGlyph(&s.buf, g.index, scale, nil)
		if err != nil {
			if errors.Is(err, sfnt.ErrNotFound) {
				continue
			}
			return err
		}
		ox := x + g.x
		open := false
		for _, seg := range segs {
			a := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					b.WriteString("Z")
				}
				b.WriteString("M")
				writePoint(b, ox, baseline, a[0])
				open = true
			case sfnt.SegmentOpLineTo:
				b.WriteString("L")
				writePoint(b, ox, baseline, a[0])
			case sfnt.SegmentOpQuadTo:
				b.WriteString("Q")
				writePoint(b, ox, baseline, a[0])
				b.WriteByte(' ')
				writePoint(b, ox, baseline, a[1])
			case sfnt.SegmentOpCubeTo:
				b.WriteString("C")
				writePoint(b, ox, baseline, a[0])
				b.WriteByte(' ')
				writePoint(b, ox, baseline, a[1])
				b.WriteByte(' ')
				writePoint(b, ox, baseline, a[2])
			}
		}
		if open {
			b.WriteString("Z")
		}
	}
	return nil
}

func writePoint(b *strings.Builder, ox, oy float64, p fixed.Point26_6) {
	b.WriteString(num(ox + fromFixed(p.X)))
	b.WriteByte(' ')
	b.WriteString(num(oy + fromFixed(p.Y)))
}
