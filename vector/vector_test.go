package vector

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/jonwraymond/ogimage/fonts"
	"github.com/jonwraymond/ogimage/markup"
)

func goFonts(t testing.TB) []fonts.Font {
	t.Helper()
	table, err := fonts.NewGoFontProvider().Load(context.Background())
	if err != nil {
		t.Fatalf("load go fonts: %v", err)
	}
	return table
}

func sampleCard() *markup.Node {
	return markup.Div(markup.Style{
		"flexDirection":   "column",
		"padding":         60,
		"backgroundImage": "linear-gradient(135deg, #0f172a 0%, #1e293b 100%)",
		"color":           "#ffffff",
	},
		markup.Div(markup.Style{"fontSize": 64, "fontWeight": 700}, markup.Text("Hello")),
		markup.Div(markup.Style{"width": 80, "height": 6, "borderRadius": 3, "backgroundColor": "#3b82f6"}),
		markup.Img("https://example.com/logo.png", markup.Style{"width": 48, "height": 48, "borderRadius": "50%"}),
	)
}

func TestSVGRenderer_Render(t *testing.T) {
	r := NewSVGRenderer()
	svg, err := r.Render(context.Background(), sampleCard(), Options{Width: 1200, Height: 630, Fonts: goFonts(t)})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	doc := string(svg)

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg" width="1200" height="630" viewBox="0 0 1200 630">`,
		`<linearGradient id="g1" gradientUnits="userSpaceOnUse"`,
		`<path d="M`,
		`fill="#ffffff"`,
		`fill="#3b82f6"`,
		`rx="3"`,
		`rx="24"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if defs, use := strings.Index(doc, "<defs>"), strings.Index(doc, "url(#g1)"); defs < 0 || use < defs {
		t.Errorf("gradient must be declared before use (defs at %d, use at %d)", defs, use)
	}
	if !strings.HasSuffix(doc, "</svg>") {
		t.Error("document is not closed")
	}
}

func TestSVGRenderer_Deterministic(t *testing.T) {
	r := NewSVGRenderer()
	opts := Options{Width: 1200, Height: 630, Fonts: goFonts(t)}
	a, err := r.Render(context.Background(), sampleCard(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Render(context.Background(), sampleCard(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("rendering the same tree twice produced different output")
	}
}

func TestSVGRenderer_Errors(t *testing.T) {
	r := NewSVGRenderer()
	table := goFonts(t)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		ctx  context.Context
		root *markup.Node
		opts Options
		want error
	}{
		{"nil root", context.Background(), nil, Options{Width: 10, Height: 10, Fonts: table}, ErrNilNode},
		{"zero width", context.Background(), markup.Div(nil), Options{Height: 10, Fonts: table}, ErrInvalidSize},
		{"no fonts", context.Background(), markup.Div(nil), Options{Width: 10, Height: 10}, fonts.ErrNoFonts},
		{"cancelled", cancelled, markup.Div(nil), Options{Width: 10, Height: 10, Fonts: table}, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := r.Render(tt.ctx, tt.root, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("Render() error = %v, want %v", err, tt.want)
			}
			if out != nil {
				t.Error("Render() returned output with an error")
			}
		})
	}
}

func TestSVGRenderer_HiddenRoot(t *testing.T) {
	svg, err := NewSVGRenderer().Render(context.Background(),
		markup.Div(markup.Style{"display": "none"}, markup.Text("gone")),
		Options{Width: 100, Height: 50, Fonts: goFonts(t)})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(svg), "<path") {
		t.Error("hidden root should draw nothing")
	}
}

func TestShaper_Wrap(t *testing.T) {
	s := &shaper{table: goFonts(t)}
	st := rootStyle()
	st.fontSize = 32

	lines := s.wrap("the quick brown fox jumps over the lazy dog", st, 200)
	if len(lines) < 2 {
		t.Fatalf("wrap() = %d lines, want several", len(lines))
	}
	var words []string
	for _, l := range lines {
		words = append(words, strings.Fields(l.text)...)
	}
	if got := strings.Join(words, " "); got != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrapping lost text: %q", got)
	}

	if got := s.wrap("unbreakable", st, 10); len(got) != 1 {
		t.Errorf("single long word should stay on one line, got %d", len(got))
	}
	if got := s.wrap("a b c", st, math.NaN()); len(got) != 1 {
		t.Errorf("NaN width should not wrap, got %d lines", len(got))
	}
}

func TestShaper_LetterSpacingWidens(t *testing.T) {
	s := &shaper{table: goFonts(t)}
	st := rootStyle()
	plain := s.measure("WIDE", st)
	st.letterSpacing = 2
	if got := s.measure("WIDE", st); math.Abs(got-(plain+8)) > 0.01 {
		t.Errorf("measure() with spacing = %v, want %v", got, plain+8)
	}
}

func TestShaper_MissingGlyphs(t *testing.T) {
	s := &shaper{}
	st := rootStyle()
	if got := s.measure("ab", st); math.Abs(got-2*missingAdvance*16) > 1e-9 {
		t.Errorf("measure() without fonts = %v", got)
	}
}

func TestTransformText(t *testing.T) {
	tests := []struct {
		transform, in, want string
	}{
		{"uppercase", "new Post", "NEW POST"},
		{"lowercase", "New Post", "new post"},
		{"capitalize", "new post", "New Post"},
		{"", "as is", "as is"},
	}
	for _, tt := range tests {
		st := rootStyle()
		st.textTransform = tt.transform
		if got := transformText(tt.in, st); got != tt.want {
			t.Errorf("transformText(%q, %q) = %q, want %q", tt.in, tt.transform, got, tt.want)
		}
	}
}

func TestParseGradient_Stops(t *testing.T) {
	g, ok := parseGradient("linear-gradient(90deg, red, blue 50%, green, #000)")
	if !ok {
		t.Fatal("parseGradient() failed")
	}
	if g.kind != linearKind || g.angle != 90 {
		t.Errorf("kind %v angle %v", g.kind, g.angle)
	}
	var offsets []float64
	for _, s := range g.stops {
		offsets = append(offsets, s.offset)
	}
	if diff := cmp.Diff([]float64{0, 0.5, 0.75, 1}, offsets, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGradient_Directions(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"linear-gradient(red, blue)", 180},
		{"linear-gradient(to right, red, blue)", 90},
		{"linear-gradient(to top, red, blue)", 0},
		{"linear-gradient(0.25turn, red, blue)", 90},
		{"linear-gradient(to bottom right, red, blue)", 135},
	}
	for _, tt := range tests {
		g, ok := parseGradient(tt.in)
		if !ok {
			t.Errorf("parseGradient(%q) failed", tt.in)
			continue
		}
		if got := g.resolveAngle(100, 100); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("parseGradient(%q) angle = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGradient_LinearPoints(t *testing.T) {
	g, _ := parseGradient("linear-gradient(90deg, red, blue)")
	x1, y1, x2, y2 := g.linearPoints(0, 0, 100, 50)
	got := []float64{x1, y1, x2, y2}
	if diff := cmp.Diff([]float64{0, 25, 100, 25}, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestGradient_Radial(t *testing.T) {
	g, ok := parseGradient("radial-gradient(circle at 0% 0%, rgba(59, 130, 246, 0.3), transparent 60%)")
	if !ok {
		t.Fatal("parseGradient() failed")
	}
	cx, cy, r := g.radialCircle(10, 20, 300, 400)
	if cx != 10 || cy != 20 || r != 500 {
		t.Errorf("radialCircle() = %v %v %v, want 10 20 500", cx, cy, r)
	}
	if g.stops[1].offset != 0.6 {
		t.Errorf("second stop offset = %v", g.stops[1].offset)
	}

	g, _ = parseGradient("radial-gradient(circle at top right, red, blue)")
	cx, cy, _ = g.radialCircle(0, 0, 200, 100)
	if cx != 200 || cy != 0 {
		t.Errorf("keyword center = %v %v, want 200 0", cx, cy)
	}
}

func TestParseGradient_Invalid(t *testing.T) {
	for _, in := range []string{"#fff", "linear-gradient()", "linear-gradient(90deg, nope)", "url(x.png)"} {
		if _, ok := parseGradient(in); ok {
			t.Errorf("parseGradient(%q) should fail", in)
		}
	}
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		in     string
		dx, dy float64
	}{
		{"translate(-50%, -50%)", -100, -50},
		{"translateX(10px) translateY(25%)", 10, 25},
		{"rotate(45deg)", 0, 0},
		{"", 0, 0},
	}
	for _, tt := range tests {
		dx, dy := translate(tt.in, 200, 100)
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("translate(%q) = %v,%v want %v,%v", tt.in, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{
		0:        "0",
		1.5:      "1.5",
		2.0:      "2",
		1.23456:  "1.23",
		-0.001:   "0",
		-12.3456: "-12.35",
	}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
