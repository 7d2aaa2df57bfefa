package palette

import (
	"math"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		hex  string
		want HSL
	}{
		{"#000000", HSL{0, 0, 0}},
		{"#ffffff", HSL{0, 0, 100}},
		{"#ff0000", HSL{0, 100, 50}},
		{"#808080", HSL{0, 0, 50}},
		{"#5C0909", HSL{0, 82, 20}},
		{"6366f1", HSL{239, 84, 67}},
		{"#10b981", HSL{160, 84, 39}},
		{"#ff0001", HSL{0, 100, 50}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := HexToHSL(tt.hex); got != tt.want {
				t.Errorf("HexToHSL(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHSLToHex_RoundTrip(t *testing.T) {
	colors := []string{
		"#5c0909", "#6366f1", "#ff0000", "#808080", "#ffffff",
		"#000000", "#3b82f6", "#fafafa", "#0f172a",
	}

	for _, c := range colors {
		got := HSLToHex(HexToHSL(c))
		for i := 1; i < 7; i += 2 {
			want, _ := strconv.ParseUint(c[i:i+2], 16, 8)
			have, err := strconv.ParseUint(got[i:i+2], 16, 8)
			if err != nil {
				t.Fatalf("HSLToHex produced %q: %v", got, err)
			}
			if diff := int(want) - int(have); diff > 1 || diff < -1 {
				t.Errorf("round trip %s -> %s differs by %d in channel %d", c, got, diff, i/2)
			}
		}
	}
}

func TestHSLToHex_Format(t *testing.T) {
	got := HSLToHex(HSL{H: 0, S: 100, L: 50})
	if got != "#ff0000" {
		t.Errorf("HSLToHex(red) = %q, want #ff0000", got)
	}
	got = HSLToHex(HSL{H: 0, S: 0, L: 0})
	if got != "#000000" {
		t.Errorf("HSLToHex(black) = %q, want zero-padded #000000", got)
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance("#ffffff"); math.Abs(got-1) > 1e-9 {
		t.Errorf("Luminance(white) = %v, want 1", got)
	}
	if got := Luminance("#000000"); got != 0 {
		t.Errorf("Luminance(black) = %v, want 0", got)
	}
	if got := Luminance("#5C0909"); got < 0.02 || got > 0.05 {
		t.Errorf("Luminance(#5C0909) = %v, want a dark value near 0.025", got)
	}
}

func TestIsLight(t *testing.T) {
	tests := []struct {
		hex  string
		want bool
	}{
		{"#ffffff", true},
		{"#fafafa", true},
		{"#fde68a", true},
		{"#000000", false},
		{"#5C0909", false},
		{"#6366f1", false},
	}
	for _, tt := range tests {
		if got := IsLight(tt.hex); got != tt.want {
			t.Errorf("IsLight(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestDerive_DarkTheme(t *testing.T) {
	got := Derive("#5C0909")

	if got.Background != "#5C0909" {
		t.Errorf("Background = %q, want input unchanged", got.Background)
	}
	if got.Text != "#ffffff" {
		t.Errorf("Text = %q, want #ffffff", got.Text)
	}
	if got.TextMuted != "#e28383" {
		t.Errorf("TextMuted = %q, want #e28383", got.TextMuted)
	}
	if got.Accent != "#c96603" {
		t.Errorf("Accent = %q, want #c96603", got.Accent)
	}
	if glow := HexToHSL(got.Glow); glow.H < 268 || glow.H > 272 || glow.L < 64 || glow.L > 66 {
		t.Errorf("Glow = %q (%v), want hue near 270 at lightness 65", got.Glow, glow)
	}
}

func TestDerive_FullPalette(t *testing.T) {
	want := Palette{
		Background: "#0f172a",
		Text:       "#ffffff",
		TextMuted:  "#9eaac7",
		Accent:     "#321e80",
		Glow:       "#58f377",
	}
	if diff := cmp.Diff(want, Derive("#0f172a")); diff != "" {
		t.Errorf("Derive mismatch (-want +got):\n%s", diff)
	}
}

func TestDerive_LightTheme(t *testing.T) {
	got := Derive("#fde68a")
	if got.Text != "#1a1a1a" {
		t.Errorf("Text = %q, want #1a1a1a", got.Text)
	}
	if got.TextMuted != "#877012" {
		t.Errorf("TextMuted = %q, want #877012", got.TextMuted)
	}
	if got.Accent != "#bdff24" {
		t.Errorf("Accent = %q, want #bdff24", got.Accent)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	for _, c := range []string{"#5C0909", "#6366f1", "#fde68a", "#0f172a"} {
		first := Derive(c)
		for range 5 {
			if diff := cmp.Diff(first, Derive(c)); diff != "" {
				t.Fatalf("Derive(%q) not deterministic:\n%s", c, diff)
			}
		}
	}
}

func TestDerive_MalformedInputDoesNotPanic(t *testing.T) {
	for _, in := range []string{"", "#", "zzzzzz", "#abc", "not a color"} {
		p := Derive(in)
		if p.Background != in {
			t.Errorf("Derive(%q).Background = %q", in, p.Background)
		}
		if len(p.Accent) != 7 || len(p.Glow) != 7 || len(p.TextMuted) != 7 {
			t.Errorf("Derive(%q) produced malformed colors: %+v", in, p)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	base := Derive("#5C0909")

	got := ApplyOverrides("#5C0909", Palette{Background: "#000000", Glow: ""})
	want := base
	want.Background = "#000000"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ApplyOverrides mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(base, ApplyOverrides("#5C0909", Palette{})); diff != "" {
		t.Errorf("empty overrides should not change palette:\n%s", diff)
	}
}
