package palette

// Palette is the set of colors derived from one theme color.
type Palette struct {
	Background string `json:"bgColor"`
	Text       string `json:"textColor"`
	TextMuted  string `json:"textMuted"`
	Accent     string `json:"accentColor"`
	Glow       string `json:"glowColor"`
}

const (
	darkText  = "#1a1a1a"
	lightText = "#ffffff"
)

// Derive computes a palette from a theme color.
//
// The background is the theme color as given. Text is near-black on light
// themes and white otherwise. Muted text keeps the hue at a fixed lightness,
// the accent is an analogous hue (+30°) and the glow is shifted +270° toward
// magenta at high saturation.
func Derive(theme string) Palette {
	base := HexToHSL(theme)
	light := IsLight(theme)

	p := Palette{
		Background: theme,
		Text:       lightText,
	}
	if light {
		p.Text = darkText
	}

	muted := HSL{H: base.H, S: max(base.S-20, 0), L: 70}
	if light {
		muted.L = 30
	}
	p.TextMuted = HSLToHex(muted)

	accent := HSL{H: (base.H + 30) % 360, S: min(base.S+15, 100)}
	if light {
		accent.L = max(base.L-20, 30)
	} else {
		accent.L = min(base.L+20, 70)
	}
	p.Accent = HSLToHex(accent)

	p.Glow = HSLToHex(HSL{
		H: (base.H + 270) % 360,
		S: min(base.S+40, 100),
		L: 65,
	})

	return p
}

// ApplyOverrides derives a palette from theme and replaces every field whose
// override is non-empty.
func ApplyOverrides(theme string, overrides Palette) Palette {
	p := Derive(theme)
	override(&p.Background, overrides.Background)
	override(&p.Text, overrides.Text)
	override(&p.TextMuted, overrides.TextMuted)
	override(&p.Accent, overrides.Accent)
	override(&p.Glow, overrides.Glow)
	return p
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
