package catalog

import (
	"github.com/jonwraymond/ogimage/markup"
	"github.com/jonwraymond/ogimage/palette"
	"github.com/jonwraymond/ogimage/templates"
)

func genericTemplates() []*templates.Template {
	return []*templates.Template{
		genericDefault, genericMinimal, genericGradient, genericDark,
		genericSplit, genericBorder, genericGlow,
	}
}

var genericDefault = &templates.Template{
	Name:        "generic",
	Description: "Clean centered title with accent bar",
	Schema: templates.MustSchema(
		title(100),
		templates.String("subtitle").Max(150).Optional(),
		templates.String("logo").URL().Optional(),
		templates.String("bgColor").Default("#0f172a"),
		templates.String("accentColor").Default("#6366f1"),
		templates.String("textColor").Default("#ffffff"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundColor": p.Get("bgColor"),
			"padding":         80,
		}),
			markup.Div(markup.Style{
				"position": "absolute", "top": 0, "left": 0, "right": 0,
				"height": 6, "backgroundColor": p.Get("accentColor"),
			}),
			logo(p, 64, 12, markup.Style{"marginBottom": 32}),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("title"), 40, 52, 68),
				"fontWeight":    700,
				"color":         p.Get("textColor"),
				"textAlign":     "center",
				"lineHeight":    1.15,
				"letterSpacing": -2,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("subtitle"), markup.Div(markup.Style{
				"fontSize":  26,
				"color":     p.Get("textColor"),
				"opacity":   0.6,
				"marginTop": 20,
				"textAlign": "center",
			}, markup.Text(p.Get("subtitle")))),
		)
	},
}

var genericMinimal = &templates.Template{
	Name:        "generic-minimal",
	Description: "Ultra minimal with focus on typography",
	Schema: templates.MustSchema(
		title(80),
		templates.String("subtitle").Max(100).Optional(),
		templates.String("accentColor").Default("#000000"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"justifyContent":  "center",
			"backgroundColor": "#fafafa",
			"padding":         100,
		}),
			markup.Div(markup.Style{"width": 60, "height": 4, "backgroundColor": p.Get("accentColor"), "marginBottom": 40}),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("title"), 40, 48, 60),
				"fontWeight":    600,
				"color":         "#18181b",
				"lineHeight":    1.2,
				"letterSpacing": -1,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("subtitle"), markup.Div(markup.Style{
				"fontSize": 24, "color": "#71717a", "marginTop": 24, "fontWeight": 400,
			}, markup.Text(p.Get("subtitle")))),
		)
	},
}

var genericGradient = &templates.Template{
	Name:        "generic-gradient",
	Description: "Bold gradient background with centered text",
	Schema: templates.MustSchema(
		title(100),
		templates.String("subtitle").Max(150).Optional(),
		templates.String("logo").URL().Optional(),
		templates.String("gradientFrom").Default("#6366f1"),
		templates.String("gradientTo").Default("#a855f7"),
		templates.String("textColor").Default("#ffffff"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundImage": "linear-gradient(135deg, " + p.Get("gradientFrom") + " 0%, " + p.Get("gradientTo") + " 100%)",
			"padding":         80,
		}),
			logo(p, 72, 16, markup.Style{"marginBottom": 32, "border": "3px solid rgba(255,255,255,0.3)"}),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("title"), 35, 56, 72),
				"fontWeight":    700,
				"color":         p.Get("textColor"),
				"textAlign":     "center",
				"lineHeight":    1.1,
				"letterSpacing": -2,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("subtitle"), markup.Div(markup.Style{
				"fontSize":   28,
				"color":      p.Get("textColor"),
				"opacity":    0.9,
				"marginTop":  24,
				"textAlign":  "center",
				"fontWeight": 500,
			}, markup.Text(p.Get("subtitle")))),
		)
	},
}

var genericDark = &templates.Template{
	Name:        "generic-dark",
	Description: "Sleek dark theme with glow effects",
	Schema: templates.MustSchema(
		title(100),
		templates.String("subtitle").Max(150).Optional(),
		templates.String("logo").URL().Optional(),
		templates.String("accentColor").Default("#22d3ee"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		accent := p.Get("accentColor")
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundColor": "#09090b",
			"padding":         80,
			"position":        "relative",
		}),
			markup.Div(markup.Style{
				"position":     "absolute",
				"top":          "50%",
				"left":         "50%",
				"transform":    "translate(-50%, -50%)",
				"width":        500,
				"height":       500,
				"background":   "radial-gradient(circle, " + accent + "15 0%, transparent 70%)",
				"borderRadius": "50%",
			}),
			logo(p, 64, 12, markup.Style{"marginBottom": 32}),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("title"), 40, 52, 68),
				"fontWeight":    700,
				"color":         "#fafafa",
				"textAlign":     "center",
				"lineHeight":    1.15,
				"letterSpacing": -2,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("subtitle"), markup.Div(markup.Style{
				"fontSize": 24, "color": "#a1a1aa", "marginTop": 20, "textAlign": "center",
			}, markup.Text(p.Get("subtitle")))),
			markup.Div(markup.Style{
				"position":        "absolute",
				"bottom":          0,
				"left":            "50%",
				"transform":       "translateX(-50%)",
				"width":           200,
				"height":          4,
				"backgroundColor": accent,
				"borderRadius":    2,
			}),
		)
	},
}

var genericSplit = &templates.Template{
	Name:        "generic-split",
	Description: "Modern split layout with contrast",
	Schema: templates.MustSchema(
		title(80),
		templates.String("subtitle").Max(120).Optional(),
		templates.String("logo").URL().Optional(),
		templates.String("leftColor").Default("#18181b"),
		templates.String("rightColor").Default("#f4f4f5"),
		templates.String("accentColor").Default("#6366f1"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		mark := markup.Choose(p.Has("logo"),
			markup.Img(p.Get("logo"), markup.Style{"width": 120, "height": 120, "borderRadius": 24}),
			markup.Div(markup.Style{"width": 80, "height": 80, "borderRadius": 20, "backgroundColor": p.Get("accentColor")}),
		)
		return markup.Div(canvas(c, nil),
			markup.Div(markup.Style{
				"flexDirection":   "column",
				"justifyContent":  "center",
				"width":           "60%",
				"height":          "100%",
				"backgroundColor": p.Get("leftColor"),
				"padding":         80,
			},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("title"), 40, 44, 54),
					"fontWeight":    700,
					"color":         "#ffffff",
					"lineHeight":    1.2,
					"letterSpacing": -1,
				}, markup.Text(p.Get("title"))),
				markup.If(p.Has("subtitle"), markup.Div(markup.Style{
					"fontSize": 22, "color": "rgba(255,255,255,0.7)", "marginTop": 20, "lineHeight": 1.5,
				}, markup.Text(p.Get("subtitle")))),
			),
			markup.Div(markup.Style{
				"flexDirection":   "column",
				"alignItems":      "center",
				"justifyContent":  "center",
				"width":           "40%",
				"height":          "100%",
				"backgroundColor": p.Get("rightColor"),
			}, mark),
		)
	},
}

var genericBorder = &templates.Template{
	Name:        "generic-border",
	Description: "Bold border frame with classic typography",
	Schema: templates.MustSchema(
		title(80),
		templates.String("subtitle").Max(120).Optional(),
		templates.String("borderColor").Default("#18181b"),
		templates.String("bgColor").Default("#ffffff"),
		templates.String("textColor").Default("#18181b"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundColor": p.Get("bgColor"),
			"padding":         40,
		}),
			markup.Div(markup.Style{
				"flexDirection":  "column",
				"alignItems":     "center",
				"justifyContent": "center",
				"width":          "100%",
				"height":         "100%",
				"border":         "4px solid " + p.Get("borderColor"),
				"padding":        60,
			},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("title"), 35, 48, 60),
					"fontWeight":    700,
					"color":         p.Get("textColor"),
					"textAlign":     "center",
					"lineHeight":    1.2,
					"letterSpacing": -1,
				}, markup.Text(p.Get("title"))),
				markup.If(p.Has("subtitle"), markup.Div(markup.Style{
					"fontSize":   22,
					"color":      p.Get("textColor"),
					"opacity":    0.6,
					"marginTop":  24,
					"textAlign":  "center",
					"fontWeight": 400,
				}, markup.Text(p.Get("subtitle")))),
			),
		)
	},
}

// glowOrbs are the soft light spots behind generic-glow, as x, y, w, h.
var glowOrbs = [][4]int{
	{-200, 50, 600, 520},
	{800, -50, 500, 450},
	{600, 400, 700, 600},
	{-100, 350, 550, 500},
	{900, 300, 450, 400},
}

var genericGlow = &templates.Template{
	Name:        "generic-glow",
	Description: "Bold startup style with glowing orbs",
	Schema: templates.MustSchema(
		title(100),
		templates.String("subtitle").Max(100).Optional(),
		templates.String("siteName").Max(50).Optional(),
		templates.String("themeColor").Default("#5C0909"),
		templates.String("bgColor").Optional(),
		templates.String("textColor").Optional(),
		templates.String("glowColor").Optional(),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		colors := palette.ApplyOverrides(p.Get("themeColor"), palette.Palette{
			Background: p.Get("bgColor"),
			Text:       p.Get("textColor"),
			Glow:       p.Get("glowColor"),
		})

		orbs := make(markup.Group, 0, len(glowOrbs))
		for _, o := range glowOrbs {
			orbs = append(orbs, markup.Div(markup.Style{
				"position":     "absolute",
				"left":         o[0],
				"top":          o[1],
				"width":        o[2],
				"height":       o[3],
				"borderRadius": 144,
				"background": "radial-gradient(ellipse at center, " +
					colors.Glow + "40 0%, " + colors.Glow + "20 30%, transparent 70%)",
			}))
		}

		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundColor": colors.Background,
			"position":        "relative",
			"overflow":        "hidden",
		}),
			orbs,
			markup.Div(markup.Style{
				"position":        "absolute",
				"top":             99,
				"left":            "50%",
				"transform":       "translateX(-50%)",
				"width":           155,
				"height":          6,
				"backgroundColor": colors.Text,
				"borderRadius":    3,
			}),
			markup.Div(markup.Style{
				"flexDirection":  "column",
				"alignItems":     "center",
				"justifyContent": "center",
				"textAlign":      "center",
				"padding":        40,
			},
				markup.Div(markup.Style{
					"fontSize":   pick(p.Get("title"), 30, 64, 80),
					"fontWeight": 600,
					"color":      colors.Text,
					"lineHeight": 1.1,
					"textAlign":  "center",
					"maxWidth":   900,
				}, markup.Text(p.Get("title"))),
				markup.If(p.Has("subtitle"), markup.Div(markup.Style{
					"fontSize":   32,
					"fontWeight": 500,
					"color":      colors.TextMuted,
					"marginTop":  24,
					"textAlign":  "center",
				}, markup.Text(p.Get("subtitle")))),
			),
			markup.If(p.Has("siteName"), markup.Div(markup.Style{
				"position":   "absolute",
				"bottom":     80,
				"fontSize":   28,
				"fontWeight": 600,
				"color":      colors.Text,
				"textAlign":  "center",
			}, markup.Text(p.Get("siteName")))),
		)
	},
}
