package catalog

import (
	"github.com/jonwraymond/ogimage/markup"
	"github.com/jonwraymond/ogimage/templates"
)

func developerTemplates() []*templates.Template {
	return []*templates.Template{devGitHub, devDocs, devRelease, devAPI, devOpenSource}
}

// methodColors tints HTTP methods on dev-api cards.
var methodColors = map[string]string{
	"GET":    "#22c55e",
	"POST":   "#3b82f6",
	"PUT":    "#f59e0b",
	"DELETE": "#ef4444",
}

const otherMethodColor = "#a78bfa"

var devGitHub = &templates.Template{
	Name:        "dev-github",
	Description: "GitHub repository style card",
	Schema: templates.MustSchema(
		templates.String("name").Min(1).Max(60),
		templates.String("description").Max(150).Optional(),
		templates.String("owner").Optional(),
		templates.String("stars").Optional(),
		templates.String("language").Optional(),
		templates.String("languageColor").Default("#3178c6"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		const dim = "#8b949e"
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": "#0d1117",
			"padding":         70,
		}),
			markup.Div(markup.Style{"alignItems": "center", "gap": 12, "marginBottom": 32},
				markup.Div(markup.Style{
					"width":           32,
					"height":          32,
					"borderRadius":    16,
					"backgroundColor": "#30363d",
					"alignItems":      "center",
					"justifyContent":  "center",
					"color":           dim,
					"fontSize":        18,
				}, markup.Text("📁")),
				markup.If(p.Has("owner"), markup.Div(markup.Style{"fontSize": 18, "color": dim},
					markup.Text(p.Get("owner")+" /"))),
				markup.Div(markup.Style{"fontSize": 18, "color": "#58a6ff", "fontWeight": 600}, markup.Text(p.Get("name"))),
			),
			markup.Div(markup.Style{"flex": 1, "alignItems": "center"},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("name"), 25, 52, 64),
					"fontWeight":    700,
					"color":         "#e6edf3",
					"lineHeight":    1.15,
					"letterSpacing": -2,
				}, markup.Text(p.Get("name"))),
			),
			markup.If(p.Has("description"), markup.Div(markup.Style{
				"fontSize": 22, "color": dim, "lineHeight": 1.5, "marginTop": 20,
			}, markup.Text(p.Get("description")))),
			markup.Div(markup.Style{"alignItems": "center", "gap": 24, "marginTop": 40},
				markup.If(p.Has("language"), markup.Div(markup.Style{"alignItems": "center", "gap": 8},
					markup.Div(markup.Style{"width": 14, "height": 14, "borderRadius": 7, "backgroundColor": p.Get("languageColor")}),
					markup.Div(markup.Style{"fontSize": 16, "color": dim}, markup.Text(p.Get("language"))),
				)),
				markup.If(p.Has("stars"), markup.Div(markup.Style{"alignItems": "center", "gap": 6},
					markup.Div(markup.Style{"fontSize": 16, "color": dim}, markup.Text("★")),
					markup.Div(markup.Style{"fontSize": 16, "color": dim}, markup.Text(p.Get("stars"))),
				)),
			),
		)
	},
}

var devDocs = &templates.Template{
	Name:        "dev-docs",
	Description: "Documentation page card",
	Schema: templates.MustSchema(
		title(80),
		templates.String("section").Optional(),
		templates.String("version").Optional(),
		templates.String("logo").URL().Optional(),
		templates.String("accentColor").Default("#6366f1"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		accent := p.Get("accentColor")
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": "#ffffff",
		}),
			markup.Div(markup.Style{"height": 4, "backgroundColor": accent}),
			markup.Div(markup.Style{"flexDirection": "column", "flex": 1, "padding": 70},
				markup.Div(markup.Style{"justifyContent": "space-between", "alignItems": "center", "marginBottom": 40},
					markup.Div(markup.Style{"alignItems": "center", "gap": 16},
						logo(p, 40, 8, nil),
						markup.If(p.Has("section"), markup.Div(markup.Style{
							"fontSize":        14,
							"fontWeight":      500,
							"color":           accent,
							"backgroundColor": accent + "10",
							"padding":         "8px 16px",
							"borderRadius":    6,
						}, markup.Text(p.Get("section")))),
					),
					markup.If(p.Has("version"), markup.Div(markup.Style{
						"fontSize":        14,
						"color":           "#71717a",
						"backgroundColor": "#f4f4f5",
						"padding":         "8px 16px",
						"borderRadius":    6,
						"fontFamily":      "monospace",
					}, markup.Text(p.Get("version")))),
				),
				markup.Div(markup.Style{"flex": 1, "alignItems": "center"},
					markup.Div(markup.Style{
						"fontSize":      pick(p.Get("title"), 40, 48, 60),
						"fontWeight":    700,
						"color":         "#18181b",
						"lineHeight":    1.2,
						"letterSpacing": -1,
					}, markup.Text(p.Get("title"))),
				),
				markup.Div(markup.Style{"alignItems": "center", "gap": 8, "marginTop": "auto"},
					markup.Div(markup.Style{"fontSize": 16, "color": "#71717a"}, markup.Text("Documentation")),
				),
			),
		)
	},
}

var devRelease = &templates.Template{
	Name:        "dev-release",
	Description: "Software release announcement",
	Schema: templates.MustSchema(
		templates.String("name").Min(1).Max(50),
		templates.String("version"),
		templates.String("tagline").Max(100).Optional(),
		templates.String("date").Optional(),
		templates.String("accentColor").Default("#10b981"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		accent := p.Get("accentColor")
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundColor": "#09090b",
			"position":        "relative",
		}),
			markup.Div(markup.Style{
				"position":     "absolute",
				"top":          "50%",
				"left":         "50%",
				"transform":    "translate(-50%, -50%)",
				"width":        600,
				"height":       600,
				"background":   "radial-gradient(circle, " + accent + "10 0%, transparent 60%)",
				"borderRadius": "50%",
			}),
			markup.Div(markup.Style{
				"fontSize":      16,
				"fontWeight":    600,
				"color":         accent,
				"letterSpacing": 3,
				"textTransform": "uppercase",
				"marginBottom":  24,
			}, markup.Text("NEW RELEASE")),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("name"), 20, 56, 72),
				"fontWeight":    700,
				"color":         "#fafafa",
				"textAlign":     "center",
				"lineHeight":    1.1,
				"letterSpacing": -2,
			}, markup.Text(p.Get("name"))),
			markup.Div(markup.Style{
				"marginTop":       24,
				"padding":         "14px 32px",
				"backgroundColor": accent,
				"borderRadius":    12,
				"fontSize":        28,
				"fontWeight":      700,
				"color":           "white",
				"fontFamily":      "monospace",
			}, markup.Text(p.Get("version"))),
			markup.If(p.Has("tagline"), markup.Div(markup.Style{
				"fontSize": 22, "color": "#a1a1aa", "marginTop": 32, "textAlign": "center",
			}, markup.Text(p.Get("tagline")))),
			markup.If(p.Has("date"), markup.Div(markup.Style{
				"position": "absolute", "bottom": 40, "fontSize": 14, "color": "#52525b",
			}, markup.Text(p.Get("date")))),
		)
	},
}

var devAPI = &templates.Template{
	Name:        "dev-api",
	Description: "API endpoint documentation",
	Schema: templates.MustSchema(
		title(60),
		templates.String("method").Optional(),
		templates.String("endpoint").Optional(),
		templates.String("description").Max(100).Optional(),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		methodColor, ok := methodColors[p.Get("method")]
		if !ok {
			methodColor = otherMethodColor
		}
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": "#1e1e1e",
			"padding":         70,
		}),
			markup.If(p.Has("method") || p.Has("endpoint"), markup.Div(markup.Style{
				"alignItems":      "center",
				"gap":             16,
				"marginBottom":    40,
				"padding":         "16px 24px",
				"backgroundColor": "#2d2d2d",
				"borderRadius":    12,
				"border":          "1px solid #404040",
			},
				markup.If(p.Has("method"), markup.Div(markup.Style{
					"fontSize":   14,
					"fontWeight": 700,
					"color":      methodColor,
					"fontFamily": "monospace",
				}, markup.Text(p.Get("method")))),
				markup.If(p.Has("endpoint"), markup.Div(markup.Style{
					"fontSize": 18, "color": "#d4d4d4", "fontFamily": "monospace",
				}, markup.Text(p.Get("endpoint")))),
			)),
			markup.Div(markup.Style{"flex": 1, "alignItems": "center"},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("title"), 35, 48, 60),
					"fontWeight":    700,
					"color":         "#e5e5e5",
					"lineHeight":    1.2,
					"letterSpacing": -1,
				}, markup.Text(p.Get("title"))),
			),
			markup.If(p.Has("description"), markup.Div(markup.Style{
				"fontSize": 20, "color": "#a3a3a3", "marginTop": 24,
			}, markup.Text(p.Get("description")))),
			markup.Div(markup.Style{"alignItems": "center", "gap": 8, "marginTop": 32},
				markup.Div(markup.Style{"fontSize": 14, "color": "#737373"}, markup.Text("API Reference")),
			),
		)
	},
}

var devOpenSource = &templates.Template{
	Name:        "dev-opensource",
	Description: "Open source project showcase",
	Schema: templates.MustSchema(
		templates.String("name").Min(1).Max(50),
		templates.String("tagline").Max(100).Optional(),
		templates.String("logo").URL().Optional(),
		templates.String("license").Optional(),
		templates.String("accentColor").Default("#f97316"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		accent := p.Get("accentColor")
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundImage": "linear-gradient(135deg, #0c0a09 0%, #1c1917 100%)",
			"position":        "relative",
		}),
			markup.Div(markup.Style{
				"position":        "absolute",
				"top":             40,
				"right":           60,
				"fontSize":        14,
				"color":           accent,
				"backgroundColor": accent + "15",
				"padding":         "10px 20px",
				"borderRadius":    8,
				"fontWeight":      600,
			}, markup.Text("Open Source")),
			logo(p, 100, 24, markup.Style{"marginBottom": 32}),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("name"), 20, 60, 80),
				"fontWeight":    800,
				"color":         "#fafaf9",
				"textAlign":     "center",
				"lineHeight":    1,
				"letterSpacing": -3,
			}, markup.Text(p.Get("name"))),
			markup.If(p.Has("tagline"), markup.Div(markup.Style{
				"fontSize":  24,
				"color":     "#a8a29e",
				"marginTop": 24,
				"textAlign": "center",
				"maxWidth":  700,
			}, markup.Text(p.Get("tagline")))),
			markup.If(p.Has("license"), markup.Div(markup.Style{
				"marginTop":       40,
				"padding":         "10px 24px",
				"backgroundColor": "#292524",
				"borderRadius":    8,
				"fontSize":        14,
				"color":           "#78716c",
				"fontFamily":      "monospace",
			}, markup.Text(p.Get("license")))),
		)
	},
}
