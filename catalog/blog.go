package catalog

import (
	"github.com/jonwraymond/ogimage/markup"
	"github.com/jonwraymond/ogimage/templates"
)

func blogTemplates() []*templates.Template {
	return []*templates.Template{blogDefault, blogMinimal, blogMagazine, blogDark, blogNewsletter}
}

var blogDefault = &templates.Template{
	Name:        "blog",
	Description: "Classic blog post with author and metadata",
	Schema: templates.MustSchema(
		title(100),
		templates.String("description").Max(200).Optional(),
		templates.String("author").Max(50).Optional(),
		templates.String("authorImage").URL().Optional(),
		templates.String("date").Optional(),
		templates.String("readTime").Optional(),
		templates.String("category").Optional(),
		templates.String("bgColor").Default("#0f172a"),
		templates.String("accentColor").Default("#3b82f6"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": p.Get("bgColor"),
			"padding":         70,
		}),
			markup.If(p.Has("category"), markup.Div(markup.Style{
				"backgroundColor": p.Get("accentColor"),
				"color":           "white",
				"padding":         "10px 20px",
				"borderRadius":    8,
				"fontSize":        16,
				"fontWeight":      600,
				"marginBottom":    28,
				"alignSelf":       "flex-start",
			}, markup.Text(p.Get("category")))),
			markup.Div(markup.Style{
				"flex":          1,
				"fontSize":      pick(p.Get("title"), 60, 46, 56),
				"fontWeight":    700,
				"color":         "white",
				"lineHeight":    1.2,
				"letterSpacing": -1,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("description"), markup.Div(markup.Style{
				"fontSize": 22, "color": "#94a3b8", "marginTop": 20, "lineHeight": 1.5,
			}, markup.Text(p.Get("description")))),
			markup.Div(markup.Style{"alignItems": "center", "marginTop": 32, "gap": 16},
				markup.If(p.Has("authorImage"), markup.Img(p.Get("authorImage"), markup.Style{
					"width": 52, "height": 52, "borderRadius": 26, "border": "2px solid rgba(255,255,255,0.2)",
				})),
				markup.Div(markup.Style{"flexDirection": "column", "gap": 4},
					markup.If(p.Has("author"), markup.Div(markup.Style{
						"fontSize": 18, "fontWeight": 600, "color": "white",
					}, markup.Text(p.Get("author")))),
					markup.Div(markup.Style{"fontSize": 15, "color": "#64748b", "gap": 8},
						dotted(p.Get("date"), p.Get("readTime"))),
				),
			),
		)
	},
}

var blogMinimal = &templates.Template{
	Name:        "blog-minimal",
	Description: "Clean minimal blog card",
	Schema: templates.MustSchema(
		title(100),
		templates.String("author").Max(50).Optional(),
		templates.String("date").Optional(),
		templates.String("siteName").Optional(),
		templates.String("accentColor").Default("#18181b"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": "#ffffff",
			"padding":         80,
		}),
			markup.If(p.Has("siteName"), markup.Div(markup.Style{
				"fontSize":      16,
				"fontWeight":    600,
				"color":         p.Get("accentColor"),
				"letterSpacing": 1,
				"textTransform": "uppercase",
				"marginBottom":  40,
			}, markup.Text(p.Get("siteName")))),
			markup.Div(markup.Style{"flex": 1, "alignItems": "center"},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("title"), 50, 44, 56),
					"fontWeight":    600,
					"color":         "#18181b",
					"lineHeight":    1.25,
					"letterSpacing": -1,
				}, markup.Text(p.Get("title"))),
			),
			markup.Div(markup.Style{"gap": 20, "alignItems": "center", "marginTop": "auto"},
				markup.Div(markup.Style{"width": 40, "height": 2, "backgroundColor": p.Get("accentColor")}),
				markup.Div(markup.Style{"gap": 12, "fontSize": 16, "color": "#71717a"},
					dotted(p.Get("author"), p.Get("date"))),
			),
		)
	},
}

var blogMagazine = &templates.Template{
	Name:        "blog-magazine",
	Description: "Editorial magazine cover style",
	Schema: templates.MustSchema(
		title(80),
		templates.String("subtitle").Max(150).Optional(),
		templates.String("category").Optional(),
		templates.String("issue").Optional(),
		templates.String("bgColor").Default("#fef3c7"),
		templates.String("textColor").Default("#78350f"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		ink := p.Get("textColor")
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": p.Get("bgColor"),
			"padding":         80,
		}),
			markup.Div(markup.Style{"justifyContent": "space-between", "alignItems": "center", "marginBottom": 40},
				markup.If(p.Has("category"), markup.Div(markup.Style{
					"fontSize":      14,
					"fontWeight":    600,
					"color":         ink,
					"letterSpacing": 3,
					"textTransform": "uppercase",
				}, markup.Text(p.Get("category")))),
				markup.If(p.Has("issue"), markup.Div(markup.Style{
					"fontSize": 14, "color": ink, "opacity": 0.6,
				}, markup.Text(p.Get("issue")))),
			),
			markup.Div(markup.Style{"flex": 1, "alignItems": "center"},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("title"), 40, 52, 68),
					"fontWeight":    700,
					"color":         ink,
					"lineHeight":    1.1,
					"letterSpacing": -2,
				}, markup.Text(p.Get("title"))),
			),
			markup.If(p.Has("subtitle"), markup.Div(markup.Style{
				"fontSize":  22,
				"color":     ink,
				"opacity":   0.7,
				"marginTop": "auto",
				"fontStyle": "italic",
			}, markup.Text(p.Get("subtitle")))),
		)
	},
}

var blogDark = &templates.Template{
	Name:        "blog-dark",
	Description: "Dark mode blog with accent glow",
	Schema: templates.MustSchema(
		title(100),
		templates.String("description").Max(180).Optional(),
		templates.String("author").Max(50).Optional(),
		templates.String("category").Optional(),
		templates.String("accentColor").Default("#a78bfa"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		accent := p.Get("accentColor")
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": "#0a0a0a",
			"padding":         70,
			"position":        "relative",
		}),
			markup.Div(markup.Style{
				"position":     "absolute",
				"top":          0,
				"right":        0,
				"width":        400,
				"height":       400,
				"background":   "radial-gradient(circle at top right, " + accent + "20 0%, transparent 60%)",
				"borderRadius": "50%",
			}),
			markup.If(p.Has("category"), markup.Div(markup.Style{"marginBottom": 32},
				markup.Div(markup.Style{
					"fontSize":        14,
					"fontWeight":      500,
					"color":           accent,
					"backgroundColor": accent + "15",
					"padding":         "8px 16px",
					"borderRadius":    6,
				}, markup.Text(p.Get("category"))),
			)),
			markup.Div(markup.Style{"flex": 1},
				markup.Div(markup.Style{
					"fontSize":      pick(p.Get("title"), 55, 44, 54),
					"fontWeight":    700,
					"color":         "#fafafa",
					"lineHeight":    1.2,
					"letterSpacing": -1,
				}, markup.Text(p.Get("title"))),
			),
			markup.If(p.Has("description"), markup.Div(markup.Style{
				"fontSize": 20, "color": "#a1a1aa", "marginTop": 24, "lineHeight": 1.5,
			}, markup.Text(p.Get("description")))),
			markup.If(p.Has("author"), markup.Div(markup.Style{"alignItems": "center", "gap": 12, "marginTop": 32},
				markup.Div(markup.Style{"width": 32, "height": 32, "borderRadius": 16, "backgroundColor": accent}),
				markup.Div(markup.Style{"fontSize": 16, "color": "#d4d4d8"}, markup.Text(p.Get("author"))),
			)),
		)
	},
}

var blogNewsletter = &templates.Template{
	Name:        "blog-newsletter",
	Description: "Newsletter/Substack style",
	Schema: templates.MustSchema(
		title(100),
		templates.String("subtitle").Max(150).Optional(),
		templates.String("author").Max(50).Optional(),
		templates.String("authorImage").URL().Optional(),
		templates.String("edition").Optional(),
		templates.String("accentColor").Default("#f97316"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"backgroundColor": "#fffbeb",
		}),
			markup.Div(markup.Style{"height": 6, "backgroundColor": p.Get("accentColor")}),
			markup.Div(markup.Style{"flexDirection": "column", "flex": 1, "padding": 70},
				markup.Div(markup.Style{"justifyContent": "space-between", "alignItems": "center", "marginBottom": 40},
					markup.Div(markup.Style{"alignItems": "center", "gap": 12},
						markup.If(p.Has("authorImage"), markup.Img(p.Get("authorImage"), markup.Style{
							"width": 44, "height": 44, "borderRadius": 22,
						})),
						markup.If(p.Has("author"), markup.Div(markup.Style{
							"fontSize": 16, "fontWeight": 600, "color": "#78350f",
						}, markup.Text(p.Get("author")))),
					),
					markup.If(p.Has("edition"), markup.Div(markup.Style{
						"fontSize":        14,
						"color":           "#92400e",
						"backgroundColor": "#fef3c7",
						"padding":         "8px 16px",
						"borderRadius":    6,
					}, markup.Text(p.Get("edition")))),
				),
				markup.Div(markup.Style{"flex": 1, "alignItems": "center"},
					markup.Div(markup.Style{
						"fontSize":      pick(p.Get("title"), 50, 44, 54),
						"fontWeight":    700,
						"color":         "#78350f",
						"lineHeight":    1.2,
						"letterSpacing": -1,
					}, markup.Text(p.Get("title"))),
				),
				markup.If(p.Has("subtitle"), markup.Div(markup.Style{
					"fontSize": 20, "color": "#92400e", "marginTop": "auto",
				}, markup.Text(p.Get("subtitle")))),
			),
		)
	},
}
