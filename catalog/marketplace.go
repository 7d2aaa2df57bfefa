package catalog

import (
	"github.com/jonwraymond/ogimage/markup"
	"github.com/jonwraymond/ogimage/templates"
)

func marketplaceTemplates() []*templates.Template {
	return []*templates.Template{marketplaceDefault, marketplaceMinimal, marketplaceSale, marketplaceLuxury}
}

var marketplaceDefault = &templates.Template{
	Name:        "marketplace",
	Description: "Classic product listing card",
	Schema: templates.MustSchema(
		title(80),
		templates.String("price").Optional(),
		templates.String("originalPrice").Optional(),
		templates.String("image").URL().Optional(),
		templates.String("rating").Optional(),
		templates.String("reviews").Optional(),
		templates.String("badge").Optional(),
		templates.String("seller").Optional(),
		templates.String("accentColor").Default("#10b981"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		accent := p.Get("accentColor")
		product := markup.Choose(p.Has("image"),
			markup.Img(p.Get("image"), markup.Style{"maxWidth": "75%", "maxHeight": "75%", "objectFit": "contain"}),
			markup.Div(markup.Style{
				"width":           180,
				"height":          180,
				"backgroundColor": "#e2e8f0",
				"borderRadius":    20,
				"alignItems":      "center",
				"justifyContent":  "center",
				"color":           "#94a3b8",
				"fontSize":        64,
			}, markup.Text("📦")),
		)

		return markup.Div(canvas(c, markup.Style{"backgroundColor": "#ffffff"}),
			markup.Div(markup.Style{
				"width":           "50%",
				"height":          "100%",
				"backgroundColor": "#f8fafc",
				"alignItems":      "center",
				"justifyContent":  "center",
				"position":        "relative",
			},
				markup.If(p.Has("badge"), markup.Div(markup.Style{
					"position":        "absolute",
					"top":             28,
					"left":            28,
					"backgroundColor": accent,
					"color":           "white",
					"padding":         "10px 18px",
					"borderRadius":    6,
					"fontSize":        14,
					"fontWeight":      700,
					"textTransform":   "uppercase",
					"letterSpacing":   1,
				}, markup.Text(p.Get("badge")))),
				product,
			),
			markup.Div(markup.Style{
				"flexDirection":  "column",
				"width":          "50%",
				"padding":        60,
				"justifyContent": "center",
			},
				markup.Div(markup.Style{
					"fontSize":     pick(p.Get("title"), 40, 34, 42),
					"fontWeight":   700,
					"color":        "#18181b",
					"lineHeight":   1.2,
					"marginBottom": 20,
				}, markup.Text(p.Get("title"))),
				markup.If(p.Has("rating") || p.Has("reviews"), markup.Div(markup.Style{
					"alignItems": "center", "marginBottom": 24, "gap": 10,
				},
					markup.If(p.Has("rating"), markup.Div(markup.Style{
						"backgroundColor": "#fef3c7",
						"padding":         "8px 14px",
						"borderRadius":    6,
						"fontSize":        16,
						"fontWeight":      600,
						"color":           "#d97706",
					}, markup.Text("★ "+p.Get("rating")))),
					markup.If(p.Has("reviews"), markup.Div(markup.Style{
						"fontSize": 16, "color": "#71717a",
					}, markup.Text(p.Get("reviews")))),
				)),
				markup.If(p.Has("price"), markup.Div(markup.Style{"alignItems": "baseline", "gap": 14},
					markup.Div(markup.Style{"fontSize": 44, "fontWeight": 700, "color": accent}, markup.Text(p.Get("price"))),
					markup.If(p.Has("originalPrice"), markup.Div(markup.Style{
						"fontSize": 24, "color": "#a1a1aa", "textDecoration": "line-through",
					}, markup.Text(p.Get("originalPrice")))),
				)),
				markup.If(p.Has("seller"), markup.Div(markup.Style{
					"fontSize": 16, "color": "#71717a", "marginTop": 24,
				}, markup.Text("Sold by "+p.Get("seller")))),
			),
		)
	},
}

var marketplaceMinimal = &templates.Template{
	Name:        "marketplace-minimal",
	Description: "Clean minimal product card",
	Schema: templates.MustSchema(
		title(60),
		templates.String("price"),
		templates.String("category").Optional(),
		templates.String("brand").Optional(),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"justifyContent":  "center",
			"backgroundColor": "#ffffff",
			"padding":         80,
		}),
			markup.If(p.Has("category"), markup.Div(markup.Style{
				"fontSize":      14,
				"fontWeight":    500,
				"color":         "#a1a1aa",
				"letterSpacing": 2,
				"textTransform": "uppercase",
				"marginBottom":  20,
			}, markup.Text(p.Get("category")))),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("title"), 30, 48, 60),
				"fontWeight":    600,
				"color":         "#18181b",
				"lineHeight":    1.15,
				"letterSpacing": -1,
				"marginBottom":  32,
			}, markup.Text(p.Get("title"))),
			markup.Div(markup.Style{"alignItems": "center", "gap": 20},
				markup.Div(markup.Style{"fontSize": 36, "fontWeight": 700, "color": "#18181b"}, markup.Text(p.Get("price"))),
				markup.If(p.Has("brand"), markup.Div(markup.Style{
					"fontSize":    16,
					"color":       "#71717a",
					"paddingLeft": 20,
					"borderLeft":  "2px solid #e4e4e7",
				}, markup.Text(p.Get("brand")))),
			),
		)
	},
}

var marketplaceSale = &templates.Template{
	Name:        "marketplace-sale",
	Description: "Bold sale/promotion card",
	Schema: templates.MustSchema(
		title(50),
		templates.String("discount"),
		templates.String("code").Optional(),
		templates.String("validUntil").Optional(),
		templates.String("bgColor").Default("#dc2626"),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"alignItems":      "center",
			"justifyContent":  "center",
			"backgroundColor": p.Get("bgColor"),
			"position":        "relative",
		}),
			markup.Div(markup.Style{
				"fontSize":      120,
				"fontWeight":    800,
				"color":         "white",
				"lineHeight":    1,
				"letterSpacing": -4,
			}, markup.Text(p.Get("discount"))),
			markup.Div(markup.Style{
				"fontSize":   32,
				"fontWeight": 600,
				"color":      "white",
				"marginTop":  16,
				"opacity":    0.9,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("code"), markup.Div(markup.Style{
				"marginTop":       40,
				"padding":         "16px 32px",
				"backgroundColor": "#fef2f2",
				"borderRadius":    8,
				"fontSize":        20,
				"fontWeight":      700,
				"color":           p.Get("bgColor"),
				"letterSpacing":   3,
			}, markup.Text("CODE: "+p.Get("code")))),
			markup.If(p.Has("validUntil"), markup.Div(markup.Style{
				"position": "absolute",
				"bottom":   40,
				"fontSize": 16,
				"color":    "white",
				"opacity":  0.7,
			}, markup.Text(p.Get("validUntil")))),
		)
	},
}

var marketplaceLuxury = &templates.Template{
	Name:        "marketplace-luxury",
	Description: "Premium luxury product card",
	Schema: templates.MustSchema(
		title(60),
		templates.String("subtitle").Max(80).Optional(),
		templates.String("price").Optional(),
		templates.String("brand").Optional(),
	),
	DefaultConfig: templates.OGConfig,
	Render: func(p templates.Params, c templates.Config) *markup.Node {
		const gold = "#d4af37"
		return markup.Div(canvas(c, markup.Style{
			"flexDirection":   "column",
			"justifyContent":  "center",
			"alignItems":      "center",
			"backgroundColor": "#1c1917",
			"position":        "relative",
		}),
			markup.Div(markup.Style{
				"position": "absolute", "top": 0, "left": 0, "right": 0, "bottom": 0,
				"border": "1px solid rgba(212, 175, 55, 0.3)",
				"margin": 30,
			}),
			markup.If(p.Has("brand"), markup.Div(markup.Style{
				"fontSize":      14,
				"fontWeight":    500,
				"color":         gold,
				"letterSpacing": 6,
				"textTransform": "uppercase",
				"marginBottom":  32,
			}, markup.Text(p.Get("brand")))),
			markup.Div(markup.Style{
				"fontSize":      pick(p.Get("title"), 30, 48, 60),
				"fontWeight":    300,
				"color":         "#fafaf9",
				"textAlign":     "center",
				"lineHeight":    1.2,
				"letterSpacing": 2,
			}, markup.Text(p.Get("title"))),
			markup.If(p.Has("subtitle"), markup.Div(markup.Style{
				"fontSize":      20,
				"color":         "#a8a29e",
				"marginTop":     20,
				"fontWeight":    300,
				"letterSpacing": 1,
			}, markup.Text(p.Get("subtitle")))),
			markup.If(p.Has("price"), markup.Div(markup.Style{
				"marginTop":  40,
				"fontSize":   28,
				"fontWeight": 400,
				"color":      gold,
			}, markup.Text(p.Get("price")))),
		)
	},
}
