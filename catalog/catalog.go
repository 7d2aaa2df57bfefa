package catalog

import (
	"fmt"
	"maps"
	"unicode/utf8"

	"github.com/jonwraymond/ogimage/markup"
	"github.com/jonwraymond/ogimage/templates"
)

// Register adds every built-in template to reg, grouped by category.
func Register(reg *templates.Registry) error {
	groups := [][]*templates.Template{
		genericTemplates(),
		blogTemplates(),
		marketplaceTemplates(),
		developerTemplates(),
	}
	for _, group := range groups {
		for _, t := range group {
			if err := reg.Register(t); err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
		}
	}
	return nil
}

// Default returns a new registry holding the built-in templates.
func Default() *templates.Registry {
	reg := templates.NewRegistry()
	if err := Register(reg); err != nil {
		panic(err)
	}
	return reg
}

// canvas is the root style shared by every template: the full output size
// plus the base font, merged with extra.
func canvas(c templates.Config, extra markup.Style) markup.Style {
	st := markup.Style{
		"display":    "flex",
		"width":      c.Width,
		"height":     c.Height,
		"fontFamily": "Inter",
	}
	maps.Copy(st, extra)
	return st
}

func title(max int) templates.Field {
	return templates.String("title").Min(1).Max(max)
}

// pick returns long when s is longer than limit characters, else short.
// Titles step down a font size once they get long.
func pick(s string, limit, long, short int) int {
	if utf8.RuneCountInString(s) > limit {
		return long
	}
	return short
}

// logo renders the optional square logo image.
func logo(p templates.Params, size, radius int, extra markup.Style) markup.Child {
	if !p.Has("logo") {
		return nil
	}
	st := markup.Style{"width": size, "height": size, "borderRadius": radius}
	maps.Copy(st, extra)
	return markup.Img(p.Get("logo"), st)
}

// dotted lays out two optional metadata strings separated by a middle dot.
// Each part is its own span so the parent's gap spaces them.
func dotted(a, b string) markup.Group {
	var g markup.Group
	if a != "" {
		g = append(g, markup.Span(nil, markup.Text(a)))
	}
	if a != "" && b != "" {
		g = append(g, markup.Span(nil, markup.Text("·")))
	}
	if b != "" {
		g = append(g, markup.Span(nil, markup.Text(b)))
	}
	return g
}
