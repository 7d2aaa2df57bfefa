package catalog

import (
	"strings"

	"github.com/jonwraymond/ogimage/templates"
)

// Known categories, in display order.
const (
	CategoryGeneric     = "generic"
	CategoryBlog        = "blog"
	CategoryMarketplace = "marketplace"
	CategoryDeveloper   = "developer"
)

var knownCategories = []string{CategoryGeneric, CategoryBlog, CategoryMarketplace, CategoryDeveloper}

var categoryLabels = map[string]string{
	CategoryGeneric:     "Generic",
	CategoryBlog:        "Blog",
	CategoryMarketplace: "Marketplace",
	CategoryDeveloper:   "Developer",
}

// Category derives a template's category from its name. Names are either a
// bare category or prefixed with one; "dev-" maps to developer. Anything
// else is generic.
func Category(name string) string {
	for _, cat := range knownCategories {
		if name == cat || strings.HasPrefix(name, cat+"-") {
			return cat
		}
	}
	if strings.HasPrefix(name, "dev-") {
		return CategoryDeveloper
	}
	return CategoryGeneric
}

// DisplayName is the short label of a template within its category:
// "blog-minimal" is "minimal". A bare category name is kept as is.
func DisplayName(name string) string {
	short := strings.Replace(name, Category(name)+"-", "", 1)
	short = strings.Replace(short, "dev-", "", 1)
	if short == "" {
		return "Default"
	}
	return short
}

// CategoryLabel is the human-readable name of a category.
func CategoryLabel(id string) string {
	if label, ok := categoryLabels[id]; ok {
		return label
	}
	if id == "" {
		return id
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// CategoryInfo identifies one category.
type CategoryInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Entry is one template within a category listing.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Index describes a registry for template pickers: the categories in use,
// the templates grouped by category and the fields each template accepts.
type Index struct {
	Categories []CategoryInfo                    `json:"categories"`
	Templates  map[string][]Entry                `json:"templates"`
	Fields     map[string][]templates.FieldInfo `json:"fields"`
}

// Describe builds the Index of reg. Templates keep registration order
// within their category.
func Describe(reg *templates.Registry) Index {
	idx := Index{
		Categories: []CategoryInfo{},
		Templates:  make(map[string][]Entry),
		Fields:     make(map[string][]templates.FieldInfo),
	}
	for _, s := range reg.List() {
		cat := Category(s.Name)
		idx.Templates[cat] = append(idx.Templates[cat], Entry{
			ID:          s.Name,
			Name:        DisplayName(s.Name),
			Description: s.Description,
		})
		if t, ok := reg.Get(s.Name); ok {
			idx.Fields[s.Name] = t.Schema.Fields()
		}
	}
	for _, cat := range knownCategories {
		if _, ok := idx.Templates[cat]; ok {
			idx.Categories = append(idx.Categories, CategoryInfo{ID: cat, Name: CategoryLabel(cat)})
		}
	}
	return idx
}
