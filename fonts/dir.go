package fonts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// Spec names one font file and the face it provides.
type Spec struct {
	Name   string `yaml:"name"`
	File   string `yaml:"file"`
	Weight int    `yaml:"weight"`
	Style  string `yaml:"style"`
}

// DefaultDir is where DirProvider looks for font files by default.
const DefaultDir = "static/fonts"

// DefaultSpecs is the Inter family at regular, semibold and bold weights.
var DefaultSpecs = []Spec{
	{Name: "Inter", File: "Inter-Regular.ttf", Weight: 400, Style: StyleNormal},
	{Name: "Inter", File: "Inter-SemiBold.ttf", Weight: 600, Style: StyleNormal},
	{Name: "Inter", File: "Inter-Bold.ttf", Weight: 700, Style: StyleNormal},
}

// DirConfig configures a DirProvider.
type DirConfig struct {
	// Dir holds the font files.
	// Default: "static/fonts"
	Dir string

	// Specs lists the faces to load.
	// Default: DefaultSpecs
	Specs []Spec
}

// DirProvider loads fonts from files in a directory.
type DirProvider struct {
	config DirConfig
}

// NewDirProvider creates a provider reading from config.Dir.
func NewDirProvider(config DirConfig) *DirProvider {
	// Apply defaults
	if config.Dir == "" {
		config.Dir = DefaultDir
	}
	if len(config.Specs) == 0 {
		config.Specs = DefaultSpecs
	}
	return &DirProvider{config: config}
}

// Load reads and parses every configured file concurrently.
// The result preserves the order of the specs.
func (p *DirProvider) Load(ctx context.Context) ([]Font, error) {
	out := make([]Font, len(p.config.Specs))

	g, ctx := errgroup.WithContext(ctx)
	for i, spec := range p.config.Specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(p.config.Dir, spec.File)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("fonts: read %s: %w", path, err)
			}
			f, err := Parse(spec.Name, spec.Weight, spec.Style, data)
			if err != nil {
				return err
			}
			out[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNoFonts
	}
	return out, nil
}

// Ensure DirProvider implements Provider
var _ Provider = (*DirProvider)(nil)
