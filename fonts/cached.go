package fonts

import (
	"context"

	"github.com/jonwraymond/ogimage/lazy"
)

// Cached loads the font table from an underlying provider once and serves
// the same table afterwards. A failed load is retried on the next call.
type Cached struct {
	table *lazy.Value[[]Font]
}

// NewCached wraps p.
func NewCached(p Provider) *Cached {
	return &Cached{
		table: lazy.New(func(ctx context.Context) ([]Font, error) {
			fonts, err := p.Load(ctx)
			if err != nil {
				return nil, err
			}
			if len(fonts) == 0 {
				return nil, ErrNoFonts
			}
			return fonts, nil
		}),
	}
}

// Load returns the shared font table. Callers must not modify it.
func (c *Cached) Load(ctx context.Context) ([]Font, error) {
	return c.table.Get(ctx)
}

// Loaded reports whether the table is in memory.
func (c *Cached) Loaded() bool {
	return c.table.Ready()
}

// Reset drops the table so the next Load reads it again.
func (c *Cached) Reset() {
	c.table.Reset()
}

// Ensure Cached implements Provider
var _ Provider = (*Cached)(nil)
