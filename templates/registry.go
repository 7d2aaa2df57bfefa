package templates

import (
	"fmt"
	"sync"
)

// Registry stores templates by name and remembers registration order.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Immutability: registered templates must not be modified afterwards.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// Register adds a template. Incomplete templates and duplicate names are rejected.
func (r *Registry) Register(t *Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templates[t.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTemplate, t.Name)
	}
	r.templates[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(t *Template) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get retrieves a template by name.
func (r *Registry) Get(name string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[name]
	return t, ok
}

// Names returns every registered name in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// List returns a summary of every template in registration order.
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.order))
	for _, name := range r.order {
		t := r.templates[name]
		out = append(out, Summary{Name: t.Name, Description: t.Description})
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
