// Package registry is the catalog of automaton definitions a shell serves.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/schema"
)

// Registry caches validated definitions read from a loader.
type Registry struct {
	loader ports.DefinitionLoader

	mu    sync.RWMutex
	defs  map[string]*schema.Definition
	names []string
}

// New creates a registry over loader. Call Load before use.
func New(loader ports.DefinitionLoader) *Registry {
	return &Registry{
		loader: loader,
		defs:   make(map[string]*schema.Definition),
	}
}

// NewBuiltin creates a loaded registry holding the builtin catalog.
func NewBuiltin() *Registry {
	r := New(nil)
	for _, def := range Builtins() {
		r.defs[def.Name] = def
		r.names = append(r.names, def.Name)
	}
	return r
}

// Load reads and validates every definition. All failures are reported together;
// definitions that passed are still registered.
func (r *Registry) Load(ctx context.Context) error {
	if r.loader == nil {
		return nil
	}
	names, err := r.loader.List(ctx)
	if err != nil {
		return fmt.Errorf("list definitions: %w", err)
	}

	defs := make(map[string]*schema.Definition, len(names))
	loaded := make([]string, 0, len(names))
	var errs []error
	for _, name := range names {
		def, err := r.loader.Get(ctx, name)
		if err != nil {
			errs = append(errs, fmt.Errorf("load %s: %w", name, err))
			continue
		}
		if err := def.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		defs[name] = def
		loaded = append(loaded, name)
	}

	r.mu.Lock()
	r.defs = defs
	r.names = loaded
	r.mu.Unlock()

	return errors.Join(errs...)
}

// Get returns a copy of the named definition.
func (r *Registry) Get(name string) (*schema.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}
	return def.Clone(), nil
}

// Names lists registered definitions in loader order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Definitions returns copies of every registered definition in Names order.
func (r *Registry) Definitions() []*schema.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*schema.Definition, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.defs[name].Clone())
	}
	return out
}
