package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Loader implements ports.DefinitionLoader over definitions built in code.
type Loader struct {
	defs map[string]*schema.Definition
}

// NewLoader creates a loader holding copies of the given definitions.
// A later definition with the same name replaces an earlier one.
func NewLoader(defs ...*schema.Definition) *Loader {
	l := &Loader{defs: make(map[string]*schema.Definition, len(defs))}
	for _, d := range defs {
		l.defs[d.Name] = d.Clone()
	}
	return l
}

// NewFromDocuments creates a loader from raw YAML documents, keyed by anything
// (typically a file name). This improves DX for tests.
func NewFromDocuments(docs map[string]string) (*Loader, error) {
	l := &Loader{defs: make(map[string]*schema.Definition, len(docs))}
	for key, doc := range docs {
		def, err := schema.Parse([]byte(doc), ".yaml")
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", key, err)
		}
		l.defs[def.Name] = def
	}
	return l, nil
}

// Get returns a copy of the named definition.
func (l *Loader) Get(ctx context.Context, name string) (*schema.Definition, error) {
	def, ok := l.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}
	return def.Clone(), nil
}

// List returns all available definition names.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(l.defs))
	for k := range l.defs {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
