package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Builder manages the definition construction.
type Builder struct {
	def    schema.Definition
	states map[string]*StateBuilder
	order  []string
}

// New creates a new definition builder.
func New(name string, kind domain.Kind) *Builder {
	return &Builder{
		def:    schema.Definition{Name: name, Kind: kind},
		states: make(map[string]*StateBuilder),
	}
}

// Describe sets the Markdown description.
func (b *Builder) Describe(text string) *Builder {
	b.def.Description = text
	return b
}

// Alphabet declares the input alphabet (the tape alphabet of Turing machines).
func (b *Builder) Alphabet(symbols ...string) *Builder {
	b.def.Alphabet = append(b.def.Alphabet, symbols...)
	return b
}

// Blank overrides the Turing machine blank symbol.
func (b *Builder) Blank(symbol string) *Builder {
	b.def.Blank = symbol
	return b
}

// Add declares a state. If the state already exists, it returns the existing builder.
func (b *Builder) Add(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Definition assembles and validates the definition. States are listed in
// declaration order; targets that were never added are reported by validation.
func (b *Builder) Definition() (*schema.Definition, error) {
	def := b.def
	def.States = append([]string(nil), b.order...)
	def.Accepting = nil
	def.Transitions = nil
	def.Alphabet = append([]string(nil), b.def.Alphabet...)

	for _, id := range b.order {
		sb := b.states[id]
		if sb.start {
			if def.Start != "" && def.Start != id {
				return nil, fmt.Errorf("%w: %s: both %s and %s are marked as start", domain.ErrInvalidDefinition, def.Name, def.Start, id)
			}
			def.Start = id
		}
		if sb.accepting {
			def.Accepting = append(def.Accepting, id)
		}
		def.Transitions = append(def.Transitions, sb.rows...)
	}

	def.Normalize()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Catalog builds every definition into a loader, usable with registry.New.
func Catalog(builders ...*Builder) (*memory.Loader, error) {
	defs := make([]*schema.Definition, 0, len(builders))
	for _, b := range builders {
		def, err := b.Definition()
		if err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", b.def.Name, err)
		}
		defs = append(defs, def)
	}
	return memory.NewLoader(defs...), nil
}
