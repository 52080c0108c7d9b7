package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/schema"
)

// DefinitionLoader defines how shells retrieve automaton definitions.
// Definitions are read once at startup and never written back.
type DefinitionLoader interface {
	// Get returns the definition with the given name.
	// Returns domain.ErrDefinitionNotFound if it does not exist.
	Get(ctx context.Context, name string) (*schema.Definition, error)

	// List returns the names of every available definition, sorted.
	List(ctx context.Context) ([]string, error)
}
