package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/loam"
)

// Loader implements ports.DefinitionLoader over a Loam repository: each
// Markdown document holds one definition in its frontmatter, and the body, when
// the frontmatter has no description, becomes the description.
type Loader struct {
	Repo *loam.TypedRepository[Metadata]

	// docs maps definition names to Loam document IDs, filled by List.
	docs map[string]string
}

// New creates a loader over an existing typed repository.
func New(repo *loam.TypedRepository[Metadata]) *Loader {
	return &Loader{Repo: repo}
}

// Open initializes a read-only, strict Loam repository at dir.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	// Strict mode keeps numbers as integers; read-only stops Loam from
	// creating its sandbox in development checkouts.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[Metadata](repo)), nil
}

// List returns the names of every definition document, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string, len(docs))
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}
		if existing, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: definition '%s' is defined in both '%s' and '%s'", name, existing, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	sort.Strings(names)
	l.docs = seen
	return names, nil
}

// Get decodes and validates the named definition.
func (l *Loader) Get(ctx context.Context, name string) (*schema.Definition, error) {
	id, ok := l.docs[name]
	if !ok {
		id = name
	}

	doc, err := l.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrDefinitionNotFound, name, err)
	}

	def, err := schema.Decode(doc.Data.raw(trimExtension(doc.ID), strings.TrimSpace(doc.Content)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.ID, err)
	}
	return def, nil
}

func trimExtension(id string) string {
	id = filepath.ToSlash(id)
	if ext := filepath.Ext(id); ext != "" {
		return strings.TrimSuffix(id, ext)
	}
	return id
}
