package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/schema"
)

// Extensions recognized as definition documents.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader implements ports.DefinitionLoader over a single definition file or a
// directory of them. A definition is named after its file; a document that
// declares a different name is rejected so lookups stay unambiguous.
type Loader struct {
	root  string
	files map[string]string
}

// NewLoader creates a loader for path, which may be a file or a directory.
func NewLoader(path string) *Loader {
	return &Loader{root: path}
}

func isDefinition(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (l *Loader) scan() (map[string]string, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to open definitions: %w", err)
	}

	files := make(map[string]string)
	if !info.IsDir() {
		files[stem(l.root)] = l.root
		return files, nil
	}

	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isDefinition(entry.Name()) {
			continue
		}
		name := stem(entry.Name())
		if prev, ok := files[name]; ok {
			return nil, fmt.Errorf("definition %s is defined twice (%s, %s)", name, filepath.Base(prev), entry.Name())
		}
		files[name] = filepath.Join(l.root, entry.Name())
	}
	return files, nil
}

// List returns the definition names found under the root, sorted.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	files, err := l.scan()
	if err != nil {
		return nil, err
	}
	l.files = files

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Get parses and validates the named definition.
func (l *Loader) Get(ctx context.Context, name string) (*schema.Definition, error) {
	if l.files == nil {
		if _, err := l.List(ctx); err != nil {
			return nil, err
		}
	}
	path, ok := l.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}

	def, err := schema.LoadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
		}
		return nil, err
	}
	if def.Name != name {
		return nil, fmt.Errorf("%s: document is named %q, expected %q", filepath.Base(path), def.Name, name)
	}
	return def, nil
}
