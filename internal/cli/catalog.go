package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/automata/pkg/adapters/file"
	"github.com/aretw0/automata/pkg/adapters/loam"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/aretw0/automata/pkg/registry"
)

var errStopWalk = errors.New("stop")

// OpenRegistry loads the definitions under dir, or the builtins when dir is empty.
func OpenRegistry(ctx context.Context, dir string) (*registry.Registry, error) {
	if dir == "" {
		return registry.NewBuiltin(), nil
	}
	loader, err := NewLoader(dir)
	if err != nil {
		return nil, err
	}
	reg := registry.New(loader)
	if err := reg.Load(ctx); err != nil {
		return nil, err
	}
	return reg, nil
}

// NewLoader picks the loader for dir: Loam when it holds Markdown documents,
// plain YAML/JSON files otherwise.
func NewLoader(dir string) (ports.DefinitionLoader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("definitions directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("definitions path %s is not a directory", dir)
	}

	markdown, err := hasMarkdown(dir)
	if err != nil {
		return nil, err
	}
	if markdown {
		return loam.Open(dir)
	}
	return file.NewLoader(dir), nil
}

func hasMarkdown(dir string) (bool, error) {
	found := false
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			found = true
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return false, err
	}
	return found, nil
}
