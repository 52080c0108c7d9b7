package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// WriteDefinitions creates a temporary directory holding the given files,
// keyed by slash separated relative path, and returns its absolute path.
// It fails the test immediately on error.
func WriteDefinitions(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		path := filepath.Join(absPath, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	}
	return absPath
}

// SetupDefinitionRepo writes the files like WriteDefinitions and initializes a
// strict, read-only Loam repository over them.
func SetupDefinitionRepo(t *testing.T, files map[string]string) (string, core.Repository) {
	t.Helper()

	dir := WriteDefinitions(t, files)
	repo, err := loam.Init(dir, loam.WithStrict(true), loam.WithReadOnly(true))
	require.NoError(t, err, "Failed to init loam repo")

	return dir, repo
}
