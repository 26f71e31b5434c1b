package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte{}, 0o600))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "tasks.json"))
	touch(t, filepath.Join(root, "b", "groups.YAML"))
	touch(t, filepath.Join(root, "a", "resource.yml"))
	touch(t, filepath.Join(root, "notes.txt"))

	files, err := FindFilesByExtension(root, ".json", ".yaml", ".yml")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "resource.yml"),
		filepath.Join(root, "b", "groups.YAML"),
		filepath.Join(root, "tasks.json"),
	}, files)
}

func TestFindFilesByExtension_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.hcl")
	touch(t, path)

	files, err := FindFilesByExtension(path, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "missing"), ".json")
	assert.Error(t, err)
}

func TestFindFilesByExtension_PanicsWithoutExtension(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = FindFilesByExtension(t.TempDir())
	})
}
