package discovery_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dataunifier/pkg/discovery"
	pkgerrors "github.com/agentstation/dataunifier/pkg/errors"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("amount\n1\n"), 0o644))
}

func TestDiscoverLeafDirectoriesOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ignored.csv"))
	writeFile(t, filepath.Join(root, "b", "2.csv"))
	writeFile(t, filepath.Join(root, "b", "1.txt"))
	writeFile(t, filepath.Join(root, "a", "nested", "x.csv"))
	writeFile(t, filepath.Join(root, "a", "also_ignored.csv"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "c", "empty"), 0o755))

	files, err := discovery.Discover(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "nested", "x.csv"),
		filepath.Join(root, "b", "1.txt"),
		filepath.Join(root, "b", "2.csv"),
	}, files)
}

func TestDiscoverFlatRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "z.csv"))
	writeFile(t, filepath.Join(root, "a.csv"))

	files, err := discovery.Discover(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.csv"), filepath.Join(root, "z.csv")}, files)
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	files, err := discovery.Discover(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverInvalidRoot(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := discovery.Discover(context.Background(), filepath.Join(t.TempDir(), "missing"))
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("file instead of directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.csv")
		writeFile(t, path)
		err := discovery.ValidateRoot(path)
		var dnf *pkgerrors.DirectoryNotFoundError
		assert.ErrorAs(t, err, &dnf)
	})
}

func TestDiscoverCanceled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "1.csv"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := discovery.Discover(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
