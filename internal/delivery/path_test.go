// SPDX-License-Identifier: MIT

package delivery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "movies", "2024"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "movies", "2024", "film.mp4"), []byte("x"), 0o644))

	t.Run("valid relative path", func(t *testing.T) {
		path, info, err := SafeResolve(root, "movies/2024/film.mp4")
		require.NoError(t, err)
		assert.Equal(t, int64(1), info.Size())
		assert.True(t, filepath.IsAbs(path))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := SafeResolve(root, "movies/2024/missing.mp4")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("directory rejected", func(t *testing.T) {
		_, _, err := SafeResolve(root, "movies/2024")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, _, err := SafeResolve(root, "")
		assert.True(t, os.IsNotExist(err))
	})

	traversals := []string{
		"../etc/passwd",
		"movies/../../etc/passwd",
		"%2e%2e/etc/passwd",
		"%252e%252e/etc/passwd",
		"movies/%00/film.mp4",
	}
	for _, p := range traversals {
		t.Run("traversal "+p, func(t *testing.T) {
			_, _, err := SafeResolve(root, p)
			assert.ErrorIs(t, err, ErrPathEscape)
		})
	}

	t.Run("symlink escape rejected", func(t *testing.T) {
		outside := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(outside, "secret"), []byte("s"), 0o644))
		require.NoError(t, os.Symlink(filepath.Join(outside, "secret"), filepath.Join(root, "movies", "link.mp4")))

		_, _, err := SafeResolve(root, "movies/link.mp4")
		assert.ErrorIs(t, err, ErrPathEscape)
	})
}
