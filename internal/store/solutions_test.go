package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionStore(t *testing.T) {
	s := NewSolutionStore(filepath.Join(t.TempDir(), "solutions"))

	t.Run("read of absent solution reports not found", func(t *testing.T) {
		content, exists, err := s.Read("p1")
		require.NoError(t, err)
		assert.False(t, exists)
		assert.Empty(t, content)
		assert.False(t, s.Exists("p1"))
	})

	t.Run("write then read round-trips", func(t *testing.T) {
		require.NoError(t, s.Write("p1", "# Approach\nbinary search"))

		content, exists, err := s.Read("p1")
		require.NoError(t, err)
		assert.True(t, exists)
		assert.Equal(t, "# Approach\nbinary search", content)
		assert.True(t, s.Exists("p1"))
	})

	t.Run("delete removes the file", func(t *testing.T) {
		require.NoError(t, s.Write("p2", "x"))
		require.NoError(t, s.Delete("p2"))
		assert.False(t, s.Exists("p2"))
	})

	t.Run("delete of absent solution is a no-op", func(t *testing.T) {
		require.NoError(t, s.Delete("never-existed"))
	})
}
