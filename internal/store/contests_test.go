package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"acmcompass/internal/model"
)

func newTestContestStore(t *testing.T) (*ContestStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewContestStore(filepath.Join(dir, "contests.json"), zap.NewNop()), dir
}

func TestContestStoreLoad(t *testing.T) {
	t.Run("normalizes records on load", func(t *testing.T) {
		s, dir := newTestContestStore(t)
		raw := `[{"id": "c1", "name": "Weekly", "total_problems": 3,
			"problems": [{"my_status": "ac"}]}]`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "contests.json"), []byte(raw), 0o644))

		items, err := s.Load()
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Len(t, items[0].Problems, 3)
		assert.Equal(t, "A", items[0].Problems[0].Letter)
		assert.Equal(t, model.StatusAC, items[0].Problems[0].MyStatus)
		assert.Equal(t, model.StatusUnsubmitted, items[0].Problems[2].MyStatus)
	})

	t.Run("corrupt file is backed up and reset", func(t *testing.T) {
		s, dir := newTestContestStore(t)
		path := filepath.Join(dir, "contests.json")
		require.NoError(t, os.WriteFile(path, []byte("oops"), 0o644))

		items, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.FileExists(t, filepath.Join(dir, "contests.backup.json"))
	})
}

func TestContestStoreCRUD(t *testing.T) {
	s, _ := newTestContestStore(t)

	c, err := s.Create(model.ContestInput{
		Name:          "Regional",
		TotalProblems: 4,
		RankStr:       "12/300",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Len(t, c.Problems, 4, "canonicalization fills the slots")

	updated, err := s.Update(c.ID, model.ContestInput{
		Name:          "Regional Final",
		TotalProblems: 2,
		Problems:      c.Problems[:4],
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Regional Final", updated.Name)
	assert.Len(t, updated.Problems, 2, "shrinking total trims the slots")

	missing, err := s.Update("nope", model.ContestInput{Name: "x", TotalProblems: 1})
	require.NoError(t, err)
	assert.Nil(t, missing)

	found, err := s.Delete(c.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Delete(c.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
