package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"acmcompass/internal/model"
)

func newTestProblemStore(t *testing.T) (*ProblemStore, string) {
	t.Helper()
	dir := t.TempDir()
	solutions := NewSolutionStore(filepath.Join(dir, "solutions"))
	s := NewProblemStore(filepath.Join(dir, "problems.json"), solutions, zap.NewNop())
	return s, dir
}

func TestProblemStoreLoad(t *testing.T) {
	t.Run("missing file initializes empty collection", func(t *testing.T) {
		s, dir := newTestProblemStore(t)

		items, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, items)

		data, err := os.ReadFile(filepath.Join(dir, "problems.json"))
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))
	})

	t.Run("corrupt file is backed up and reset", func(t *testing.T) {
		s, dir := newTestProblemStore(t)
		path := filepath.Join(dir, "problems.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		items, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, items)

		backup, err := os.ReadFile(filepath.Join(dir, "problems.backup.json"))
		require.NoError(t, err)
		assert.Equal(t, "{not json", string(backup))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(data))
	})

	t.Run("legacy inline solution migrates to blob store", func(t *testing.T) {
		s, dir := newTestProblemStore(t)
		path := filepath.Join(dir, "problems.json")
		raw := `[{"id": "p1", "title": "Two Sum", "solution_markdown": "# Idea\nhash map"}]`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		items, err := s.Load()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].HasSolution)

		content, err := os.ReadFile(filepath.Join(dir, "solutions", "p1.md"))
		require.NoError(t, err)
		assert.Equal(t, "# Idea\nhash map", string(content))

		// The rewritten file no longer carries the inline field.
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var records []map[string]any
		require.NoError(t, json.Unmarshal(data, &records))
		require.Len(t, records, 1)
		assert.NotContains(t, records[0], "solution_markdown")
		assert.NotContains(t, records[0], "has_solution")
	})

	t.Run("save then load round-trips every persisted field", func(t *testing.T) {
		s, _ := newTestProblemStore(t)

		pass := 42
		items := []model.Problem{{
			ID:                  "p1",
			Title:               "Aho-Corasick practice",
			Link:                "https://example.com/p/1",
			Source:              "Codeforces",
			Tags:                []string{"strings", "automata"},
			Assignee:            "alice",
			Solved:              false,
			UnsolvedStage:       model.StageApproachKnown,
			UnsolvedCustomLabel: "",
			PassCount:           &pass,
			Notes:               "failed on test 7",
			CreatedAt:           time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:           time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC),
			HasSolution:         true, // derived, must not survive the write
		}}
		require.NoError(t, s.Save(items))

		loaded, err := s.Load()
		require.NoError(t, err)
		require.Len(t, loaded, 1)

		want := items[0]
		want.HasSolution = false // no blob exists, so the flag recomputes to false
		assert.Equal(t, want, loaded[0])
	})

	t.Run("stale persisted has_solution is dropped", func(t *testing.T) {
		s, dir := newTestProblemStore(t)
		path := filepath.Join(dir, "problems.json")
		raw := `[{"id": "p1", "title": "Two Sum", "has_solution": true}]`
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

		items, err := s.Load()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.False(t, items[0].HasSolution, "no blob exists, flag must be recomputed")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "has_solution")
	})
}

func TestProblemStoreCRUD(t *testing.T) {
	t.Run("create assigns id and timestamps", func(t *testing.T) {
		s, _ := newTestProblemStore(t)

		p, err := s.Create(model.ProblemInput{Title: "Two Sum", Tags: []string{"hash"}})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)

		items, err := s.Load()
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Two Sum", items[0].Title)
	})

	t.Run("update merges input and refreshes updated_at", func(t *testing.T) {
		s, _ := newTestProblemStore(t)
		p, err := s.Create(model.ProblemInput{Title: "Two Sum"})
		require.NoError(t, err)

		updated, err := s.Update(p.ID, model.ProblemInput{Title: "Three Sum", Solved: true})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Three Sum", updated.Title)
		assert.True(t, updated.Solved)
		assert.True(t, !updated.UpdatedAt.Before(p.UpdatedAt))
	})

	t.Run("update of unknown id returns nil", func(t *testing.T) {
		s, _ := newTestProblemStore(t)

		updated, err := s.Update("nope", model.ProblemInput{Title: "x"})
		require.NoError(t, err)
		assert.Nil(t, updated)
	})

	t.Run("update re-canonicalizes", func(t *testing.T) {
		s, _ := newTestProblemStore(t)
		p, err := s.Create(model.ProblemInput{Title: "Two Sum"})
		require.NoError(t, err)

		updated, err := s.Update(p.ID, model.ProblemInput{
			Title:         "Two Sum",
			Solved:        true,
			UnsolvedStage: model.StageNotViewed,
		})
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Empty(t, updated.UnsolvedStage, "solved problems carry no stage")
	})

	t.Run("delete cascades to solution blob", func(t *testing.T) {
		s, dir := newTestProblemStore(t)
		p, err := s.Create(model.ProblemInput{Title: "Two Sum"})
		require.NoError(t, err)

		solutions := NewSolutionStore(filepath.Join(dir, "solutions"))
		require.NoError(t, solutions.Write(p.ID, "# done"))

		found, err := s.Delete(p.ID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.False(t, solutions.Exists(p.ID))

		items, err := s.Load()
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("delete of unknown id reports not found", func(t *testing.T) {
		s, _ := newTestProblemStore(t)

		found, err := s.Delete("nope")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
