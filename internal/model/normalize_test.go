package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProblem(t *testing.T) {
	t.Run("legacy status done means solved", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"id":     "p1",
			"title":  "Two Sum",
			"status": "done",
		})
		assert.True(t, p.Solved)
	})

	t.Run("explicit solved wins over legacy status", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"id":     "p1",
			"title":  "Two Sum",
			"solved": false,
			"status": "done",
		})
		assert.False(t, p.Solved)
	})

	t.Run("legacy owner becomes assignee", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title": "Two Sum",
			"owner": "alice",
		})
		assert.Equal(t, "alice", p.Assignee)

		p = NormalizeProblem(map[string]any{
			"title":    "Two Sum",
			"owner":    "alice",
			"assignee": "bob",
		})
		assert.Equal(t, "bob", p.Assignee)
	})

	t.Run("unknown stage resets to empty", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":          "Two Sum",
			"unsolved_stage": "bogus-stage",
		})
		assert.Empty(t, p.UnsolvedStage)
	})

	t.Run("valid stage survives", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":          "Two Sum",
			"unsolved_stage": StageViewedNoIdea,
		})
		assert.Equal(t, StageViewedNoIdea, p.UnsolvedStage)
	})

	t.Run("solved clears unsolved bookkeeping", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":                 "Two Sum",
			"solved":                true,
			"unsolved_stage":        StageNotViewed,
			"unsolved_custom_label": "revisit",
		})
		assert.True(t, p.Solved)
		assert.Empty(t, p.UnsolvedStage)
		assert.Empty(t, p.UnsolvedCustomLabel)
	})

	t.Run("missing tags become empty slice", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{"title": "Two Sum"})
		require.NotNil(t, p.Tags)
		assert.Empty(t, p.Tags)
	})

	t.Run("tags keep only string elements", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title": "Two Sum",
			"tags":  []any{"dp", 42.0, "graphs", nil},
		})
		assert.Equal(t, []string{"dp", "graphs"}, p.Tags)
	})

	t.Run("negative pass count drops", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":      "Two Sum",
			"pass_count": -3.0,
		})
		assert.Nil(t, p.PassCount)
	})

	t.Run("numeric string pass count coerces", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":      "Two Sum",
			"pass_count": "7",
		})
		require.NotNil(t, p.PassCount)
		assert.Equal(t, 7, *p.PassCount)
	})

	t.Run("text fields trim", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":  "  Two Sum  ",
			"link":   " https://example.com/p/1 ",
			"source": " Codeforces ",
			"notes":  "  tricky  ",
		})
		assert.Equal(t, "Two Sum", p.Title)
		assert.Equal(t, "https://example.com/p/1", p.Link)
		assert.Equal(t, "Codeforces", p.Source)
		assert.Equal(t, "tricky", p.Notes)
	})

	t.Run("timestamps parse to UTC", func(t *testing.T) {
		p := NormalizeProblem(map[string]any{
			"title":      "Two Sum",
			"created_at": "2025-06-01T10:00:00+08:00",
			"updated_at": "not a time",
		})
		assert.Equal(t, time.Date(2025, 6, 1, 2, 0, 0, 0, time.UTC), p.CreatedAt)
		assert.True(t, p.UpdatedAt.IsZero())
	})
}

// Normalization is the migration path: running it over its own output must
// change nothing, or every load would rewrite the data files.
func TestNormalizeProblemIdempotent(t *testing.T) {
	raws := []map[string]any{
		{"id": "a", "title": "Old record", "status": "done", "owner": "alice",
			"pass_count": 3.0, "tags": []any{"dp"}},
		{"id": "b", "title": " Messy ", "unsolved_stage": "???",
			"unsolved_custom_label": " soon "},
		{"id": "c", "title": "Fresh", "solved": false,
			"unsolved_stage": StageApproachKnown,
			"created_at":     "2025-01-02T03:04:05Z"},
	}

	for _, raw := range raws {
		first := NormalizeProblem(raw)

		data, err := json.Marshal(first)
		require.NoError(t, err)
		var roundTripped map[string]any
		require.NoError(t, json.Unmarshal(data, &roundTripped))

		second := NormalizeProblem(roundTripped)
		assert.Equal(t, first, second, "record %q", raw["id"])
	}
}

func TestNormalizeContest(t *testing.T) {
	t.Run("total clamps to letter range", func(t *testing.T) {
		c := NormalizeContest(map[string]any{"name": "Weekly", "total_problems": 0.0})
		assert.Equal(t, 1, c.TotalProblems)

		c = NormalizeContest(map[string]any{"name": "Weekly", "total_problems": 99.0})
		assert.Equal(t, MaxContestProblems, c.TotalProblems)
		assert.Len(t, c.Problems, MaxContestProblems)
	})

	t.Run("short problem list pads with defaults", func(t *testing.T) {
		c := NormalizeContest(map[string]any{
			"name":           "Regional",
			"total_problems": 5.0,
			"problems": []any{
				map[string]any{"my_status": "ac", "pass_count": 120.0, "attempt_count": 200.0},
				map[string]any{"my_status": "attempted"},
			},
		})

		require.Len(t, c.Problems, 5)
		assert.Equal(t, "A", c.Problems[0].Letter)
		assert.Equal(t, StatusAC, c.Problems[0].MyStatus)
		assert.Equal(t, 120, c.Problems[0].PassCount)
		assert.Equal(t, StatusAttempted, c.Problems[1].MyStatus)
		for i := 2; i < 5; i++ {
			assert.Equal(t, Letter(i), c.Problems[i].Letter)
			assert.Equal(t, StatusUnsubmitted, c.Problems[i].MyStatus)
		}
	})

	t.Run("long problem list truncates to total", func(t *testing.T) {
		c := NormalizeContest(map[string]any{
			"name":           "Sprint",
			"total_problems": 2.0,
			"problems": []any{
				map[string]any{"my_status": "ac"},
				map[string]any{"my_status": "ac"},
				map[string]any{"my_status": "ac"},
			},
		})
		assert.Len(t, c.Problems, 2)
	})

	t.Run("invalid status defaults to unsubmitted", func(t *testing.T) {
		c := NormalizeContest(map[string]any{
			"name":           "Weekly",
			"total_problems": 1.0,
			"problems":       []any{map[string]any{"my_status": "won"}},
		})
		assert.Equal(t, StatusUnsubmitted, c.Problems[0].MyStatus)
	})

	t.Run("letters are positional regardless of stored letters", func(t *testing.T) {
		c := NormalizeContest(map[string]any{
			"name":           "Weekly",
			"total_problems": 3.0,
			"problems": []any{
				map[string]any{"letter": "Z", "my_status": "ac"},
				map[string]any{"letter": "Q"},
			},
		})
		assert.Equal(t, []string{"A", "B", "C"}, []string{
			c.Problems[0].Letter, c.Problems[1].Letter, c.Problems[2].Letter,
		})
	})
}

func TestNormalizeContestIdempotent(t *testing.T) {
	raw := map[string]any{
		"id":             "c1",
		"name":           " ICPC Practice ",
		"total_problems": 4.0,
		"rank_str":       "12/300",
		"problems": []any{
			map[string]any{"my_status": "ac", "pass_count": 50.0},
			map[string]any{"my_status": "nonsense"},
		},
	}

	first := NormalizeContest(raw)

	data, err := json.Marshal(first)
	require.NoError(t, err)
	var roundTripped map[string]any
	require.NoError(t, json.Unmarshal(data, &roundTripped))

	assert.Equal(t, first, NormalizeContest(roundTripped))
}
