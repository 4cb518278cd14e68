package problemlist

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acmcompass/internal/keys"
	"acmcompass/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(nil, keys.DefaultKeyMap(), 80, 24)
}

// loadSample injects three problems directly, bypassing the store: one
// solved, two unsolved, with distinct sources, assignees, and tags.
func loadSample(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = m.Update(ProblemsLoadedMsg{Problems: []model.Problem{
		{ID: "1", Title: "Two Sum", Source: "LeetCode", Solved: true, Tags: []string{"hash"}},
		{ID: "2", Title: "Dijkstra Practice", Source: "Codeforces", Assignee: "alice", Tags: []string{"graphs"}},
		{ID: "3", Title: "Round 2 B", Source: "AtCoder", Tags: []string{"dp"}},
	}})
	return m
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFilterCycling(t *testing.T) {
	m := loadSample(t, newTestModel(t))
	require.Len(t, m.list.Items(), 3)
	assert.Equal(t, "all", m.FilterMode())

	m, _ = m.Update(keyMsg("f"))
	assert.Equal(t, "unsolved", m.FilterMode())
	assert.Len(t, m.list.Items(), 2)

	m, _ = m.Update(keyMsg("f"))
	assert.Equal(t, "solved", m.FilterMode())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Two Sum", m.list.Items()[0].(ProblemItem).Problem.Title)

	m, _ = m.Update(keyMsg("f"))
	assert.Equal(t, "all", m.FilterMode())
	assert.Len(t, m.list.Items(), 3)
}

func TestMatches(t *testing.T) {
	p := model.Problem{
		Title:    "Segment Tree Beats",
		Source:   "Codeforces",
		Assignee: "alice",
		Tags:     []string{"data-structures"},
	}

	assert.True(t, matches(p, "beats"), "title, case-insensitive")
	assert.True(t, matches(p, "codef"), "source substring")
	assert.True(t, matches(p, "ALICE"), "assignee, case-insensitive")
	assert.True(t, matches(p, "structures"), "tag substring")
	assert.False(t, matches(p, "geometry"))
}

func TestSearchFlow(t *testing.T) {
	m := loadSample(t, newTestModel(t))
	require.False(t, m.Searching())

	m, _ = m.Update(keyMsg("/"))
	require.True(t, m.Searching())

	// While searching, action keys are query text, not commands: "d" must
	// land in the input instead of requesting a delete.
	m, cmd := m.Update(keyMsg("d"))
	if cmd != nil {
		_, isDelete := cmd().(DeleteProblemMsg)
		assert.False(t, isDelete, "delete must not fire from inside the search input")
	}
	assert.Equal(t, "d", m.searchInput.Value())

	m, _ = m.Update(keyMsg("ijkstra"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Searching())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Dijkstra Practice", m.list.Items()[0].(ProblemItem).Problem.Title)

	// Esc leaves search mode and clears the query.
	m, _ = m.Update(keyMsg("/"))
	require.True(t, m.Searching())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Searching())
	assert.Len(t, m.list.Items(), 3)
}

func TestSearchCombinesWithFilter(t *testing.T) {
	m := loadSample(t, newTestModel(t))

	// Unsolved only, then search within that subset.
	m, _ = m.Update(keyMsg("f"))
	m, _ = m.Update(keyMsg("/"))
	m, _ = m.Update(keyMsg("round 2"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "Round 2 B", m.list.Items()[0].(ProblemItem).Problem.Title)
}
