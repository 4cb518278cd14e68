package gitview

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"acmcompass/internal/gitsync"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	r := gitsync.NewReconciler(
		filepath.Join(dir, "data"),
		filepath.Join(dir, ".git_config.json"),
		gitsync.ExecRunner{},
		zap.NewNop(),
	)
	return New(r, "git@example.com:team/data.git", "main", 80, 24)
}

func TestOpenStartsStatusLoad(t *testing.T) {
	m := newTestModel(t)
	require.False(t, m.Busy())

	m, cmd := m.Open()
	require.NotNil(t, cmd)
	assert.True(t, m.Busy())
	assert.Contains(t, m.View(), "running status")
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Open()

	// Only one git operation may run at a time; further action keys are
	// dropped until the result arrives.
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	assert.Nil(t, cmd)
	assert.True(t, m.Busy())
}

func TestResultClearsBusy(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Open()

	m, cmd := m.Update(ResultMsg{
		Op:     "status",
		Result: gitsync.Result{OK: true, Output: "state: absent"},
	})
	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.Contains(t, m.View(), "state: absent")
}
