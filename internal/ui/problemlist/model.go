package problemlist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/keys"
	"acmcompass/internal/model"
	"acmcompass/internal/store"
	"acmcompass/internal/theme"
)

// ProblemsLoadedMsg is sent when problems have been loaded from the store.
type ProblemsLoadedMsg struct {
	Problems []model.Problem
	Err      error
}

// SelectedProblemMsg is sent when the user picks a problem to edit.
type SelectedProblemMsg struct {
	Problem model.Problem
}

// OpenSolutionMsg is sent when the user opens a problem's solution.
type OpenSolutionMsg struct {
	Problem model.Problem
}

// DeleteProblemMsg asks the app to delete the problem.
type DeleteProblemMsg struct {
	ProblemID string
}

// filterModes are cycled with the filter key, mirroring the all /
// unsolved / solved tabs of the web UI this replaced.
var filterModes = []string{"all", "unsolved", "solved"}

// Model is the problem list view component.
type Model struct {
	list        list.Model
	store       *store.ProblemStore
	keys        *keys.KeyMap
	problems    []model.Problem
	filterIndex int
	query       string
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new problem list model.
func New(s *store.ProblemStore, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Problems"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search title, source, tags..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		store:       s,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the problems.
func (m Model) Init() tea.Cmd {
	return m.LoadProblems()
}

// FilterMode returns the active filter mode name.
func (m Model) FilterMode() string {
	return filterModes[m.filterIndex]
}

// Searching reports whether the search input is focused and capturing
// keystrokes. The root model must not treat keys as global shortcuts
// while this is true.
func (m Model) Searching() bool {
	return m.searchMode
}

// Update handles messages for the problem list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProblemsLoadedMsg:
		m.problems = msg.Problems
		return m, m.applyFilter()

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.applyFilter()
	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.applyFilter()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Edit):
		item, ok := m.list.SelectedItem().(ProblemItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return SelectedProblemMsg{Problem: item.Problem} }

	case key.Matches(msg, m.keys.Solution):
		item, ok := m.list.SelectedItem().(ProblemItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return OpenSolutionMsg{Problem: item.Problem} }

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(ProblemItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return DeleteProblemMsg{ProblemID: item.Problem.ID} }

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(filterModes)
		return m, m.applyFilter()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.LoadProblems()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// applyFilter rebuilds the visible items from the loaded problems, the
// filter mode, and the search query.
func (m *Model) applyFilter() tea.Cmd {
	mode := m.FilterMode()
	items := make([]list.Item, 0, len(m.problems))
	for _, p := range m.problems {
		if mode == "unsolved" && p.Solved {
			continue
		}
		if mode == "solved" && !p.Solved {
			continue
		}
		if m.query != "" && !matches(p, m.query) {
			continue
		}
		items = append(items, ProblemItem{Problem: p})
	}

	m.list.Title = "Problems — " + mode
	return m.list.SetItems(items)
}

// matches reports whether the query appears in the problem's title,
// source, assignee, or tags.
func matches(p model.Problem, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Source), q) ||
		strings.Contains(strings.ToLower(p.Assignee), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// View renders the problem list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query != "" || m.FilterMode() != "all" {
		return style.Render("No matching problems.\nPress f to cycle filters or / to search.")
	}
	return style.Render("No problems yet.\n\nPress n to add the first one.")
}

// LoadProblems returns a command that reads all problems from the store.
func (m Model) LoadProblems() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		problems, err := s.Load()
		return ProblemsLoadedMsg{Problems: problems, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
