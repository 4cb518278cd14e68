package contestlist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/keys"
	"acmcompass/internal/model"
	"acmcompass/internal/store"
	"acmcompass/internal/theme"
)

// ContestsLoadedMsg is sent when contests have been loaded from the store.
type ContestsLoadedMsg struct {
	Contests []model.Contest
	Err      error
}

// SelectedContestMsg is sent when the user picks a contest to edit.
type SelectedContestMsg struct {
	Contest model.Contest
}

// DeleteContestMsg asks the app to delete the contest.
type DeleteContestMsg struct {
	ContestID string
}

// Model is the contest list view component.
type Model struct {
	list   list.Model
	store  *store.ContestStore
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new contest list model.
func New(s *store.ContestStore, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Contests"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		store:  s,
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the contests.
func (m Model) Init() tea.Cmd {
	return m.LoadContests()
}

// Update handles messages for the contest list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ContestsLoadedMsg:
		items := make([]list.Item, len(msg.Contests))
		for i, c := range msg.Contests {
			items[i] = ContestItem{Contest: c}
		}
		return m, m.list.SetItems(items)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Select), key.Matches(msg, m.keys.Edit):
			item, ok := m.list.SelectedItem().(ContestItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SelectedContestMsg{Contest: item.Contest} }

		case key.Matches(msg, m.keys.Delete):
			item, ok := m.list.SelectedItem().(ContestItem)
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return DeleteContestMsg{ContestID: item.Contest.ID} }

		case key.Matches(msg, m.keys.Refresh):
			return m, m.LoadContests()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the contest list view.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No contests yet.\n\nPress n to record one, or import from a standings page.")
	}
	return m.list.View()
}

// LoadContests returns a command that reads all contests from the store.
func (m Model) LoadContests() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		contests, err := s.Load()
		return ContestsLoadedMsg{Contests: contests, Err: err}
	}
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// ContestItem wraps a model.Contest so it can be used in a bubbles/list.
type ContestItem struct {
	Contest model.Contest
}

// FilterValue returns the string used for fuzzy filtering.
func (i ContestItem) FilterValue() string { return i.Contest.Name }

// ItemDelegate renders contest rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single contest line: name, AC/total, rank, date.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(ContestItem)
	if !ok {
		return
	}
	c := ci.Contest

	ac := 0
	for _, p := range c.Problems {
		if p.MyStatus == model.StatusAC {
			ac++
		}
	}

	score := theme.ContestStatusStyle(model.StatusAC).
		Render(fmt.Sprintf("%d/%d", ac, c.TotalProblems))

	rank := ""
	if c.RankStr != "" {
		rank = "  " + theme.HelpStyle.Render("rank "+c.RankStr)
	}

	date := ""
	if !c.CreatedAt.IsZero() {
		date = "  " + theme.HelpStyle.Render(c.CreatedAt.Format("2006-01-02"))
	}

	line := fmt.Sprintf("%s %s%s%s", score, c.Name, rank, date)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
