package problemlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/model"
	"acmcompass/internal/theme"
)

// ProblemItem wraps a model.Problem so it can be used in a bubbles/list.
type ProblemItem struct {
	Problem model.Problem
}

// FilterValue returns the string used for fuzzy filtering.
func (i ProblemItem) FilterValue() string { return i.Problem.Title }

// ItemDelegate renders problem rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a single problem line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(ProblemItem)
	if !ok {
		return
	}
	p := pi.Problem

	var prefix string
	if p.Solved {
		prefix = theme.SolvedStyle(true).Render("✓")
	} else {
		prefix = theme.SolvedStyle(false).Render("○")
	}

	stageBadge := ""
	if !p.Solved {
		label := p.UnsolvedStage
		if label == "" {
			label = p.UnsolvedCustomLabel
		}
		if label != "" {
			stageBadge = " " + theme.StageStyle(p.UnsolvedStage).Render("["+label+"]")
		}
	}

	solBadge := ""
	if p.HasSolution {
		solBadge = " " + lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render("✎")
	}

	meta := []string{}
	if p.Source != "" {
		meta = append(meta, p.Source)
	}
	if p.Assignee != "" {
		meta = append(meta, "@"+p.Assignee)
	}
	if len(p.Tags) > 0 {
		display := p.Tags
		if len(display) > 3 {
			display = append(display[:3:3], "…")
		}
		meta = append(meta, strings.Join(display, ","))
	}
	metaStr := ""
	if len(meta) > 0 {
		metaStr = "  " + theme.HelpStyle.Render(strings.Join(meta, " | "))
	}

	line := fmt.Sprintf("%s %s%s%s%s", prefix, p.Title, stageBadge, solBadge, metaStr)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
