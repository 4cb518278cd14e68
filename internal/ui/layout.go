package ui

import (
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/theme"
)

// Layout carries the terminal dimensions and slices them into the header
// row, the content area, and the status bar.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the width available to the active view.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available to the active view: the full
// terminal minus one header row and one status bar row.
func (l Layout) ContentHeight() int {
	h := l.Height - 2
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top bar: the app title on the left and an
// optional status note (pending import, git activity) on the right.
func (l Layout) RenderHeader(title, status string) string {
	return fillBar(theme.HeaderStyle, l.Width, title, status)
}

// RenderStatusBar renders the bottom bar with keyboard hints or the last
// action result.
func (l Layout) RenderStatusBar(hints string) string {
	return fillBar(theme.StatusBarStyle, l.Width, hints, "")
}

// RenderWithFrame stacks the header, content, and status bar into the full
// terminal view.
func (l Layout) RenderWithFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// fillBar renders a full-width bar with left and right segments and the
// bar's background color filling the gap between them.
func fillBar(style lipgloss.Style, width int, left, right string) string {
	l := style.Render(left)
	r := style.Render(right)

	gap := width - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 0 {
		gap = 0
	}
	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, l, filler, r)
}
