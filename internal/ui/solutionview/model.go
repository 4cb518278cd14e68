package solutionview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/model"
	"acmcompass/internal/theme"
)

// SaveMsg asks the app to persist the edited solution markdown.
type SaveMsg struct {
	ProblemID string
	Markdown  string
}

// CloseMsg is dispatched when the user leaves the solution view.
type CloseMsg struct{}

// Model is the solution view: a glamour-rendered preview with an editable
// markdown source behind tab.
type Model struct {
	problem  model.Problem
	viewport viewport.Model
	editor   textarea.Model
	editing  bool
	dirty    bool
	width    int
	height   int
}

// New creates a new solution view model.
func New(width, height int) Model {
	vp := viewport.New(width-4, height-6)

	ed := textarea.New()
	ed.Placeholder = "Write the solution in markdown..."
	ed.SetWidth(width - 4)
	ed.SetHeight(height - 6)

	return Model{
		viewport: vp,
		editor:   ed,
		width:    width,
		height:   height,
	}
}

// Open loads a problem's solution into the view. Problems without a
// solution start in edit mode.
func (m *Model) Open(p model.Problem, markdown string, exists bool) tea.Cmd {
	m.problem = p
	m.dirty = false
	m.editor.SetValue(markdown)
	m.editing = !exists
	m.renderPreview()
	if m.editing {
		return m.editor.Focus()
	}
	return nil
}

// renderPreview re-renders the markdown into the viewport.
func (m *Model) renderPreview() {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.viewport.Width),
	)
	if err != nil {
		m.viewport.SetContent(m.editor.Value())
		return
	}
	out, err := renderer.Render(m.editor.Value())
	if err != nil {
		out = m.editor.Value()
	}
	m.viewport.SetContent(out)
}

// Update handles messages for the solution view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if m.editing {
				// Leave the editor, refresh the preview.
				m.editing = false
				m.editor.Blur()
				m.renderPreview()
				return m, nil
			}
			return m, func() tea.Msg { return CloseMsg{} }

		case "tab":
			if !m.editing {
				m.editing = true
				return m, m.editor.Focus()
			}

		case "ctrl+s":
			problemID := m.problem.ID
			markdown := m.editor.Value()
			m.dirty = false
			return m, func() tea.Msg { return SaveMsg{ProblemID: problemID, Markdown: markdown} }
		}
	}

	var cmd tea.Cmd
	if m.editing {
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if m.editor.Value() != before {
			m.dirty = true
		}
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

// View renders the solution view.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	mode := "preview — tab to edit, esc to close"
	if m.editing {
		mode = "editing — ctrl+s to save, esc to preview"
	}
	if m.dirty {
		mode += " (unsaved)"
	}

	header := fmt.Sprintf("%s\n%s\n",
		titleStyle.Render("Solution: "+m.problem.Title),
		theme.HelpStyle.Render(mode))

	body := m.viewport.View()
	if m.editing {
		body = m.editor.View()
	}

	return theme.PanelStyle.
		Width(m.width - 2).
		Render(header + body)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 6
	m.editor.SetWidth(width - 4)
	m.editor.SetHeight(height - 6)
}
