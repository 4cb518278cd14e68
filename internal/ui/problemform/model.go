package problemform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/model"
	"acmcompass/internal/theme"
)

// SubmitMsg is dispatched when the form is submitted. EditID is empty for
// a create.
type SubmitMsg struct {
	EditID string
	Input  model.ProblemInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	link        string
	source      string
	tags        string
	assignee    string
	solved      bool
	stage       string
	customLabel string
	passCount   string
	notes       string
}

// Model is the Bubble Tea model for the problem create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID string
	width  int
	height int
}

// New creates a new problem form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new problem.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing problem's fields.
func (m *Model) StartEdit(p model.Problem) tea.Cmd {
	m.editID = p.ID
	*m.fb = formBindings{
		title:       p.Title,
		link:        p.Link,
		source:      p.Source,
		tags:        strings.Join(p.Tags, ", "),
		assignee:    p.Assignee,
		solved:      p.Solved,
		stage:       p.UnsolvedStage,
		customLabel: p.UnsolvedCustomLabel,
		notes:       p.Notes,
	}
	if p.PassCount != nil {
		m.fb.passCount = strconv.Itoa(*p.PassCount)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the problem form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the problem form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Problem"
	if m.editID != "" {
		titleText = "Edit Problem"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	stageOpts := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, s := range model.UnsolvedStages {
		stageOpts = append(stageOpts, huh.NewOption(s, s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Problem title").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewInput().
				Title("Link").
				Placeholder("https:// (optional)").
				Value(&m.fb.link),
			huh.NewInput().
				Title("Source").
				Placeholder("Codeforces / AtCoder / Luogu ... (optional)").
				Value(&m.fb.source),
			huh.NewInput().
				Title("Tags").
				Placeholder("dp, graphs, ... (comma separated)").
				Value(&m.fb.tags),
			huh.NewInput().
				Title("Assignee").
				Placeholder("who is on it (optional)").
				Value(&m.fb.assignee),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Solved?").
				Affirmative("Solved").
				Negative("Not yet").
				Value(&m.fb.solved),
			huh.NewSelect[string]().
				Title("Unsolved stage").
				Description("Ignored when solved").
				Options(stageOpts...).
				Value(&m.fb.stage),
			huh.NewInput().
				Title("Custom label").
				Placeholder("free-form unsolved label (optional)").
				Value(&m.fb.customLabel),
			huh.NewInput().
				Title("Pass count").
				Placeholder("how many passed in contest (optional)").
				Value(&m.fb.passCount).
				Validate(validateOptionalInt),
			huh.NewText().
				Title("Notes").
				Placeholder("Optional notes...").
				Value(&m.fb.notes),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := model.ProblemInput{
		Title:               m.fb.title,
		Link:                m.fb.link,
		Source:              m.fb.source,
		Tags:                splitTags(m.fb.tags),
		Assignee:            m.fb.assignee,
		Solved:              m.fb.solved,
		UnsolvedStage:       m.fb.stage,
		UnsolvedCustomLabel: m.fb.customLabel,
		Notes:               m.fb.notes,
	}

	if s := strings.TrimSpace(m.fb.passCount); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			in.PassCount = &n
		}
	}

	editID := m.editID
	return func() tea.Msg { return SubmitMsg{EditID: editID, Input: in} }
}

// splitTags parses the comma-separated tag field.
func splitTags(s string) []string {
	out := []string{}
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
