package contestform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/model"
	"acmcompass/internal/store"
	"acmcompass/internal/theme"
)

// SubmitMsg is dispatched when the form is submitted. EditID is empty for
// a create.
type SubmitMsg struct {
	EditID string
	Input  model.ContestInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// The form runs in two phases: contest metadata first, then one group per
// problem letter once total_problems is known.
type phase int

const (
	phaseMeta phase = iota
	phaseProblems
)

// metaBindings holds the metadata field values on the heap.
type metaBindings struct {
	name    string
	total   string
	rank    string
	summary string
}

// slotBindings holds one problem row's field values on the heap.
type slotBindings struct {
	pass    string
	attempt string
	status  string
}

// Model is the Bubble Tea model for the contest create/edit form.
type Model struct {
	form     *huh.Form
	phase    phase
	mb       *metaBindings
	slots    []*slotBindings
	editID   string
	imported bool
	width    int
	height   int
}

// New creates a new contest form model.
func New(width, height int) Model {
	return Model{
		mb:     &metaBindings{},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new, empty contest.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	m.imported = false
	*m.mb = metaBindings{total: "5"}
	m.slots = nil
	m.phase = phaseMeta
	m.form = m.buildMetaForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing contest's fields.
func (m *Model) StartEdit(c model.Contest) tea.Cmd {
	m.editID = c.ID
	m.imported = false
	*m.mb = metaBindings{
		name:    c.Name,
		total:   strconv.Itoa(c.TotalProblems),
		rank:    c.RankStr,
		summary: c.Summary,
	}
	m.setSlots(c.Problems)
	m.phase = phaseMeta
	m.form = m.buildMetaForm()
	return m.form.Init()
}

// StartImport initializes the form from a claimed bookmarklet import.
func (m *Model) StartImport(ci store.ContestImport) tea.Cmd {
	m.editID = ""
	m.imported = true
	*m.mb = metaBindings{
		name:  ci.Name,
		total: strconv.Itoa(ci.TotalProblems),
		rank:  ci.UserRank,
	}
	m.setSlots(ci.Problems)
	m.phase = phaseMeta
	m.form = m.buildMetaForm()
	return m.form.Init()
}

func (m *Model) setSlots(problems []model.ContestProblem) {
	m.slots = make([]*slotBindings, len(problems))
	for i, p := range problems {
		m.slots[i] = &slotBindings{
			pass:    strconv.Itoa(p.PassCount),
			attempt: strconv.Itoa(p.AttemptCount),
			status:  p.MyStatus,
		}
	}
}

// Update handles messages for the contest form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.phase == phaseMeta {
			return m, m.startProblemsPhase()
		}
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// startProblemsPhase reconciles the slot bindings to the entered total and
// opens the per-problem form.
func (m *Model) startProblemsPhase() tea.Cmd {
	total := parseTotal(m.mb.total)

	slots := make([]*slotBindings, total)
	for i := range slots {
		if i < len(m.slots) && m.slots[i] != nil {
			slots[i] = m.slots[i]
			continue
		}
		slots[i] = &slotBindings{pass: "0", attempt: "0", status: model.StatusUnsubmitted}
	}
	m.slots = slots

	m.phase = phaseProblems
	m.form = m.buildProblemsForm()
	return m.form.Init()
}

// View renders the contest form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Contest"
	if m.editID != "" {
		titleText = "Edit Contest"
	} else if m.imported {
		titleText = "Imported Contest — review and save"
	}
	if m.phase == phaseProblems {
		titleText += " · per-problem results"
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

func (m *Model) buildMetaForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Contest name").
				Placeholder("e.g. The 3rd Universal Cup. Stage 12").
				Value(&m.mb.name).
				Validate(validateRequired("Contest name")),
			huh.NewInput().
				Title("Problem count").
				Description(fmt.Sprintf("1–%d, one letter per problem", model.MaxContestProblems)).
				Value(&m.mb.total).
				Validate(validateTotal),
			huh.NewInput().
				Title("Rank").
				Placeholder("e.g. 10/150 (optional)").
				Value(&m.mb.rank),
			huh.NewText().
				Title("Summary").
				Placeholder("Post-contest notes (optional)").
				Value(&m.mb.summary),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildProblemsForm() *huh.Form {
	statusOpts := []huh.Option[string]{
		huh.NewOption("AC", model.StatusAC),
		huh.NewOption("Attempted", model.StatusAttempted),
		huh.NewOption("Unsubmitted", model.StatusUnsubmitted),
	}

	groups := make([]*huh.Group, len(m.slots))
	for i, slot := range m.slots {
		groups[i] = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Our result").
				Options(statusOpts...).
				Value(&slot.status),
			huh.NewInput().
				Title("Teams passed").
				Value(&slot.pass).
				Validate(validateCount),
			huh.NewInput().
				Title("Teams attempted").
				Value(&slot.attempt).
				Validate(validateCount),
		).Title("Problem " + model.Letter(i))
	}

	return huh.NewForm(groups...).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	in := model.ContestInput{
		Name:          m.mb.name,
		TotalProblems: parseTotal(m.mb.total),
		RankStr:       m.mb.rank,
		Summary:       m.mb.summary,
	}

	for i, slot := range m.slots {
		cp := model.DefaultContestProblem(i)
		if n, err := strconv.Atoi(strings.TrimSpace(slot.pass)); err == nil && n >= 0 {
			cp.PassCount = n
		}
		if n, err := strconv.Atoi(strings.TrimSpace(slot.attempt)); err == nil && n >= 0 {
			cp.AttemptCount = n
		}
		if model.ValidStatus(slot.status) {
			cp.MyStatus = slot.status
		}
		in.Problems = append(in.Problems, cp)
	}

	editID := m.editID
	return func() tea.Msg { return SubmitMsg{EditID: editID, Input: in} }
}

// parseTotal clamps the entered problem count to the valid range.
func parseTotal(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	if n > model.MaxContestProblems {
		return model.MaxContestProblems
	}
	return n
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

func validateTotal(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > model.MaxContestProblems {
		return fmt.Errorf("must be between 1 and %d", model.MaxContestProblems)
	}
	return nil
}

func validateCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}
	return nil
}
