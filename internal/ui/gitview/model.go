package gitview

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"acmcompass/internal/gitsync"
	"acmcompass/internal/theme"
)

// ResultMsg carries the outcome of a finished git operation.
type ResultMsg struct {
	Op     string
	Result gitsync.Result
}

// CloseMsg is dispatched when the user leaves the git view.
type CloseMsg struct{}

// formBindings holds the push/clone form values on the heap.
type formBindings struct {
	message string
	remote  string
	branch  string
}

// Model is the git sync view: status/pull/push/clone actions over the
// data directory with the raw command transcript in a viewport.
type Model struct {
	reconciler *gitsync.Reconciler
	remote     string
	branch     string

	viewport viewport.Model
	form     *huh.Form
	fb       *formBindings
	formOp   string // "push" or "clone" while a form is open
	running  string // operation in flight, for the header
	width    int
	height   int
}

// New creates a new git sync view. remote and branch come from the app
// config and seed the clone form; the cached gitsync config overrides
// them once a clone succeeded.
func New(r *gitsync.Reconciler, remote, branch string, width, height int) Model {
	if cfg := r.Config(); cfg.Cloned {
		if cfg.RepoURL != "" {
			remote = cfg.RepoURL
		}
		if cfg.Branch != "" {
			branch = cfg.Branch
		}
	}

	vp := viewport.New(width-4, height-8)
	vp.SetContent("Press s for status, p to pull, P to push, c to clone.")

	return Model{
		reconciler: r,
		remote:     remote,
		branch:     branch,
		viewport:   vp,
		fb:         &formBindings{},
		width:      width,
		height:     height,
	}
}

// Open kicks off the initial status load and returns the updated model,
// so the in-flight guard covers the load like any other operation.
func (m Model) Open() (Model, tea.Cmd) {
	cmd := m.run("status")
	return m, cmd
}

// Busy reports whether a git operation is in flight.
func (m Model) Busy() bool {
	return m.running != ""
}

// Update handles messages for the git view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case ResultMsg:
		m.running = ""
		banner := "✓ " + msg.Op + " succeeded"
		if !msg.Result.OK {
			banner = "✗ " + msg.Op + " failed"
		}
		m.viewport.SetContent(msg.Result.Output + "\n\n" + banner)
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if m.running != "" {
			return m, nil // one git operation at a time
		}
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CloseMsg{} }
		case "s":
			cmd := m.run("status")
			return m, cmd
		case "p":
			cmd := m.run("pull")
			return m, cmd
		case "P":
			m.formOp = "push"
			m.fb.message = ""
			m.form = m.buildPushForm()
			return m, m.form.Init()
		case "c":
			m.formOp = "clone"
			m.fb.remote = m.remote
			m.fb.branch = m.branch
			m.form = m.buildCloneForm()
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		op := m.formOp
		m.form = nil
		m.formOp = ""
		if op == "clone" {
			m.remote = strings.TrimSpace(m.fb.remote)
			m.branch = strings.TrimSpace(m.fb.branch)
		}
		cmd := m.run(op)
		return m, cmd
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		m.formOp = ""
		return m, nil
	}

	return m, cmd
}

// run launches a git operation as a command. Git blocks the interaction
// for its full duration; the header shows what is in flight.
func (m *Model) run(op string) tea.Cmd {
	m.running = op
	r := m.reconciler
	remote, branch, message := m.remote, m.branch, m.fb.message
	return func() tea.Msg {
		ctx := context.Background()
		var res gitsync.Result
		switch op {
		case "status":
			res = r.Status(ctx)
		case "pull":
			res = r.Pull(ctx, remote, branch)
		case "push":
			res = r.Push(ctx, remote, message, branch)
		case "clone":
			res = r.Clone(ctx, remote, branch)
		}
		return ResultMsg{Op: op, Result: res}
	}
}

func (m *Model) buildPushForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Commit message").
			Placeholder("blank for a timestamped message").
			Value(&m.fb.message),
	)).WithWidth(m.width - 8)
}

func (m *Model) buildCloneForm() *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Remote URL").
			Placeholder("git@github.com:team/acm-data.git").
			Value(&m.fb.remote).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errRemoteRequired
				}
				return nil
			}),
		huh.NewInput().
			Title("Branch").
			Value(&m.fb.branch),
	)).WithWidth(m.width - 8)
}

// View renders the git view.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	target := m.remote
	if target == "" {
		target = "(no remote configured)"
	}
	header := titleStyle.Render("Git Sync") + "  " +
		theme.HelpStyle.Render(target+" · "+m.branch)

	if m.running != "" {
		header += "  " + theme.HelpStyle.Render("running "+m.running+"...")
	}

	if m.form != nil {
		return theme.PanelStyle.
			Width(m.width - 2).
			Render(header + "\n\n" + m.form.View())
	}

	hints := theme.HelpStyle.Render("s status · p pull · P push · c clone · esc back")

	return theme.PanelStyle.
		Width(m.width - 2).
		Render(header + "\n\n" + m.viewport.View() + "\n" + hints)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 8
}
