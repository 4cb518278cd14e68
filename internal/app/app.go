package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"acmcompass/internal/config"
	"acmcompass/internal/gitsync"
	"acmcompass/internal/store"
	"acmcompass/internal/ui"
	"acmcompass/internal/ui/contestform"
	"acmcompass/internal/ui/contestlist"
	"acmcompass/internal/ui/gitview"
	"acmcompass/internal/ui/helpview"
	"acmcompass/internal/ui/problemform"
	"acmcompass/internal/ui/problemlist"
	"acmcompass/internal/ui/solutionview"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewProblems ViewState = iota
	ViewContests
	ViewGit
	ViewHelp
	ViewProblemForm
	ViewContestForm
	ViewSolution
)

// Deps bundles everything the root model needs, constructed once in main.
type Deps struct {
	Config     *config.Config
	Problems   *store.ProblemStore
	Contests   *store.ContestStore
	Solutions  *store.SolutionStore
	Pending    *store.PendingImport
	Reconciler *gitsync.Reconciler
	Log        *zap.Logger
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the stores.
type Model struct {
	deps         Deps
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *KeyMap
	ready        bool
	statusMsg    string

	problemList  problemlist.Model
	contestList  contestlist.Model
	problemForm  problemform.Model
	contestForm  contestform.Model
	solutionView solutionview.Model
	gitView      gitview.Model
	helpView     helpview.Model
}

// New creates a new root application model.
func New(deps Deps) Model {
	keys := DefaultKeyMap()

	return Model{
		deps:         deps,
		currentView:  ViewProblems,
		keys:         keys,
		problemList:  problemlist.New(deps.Problems, keys, 80, 24),
		contestList:  contestlist.New(deps.Contests, keys, 80, 24),
		problemForm:  problemform.New(80, 24),
		contestForm:  contestform.New(80, 24),
		solutionView: solutionview.New(80, 24),
		gitView:      gitview.New(deps.Reconciler, deps.Config.Git.RemoteURL, deps.Config.Git.Branch, 80, 24),
		helpView:     helpview.New(keys, 80, 24),
	}
}

// Init loads the initial problem list.
func (m Model) Init() tea.Cmd {
	return m.problemList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w := m.layout.ContentWidth()
		h := m.layout.ContentHeight()
		m.problemList.SetSize(w, h)
		m.contestList.SetSize(w, h)
		m.problemForm.SetSize(w, h)
		m.contestForm.SetSize(w, h)
		m.solutionView.SetSize(w, h)
		m.gitView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		// Forward to the active view so huh forms can lay themselves out.
		return m.updateActiveView(msg)

	// Problem list events.
	case problemlist.SelectedProblemMsg:
		m.previousView = m.currentView
		m.currentView = ViewProblemForm
		return m, m.problemForm.StartEdit(msg.Problem)

	case problemlist.OpenSolutionMsg:
		m.previousView = m.currentView
		m.currentView = ViewSolution
		return m, m.openSolution(msg.Problem)

	case problemlist.DeleteProblemMsg:
		return m, m.deleteProblem(msg.ProblemID)

	// Contest list events.
	case contestlist.SelectedContestMsg:
		m.previousView = m.currentView
		m.currentView = ViewContestForm
		return m, m.contestForm.StartEdit(msg.Contest)

	case contestlist.DeleteContestMsg:
		return m, m.deleteContest(msg.ContestID)

	// Form results.
	case problemform.SubmitMsg:
		m.currentView = ViewProblems
		return m, m.saveProblem(msg.EditID, msg.Input)

	case problemform.CancelMsg:
		m.currentView = ViewProblems
		return m, nil

	case contestform.SubmitMsg:
		m.currentView = ViewContests
		return m, m.saveContest(msg.EditID, msg.Input)

	case contestform.CancelMsg:
		m.currentView = ViewContests
		return m, nil

	// Solution view events.
	case solutionOpenedMsg:
		var cmd tea.Cmd
		if msg.err != nil {
			m.statusMsg = "reading solution failed: " + msg.err.Error()
			m.currentView = m.previousView
			return m, nil
		}
		cmd = m.solutionView.Open(msg.problem, msg.markdown, msg.exists)
		return m, cmd

	case solutionview.SaveMsg:
		return m, m.saveSolution(msg.ProblemID, msg.Markdown)

	case solutionview.CloseMsg:
		m.currentView = ViewProblems
		return m, m.problemList.LoadProblems()

	// Git view events.
	case gitview.CloseMsg:
		m.currentView = ViewProblems
		return m, nil

	case gitview.ResultMsg:
		var cmd tea.Cmd
		m.gitView, cmd = m.gitView.Update(msg)
		return m, cmd

	// Persistence results.
	case problemSavedMsg:
		m.statusMsg = resultStatus("problem saved", msg.err)
		return m, m.problemList.LoadProblems()

	case problemDeletedMsg:
		m.statusMsg = deleteStatus("problem", msg.found, msg.err)
		return m, m.problemList.LoadProblems()

	case contestSavedMsg:
		m.statusMsg = resultStatus("contest saved", msg.err)
		return m, m.contestList.LoadContests()

	case contestDeletedMsg:
		m.statusMsg = deleteStatus("contest", msg.found, msg.err)
		return m, m.contestList.LoadContests()

	case solutionSavedMsg:
		m.statusMsg = resultStatus("solution saved", msg.err)
		return m, nil

	case tea.KeyMsg:
		if mdl, cmd, handled := m.handleGlobalKey(msg); handled {
			return mdl, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKey processes keys that work across views. Form and editor
// views keep their keystrokes to themselves, as does the problem list
// while its search input is focused.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	inForm := m.currentView == ViewProblemForm ||
		m.currentView == ViewContestForm ||
		m.currentView == ViewSolution ||
		m.currentView == ViewGit ||
		(m.currentView == ViewProblems && m.problemList.Searching())

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "q":
		if !inForm {
			return m, tea.Quit, true
		}

	case "esc":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}

	case "?":
		if inForm {
			break
		}
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case "1":
		if !inForm && m.currentView != ViewProblems {
			m.currentView = ViewProblems
			return m, m.problemList.LoadProblems(), true
		}

	case "2":
		if !inForm && m.currentView != ViewContests {
			m.currentView = ViewContests
			return m, m.contestList.LoadContests(), true
		}

	case "3":
		if !inForm && m.currentView != ViewGit {
			m.previousView = m.currentView
			m.currentView = ViewGit
			var cmd tea.Cmd
			m.gitView, cmd = m.gitView.Open()
			return m, cmd, true
		}

	case "n":
		if m.currentView == ViewProblems {
			m.previousView = m.currentView
			m.currentView = ViewProblemForm
			return m, m.problemForm.StartCreate(), true
		}
		if m.currentView == ViewContests {
			m.previousView = m.currentView
			m.currentView = ViewContestForm
			// A waiting bookmarklet import pre-fills the form; claiming
			// clears the slot, so it is handed out exactly once.
			if ci := m.deps.Pending.Claim(); ci != nil {
				m.statusMsg = fmt.Sprintf("imported %q from browser", ci.Name)
				return m, m.contestForm.StartImport(*ci), true
			}
			return m, m.contestForm.StartCreate(), true
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewProblems:
		m.problemList, cmd = m.problemList.Update(msg)
	case ViewContests:
		m.contestList, cmd = m.contestList.Update(msg)
	case ViewGit:
		m.gitView, cmd = m.gitView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewProblemForm:
		m.problemForm, cmd = m.problemForm.Update(msg)
	case ViewContestForm:
		m.contestForm, cmd = m.contestForm.Update(msg)
	case ViewSolution:
		m.solutionView, cmd = m.solutionView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("ACM Compass", m.headerStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewProblems:
		return m.problemList.View()
	case ViewContests:
		return m.contestList.View()
	case ViewGit:
		return m.gitView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewProblemForm:
		return m.problemForm.View()
	case ViewContestForm:
		return m.contestForm.View()
	case ViewSolution:
		return m.solutionView.View()
	default:
		return ""
	}
}

// headerStatus surfaces a waiting browser import in the header.
func (m Model) headerStatus() string {
	if m.deps.Pending.Waiting() {
		return "import waiting — press 2 then n"
	}
	return ""
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}
	switch m.currentView {
	case ViewProblems:
		return "n new · e edit · s solution · d delete · f filter · / search · 2 contests · 3 git · ? help"
	case ViewContests:
		return "n new/import · e edit · d delete · 1 problems · 3 git · ? help"
	case ViewGit:
		return "s status · p pull · P push · c clone · esc back"
	case ViewSolution:
		return "tab edit · ctrl+s save · esc back"
	default:
		return "esc back · ? help · q quit"
	}
}

func resultStatus(ok string, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return ok
}

func deleteStatus(kind string, found bool, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	if !found {
		return kind + " not found"
	}
	return kind + " deleted"
}
