package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"acmcompass/internal/model"
)

// Internal messages carrying the results of store operations.
type (
	problemSavedMsg struct {
		problem model.Problem
		err     error
	}
	problemDeletedMsg struct {
		found bool
		err   error
	}
	contestSavedMsg struct {
		contest model.Contest
		err     error
	}
	contestDeletedMsg struct {
		found bool
		err   error
	}
	solutionOpenedMsg struct {
		problem  model.Problem
		markdown string
		exists   bool
		err      error
	}
	solutionSavedMsg struct {
		err error
	}
)

// saveProblem creates or updates a problem depending on editID.
func (m Model) saveProblem(editID string, in model.ProblemInput) tea.Cmd {
	s := m.deps.Problems
	log := m.deps.Log
	return func() tea.Msg {
		if editID == "" {
			p, err := s.Create(in)
			if err != nil {
				log.Error("create problem failed", zap.Error(err))
			}
			return problemSavedMsg{problem: p, err: err}
		}
		p, err := s.Update(editID, in)
		if err != nil {
			log.Error("update problem failed", zap.String("id", editID), zap.Error(err))
			return problemSavedMsg{err: err}
		}
		if p == nil {
			return problemSavedMsg{err: errProblemNotFound}
		}
		return problemSavedMsg{problem: *p}
	}
}

func (m Model) deleteProblem(id string) tea.Cmd {
	s := m.deps.Problems
	log := m.deps.Log
	return func() tea.Msg {
		found, err := s.Delete(id)
		if err != nil {
			log.Error("delete problem failed", zap.String("id", id), zap.Error(err))
		}
		return problemDeletedMsg{found: found, err: err}
	}
}

// saveContest creates or updates a contest depending on editID.
func (m Model) saveContest(editID string, in model.ContestInput) tea.Cmd {
	s := m.deps.Contests
	log := m.deps.Log
	return func() tea.Msg {
		if editID == "" {
			c, err := s.Create(in)
			if err != nil {
				log.Error("create contest failed", zap.Error(err))
			}
			return contestSavedMsg{contest: c, err: err}
		}
		c, err := s.Update(editID, in)
		if err != nil {
			log.Error("update contest failed", zap.String("id", editID), zap.Error(err))
			return contestSavedMsg{err: err}
		}
		if c == nil {
			return contestSavedMsg{err: errContestNotFound}
		}
		return contestSavedMsg{contest: *c}
	}
}

func (m Model) deleteContest(id string) tea.Cmd {
	s := m.deps.Contests
	log := m.deps.Log
	return func() tea.Msg {
		found, err := s.Delete(id)
		if err != nil {
			log.Error("delete contest failed", zap.String("id", id), zap.Error(err))
		}
		return contestDeletedMsg{found: found, err: err}
	}
}

// openSolution reads the solution markdown for a problem, if any.
func (m Model) openSolution(p model.Problem) tea.Cmd {
	s := m.deps.Solutions
	return func() tea.Msg {
		markdown, exists, err := s.Read(p.ID)
		return solutionOpenedMsg{problem: p, markdown: markdown, exists: exists, err: err}
	}
}

// saveSolution writes the solution blob. An empty markdown body removes it.
func (m Model) saveSolution(problemID, markdown string) tea.Cmd {
	s := m.deps.Solutions
	log := m.deps.Log
	return func() tea.Msg {
		var err error
		if markdown == "" {
			err = s.Delete(problemID)
		} else {
			err = s.Write(problemID, markdown)
		}
		if err != nil {
			log.Error("save solution failed", zap.String("id", problemID), zap.Error(err))
		}
		return solutionSavedMsg{err: err}
	}
}
