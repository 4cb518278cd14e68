package model

import "time"

// Stages a problem can be in while unsolved.
const (
	StageNotViewed     = "not-viewed"
	StageViewedNoIdea  = "viewed-no-idea"
	StageApproachKnown = "approach-known-not-implemented"
)

// UnsolvedStages lists the valid unsolved_stage values in display order.
var UnsolvedStages = []string{
	StageNotViewed,
	StageViewedNoIdea,
	StageApproachKnown,
}

// ValidStage reports whether s is one of the fixed unsolved stages.
func ValidStage(s string) bool {
	for _, v := range UnsolvedStages {
		if s == v {
			return true
		}
	}
	return false
}

// Problem is one competitive-programming problem tracked by the team.
//
// HasSolution is derived from the solution blob store at load time and is
// never persisted; the json tag exists only for the import endpoint echo.
type Problem struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Link                string    `json:"link,omitempty"`
	Source              string    `json:"source,omitempty"`
	Tags                []string  `json:"tags"`
	Assignee            string    `json:"assignee,omitempty"`
	Solved              bool      `json:"solved"`
	UnsolvedStage       string    `json:"unsolved_stage,omitempty"`
	UnsolvedCustomLabel string    `json:"unsolved_custom_label,omitempty"`
	PassCount           *int      `json:"pass_count,omitempty"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	HasSolution bool `json:"has_solution,omitempty"`
}

// ProblemInput carries the user-editable fields of a problem. The zero
// value is a valid empty input.
type ProblemInput struct {
	Title               string
	Link                string
	Source              string
	Tags                []string
	Assignee            string
	Solved              bool
	UnsolvedStage       string
	UnsolvedCustomLabel string
	PassCount           *int
	Notes               string
}

// Apply merges the input into p, leaving system fields untouched.
func (in ProblemInput) Apply(p *Problem) {
	p.Title = in.Title
	p.Link = in.Link
	p.Source = in.Source
	p.Tags = in.Tags
	p.Assignee = in.Assignee
	p.Solved = in.Solved
	p.UnsolvedStage = in.UnsolvedStage
	p.UnsolvedCustomLabel = in.UnsolvedCustomLabel
	p.PassCount = in.PassCount
	p.Notes = in.Notes
}
