package model

import "time"

// Per-problem statuses within a contest.
const (
	StatusAC          = "ac"
	StatusAttempted   = "attempted"
	StatusUnsubmitted = "unsubmitted"
)

// Letters indexes contest problems positionally: slot 0 is "A".
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxContestProblems is the largest supported problem count, one per letter.
const MaxContestProblems = len(Letters)

// ValidStatus reports whether s is a recognized per-problem status.
func ValidStatus(s string) bool {
	return s == StatusAC || s == StatusAttempted || s == StatusUnsubmitted
}

// Letter returns the positional letter for slot i ("A" for 0).
func Letter(i int) string {
	return string(Letters[i])
}

// ContestProblem is the per-letter result row of a contest.
type ContestProblem struct {
	Letter       string `json:"letter"`
	PassCount    int    `json:"pass_count"`
	AttemptCount int    `json:"attempt_count"`
	MyStatus     string `json:"my_status"`
}

// DefaultContestProblem returns the empty slot for position i.
func DefaultContestProblem(i int) ContestProblem {
	return ContestProblem{
		Letter:   Letter(i),
		MyStatus: StatusUnsubmitted,
	}
}

// Contest is one contest's recorded result.
type Contest struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	TotalProblems int              `json:"total_problems"`
	Problems      []ContestProblem `json:"problems"`
	RankStr       string           `json:"rank_str,omitempty"`
	Summary       string           `json:"summary,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ContestInput carries the user-editable fields of a contest.
type ContestInput struct {
	Name          string
	TotalProblems int
	Problems      []ContestProblem
	RankStr       string
	Summary       string
}

// Apply merges the input into c, leaving system fields untouched.
func (in ContestInput) Apply(c *Contest) {
	c.Name = in.Name
	c.TotalProblems = in.TotalProblems
	c.Problems = in.Problems
	c.RankStr = in.RankStr
	c.Summary = in.Summary
}
