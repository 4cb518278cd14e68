package store

import (
	"sync"
	"time"

	"acmcompass/internal/model"
)

// ContestImport is a bookmarklet-submitted standings payload waiting for
// the operator to review and save it as a contest record.
type ContestImport struct {
	Name          string                 `json:"name"`
	TotalProblems int                    `json:"total_problems"`
	Problems      []model.ContestProblem `json:"problems"`
	UserRank      string                 `json:"user_rank,omitempty"`
	ReceivedAt    time.Time              `json:"received_at"`
}

// PendingImport is a single-slot cache of the most recent browser import.
// A new POST replaces whatever was there; claiming clears the slot, so
// each import is handed to the UI at most once.
type PendingImport struct {
	mu   sync.Mutex
	item *ContestImport
}

// NewPendingImport creates an empty pending-import slot.
func NewPendingImport() *PendingImport {
	return &PendingImport{}
}

// Put stores the import, replacing any unclaimed previous one.
func (p *PendingImport) Put(ci ContestImport) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.item = &ci
}

// Claim returns the pending import and clears the slot, or nil when empty.
func (p *PendingImport) Claim() *ContestImport {
	p.mu.Lock()
	defer p.mu.Unlock()
	ci := p.item
	p.item = nil
	return ci
}

// Waiting reports whether an unclaimed import is in the slot.
func (p *PendingImport) Waiting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.item != nil
}
