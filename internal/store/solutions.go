package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// SolutionStore maps a problem id to an optional markdown write-up, one
// file per id. Content is opaque text; existence alone drives the derived
// has_solution flag on problems.
type SolutionStore struct {
	dir string
}

// NewSolutionStore creates a solution store rooted at dir.
func NewSolutionStore(dir string) *SolutionStore {
	return &SolutionStore{dir: dir}
}

// Path returns the markdown file path for the given problem id.
func (s *SolutionStore) Path(problemID string) string {
	return filepath.Join(s.dir, problemID+".md")
}

// Exists reports whether a solution file exists for the problem.
func (s *SolutionStore) Exists(problemID string) bool {
	_, err := os.Stat(s.Path(problemID))
	return err == nil
}

// Read returns the solution markdown and whether it exists.
func (s *SolutionStore) Read(problemID string) (string, bool, error) {
	data, err := os.ReadFile(s.Path(problemID))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading solution %s: %w", problemID, err)
	}
	return string(data), true, nil
}

// Write stores the solution markdown, overwriting any previous content.
func (s *SolutionStore) Write(problemID, markdown string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating solutions directory: %w", err)
	}
	if err := os.WriteFile(s.Path(problemID), []byte(markdown), 0o644); err != nil {
		return fmt.Errorf("writing solution %s: %w", problemID, err)
	}
	return nil
}

// Delete removes the solution file. Deleting an absent solution is a no-op.
func (s *SolutionStore) Delete(problemID string) error {
	err := os.Remove(s.Path(problemID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting solution %s: %w", problemID, err)
	}
	return nil
}
