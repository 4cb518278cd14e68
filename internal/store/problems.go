package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"acmcompass/internal/model"
)

// Legacy field names that used to embed the solution markdown inside the
// problem record. Load migrates them into the solution store.
var legacySolutionKeys = []string{"solution_markdown", "solution_md", "solution"}

// ProblemStore is the durable store for problem records, backed by one
// JSON array file. All file access for the collection is serialized
// through a single mutex; a full create/update cycle is intentionally not
// atomic end-to-end (single local user, low concurrency).
type ProblemStore struct {
	mu        sync.Mutex
	path      string
	solutions *SolutionStore
	log       *zap.Logger
}

// NewProblemStore creates a problem store writing to path, with solution
// blobs handled by solutions.
func NewProblemStore(path string, solutions *SolutionStore, log *zap.Logger) *ProblemStore {
	return &ProblemStore{path: path, solutions: solutions, log: log}
}

// Load reads and normalizes every problem record. Corrupt files are backed
// up and replaced with an empty collection. Legacy inline solution content
// is migrated into the solution store, and the file is rewritten whenever
// migration changed anything. The derived HasSolution flag is attached
// outside the lock.
func (s *ProblemStore) Load() ([]model.Problem, error) {
	items, err := s.loadAndMigrate()
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].HasSolution = s.solutions.Exists(items[i].ID)
	}
	return items, nil
}

func (s *ProblemStore) loadAndMigrate() ([]model.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, recovered, err := loadRawArray(s.path)
	if err != nil {
		return nil, err
	}
	if recovered {
		s.log.Warn("problems file was corrupt, backed up and reset",
			zap.String("path", s.path),
			zap.String("backup", backupPath(s.path)))
	}

	changed := false
	items := make([]model.Problem, 0, len(records))
	for _, rec := range records {
		// Migrate any inline solution field into a markdown blob.
		for _, key := range legacySolutionKeys {
			content, ok := rec[key].(string)
			if !ok || content == "" {
				delete(rec, key)
				continue
			}
			delete(rec, key)
			changed = true
			if id, ok := rec["id"].(string); ok && id != "" {
				if err := s.solutions.Write(id, content); err != nil {
					return nil, err
				}
			}
			break
		}
		// has_solution is derived; persisted copies are stale by definition.
		if _, ok := rec["has_solution"]; ok {
			changed = true
		}
		items = append(items, model.NormalizeProblem(rec))
	}

	if changed {
		if err := writeJSONFile(s.path, stripDerived(items)); err != nil {
			return nil, err
		}
		s.log.Info("migrated legacy problem fields", zap.Int("count", len(items)))
	}

	return items, nil
}

// Save writes the full collection, dropping the derived HasSolution flag.
func (s *ProblemStore) Save(items []model.Problem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(s.path, stripDerived(items))
}

// Create appends a new problem with a fresh id and timestamps.
func (s *ProblemStore) Create(in model.ProblemInput) (model.Problem, error) {
	items, err := s.Load()
	if err != nil {
		return model.Problem{}, err
	}

	now := time.Now().UTC()
	p := model.Problem{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(&p)
	p = p.Canonical()

	items = append(items, p)
	if err := s.Save(items); err != nil {
		return model.Problem{}, err
	}

	p.HasSolution = s.solutions.Exists(p.ID)
	return p, nil
}

// Update merges the input into the identified problem and refreshes
// updated_at. It returns nil (not an error) when the id is unknown.
func (s *ProblemStore) Update(id string, in model.ProblemInput) (*model.Problem, error) {
	items, err := s.Load()
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		in.Apply(&items[i])
		items[i].UpdatedAt = time.Now().UTC()
		items[i] = items[i].Canonical()
		if err := s.Save(items); err != nil {
			return nil, err
		}
		items[i].HasSolution = s.solutions.Exists(id)
		return &items[i], nil
	}

	return nil, nil
}

// Delete removes the problem and cascades to its solution blob. It returns
// false when the id is unknown.
func (s *ProblemStore) Delete(id string) (bool, error) {
	items, err := s.Load()
	if err != nil {
		return false, err
	}

	kept := items[:0]
	for _, p := range items {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := s.Save(kept); err != nil {
		return false, err
	}
	if err := s.solutions.Delete(id); err != nil {
		return false, err
	}
	return true, nil
}

// stripDerived copies the collection without derived fields so they never
// reach disk.
func stripDerived(items []model.Problem) []model.Problem {
	out := make([]model.Problem, len(items))
	for i, p := range items {
		p.HasSolution = false
		out[i] = p
	}
	return out
}
