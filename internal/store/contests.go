package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"acmcompass/internal/model"
)

// ContestStore is the durable store for contest records, backed by one
// JSON array file guarded by a single mutex.
type ContestStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// NewContestStore creates a contest store writing to path.
func NewContestStore(path string, log *zap.Logger) *ContestStore {
	return &ContestStore{path: path, log: log}
}

// Load reads and normalizes every contest record, recovering from a
// corrupt file by backing it up and starting empty.
func (s *ContestStore) Load() ([]model.Contest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, recovered, err := loadRawArray(s.path)
	if err != nil {
		return nil, err
	}
	if recovered {
		s.log.Warn("contests file was corrupt, backed up and reset",
			zap.String("path", s.path),
			zap.String("backup", backupPath(s.path)))
	}

	items := make([]model.Contest, 0, len(records))
	for _, rec := range records {
		items = append(items, model.NormalizeContest(rec))
	}
	return items, nil
}

// Save writes the full collection.
func (s *ContestStore) Save(items []model.Contest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONFile(s.path, items)
}

// Create appends a new contest with a fresh id and timestamps.
func (s *ContestStore) Create(in model.ContestInput) (model.Contest, error) {
	items, err := s.Load()
	if err != nil {
		return model.Contest{}, err
	}

	now := time.Now().UTC()
	c := model.Contest{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(&c)
	c = c.Canonical()

	items = append(items, c)
	if err := s.Save(items); err != nil {
		return model.Contest{}, err
	}
	return c, nil
}

// Update merges the input into the identified contest and refreshes
// updated_at. It returns nil when the id is unknown.
func (s *ContestStore) Update(id string, in model.ContestInput) (*model.Contest, error) {
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
		return &items[i], nil
	}

	return nil, nil
}

// Delete removes the contest, returning false when the id is unknown.
func (s *ContestStore) Delete(id string) (bool, error) {
	items, err := s.Load()
	if err != nil {
		return false, err
	}

	kept := items[:0]
	for _, c := range items {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}

	if err := s.Save(kept); err != nil {
		return false, err
	}
	return true, nil
}
