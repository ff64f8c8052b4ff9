package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/splice/internal/domain"
	"github.com/bnema/splice/internal/port"
)

// Store keeps run history in runs.json. Runs are stored by value so callers
// never share state with the store.
type Store struct {
	mu   sync.RWMutex
	path string
	runs map[string]domain.Run
}

func NewStore(dataDir string) (*Store, error) {
	store := &Store{
		path: filepath.Join(dataDir, "runs.json"),
		runs: make(map[string]domain.Run),
	}

	if err := store.load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return store, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	if len(data) == 0 {
		return nil
	}

	var runs []domain.Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return err
	}

	for _, r := range runs {
		s.runs[r.ID] = r
	}

	return nil
}

// save must be called with the write lock held.
func (s *Store) save() error {
	tmpPath := s.path + ".tmp"

	data, err := json.MarshalIndent(s.sorted(), "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, s.path)
}

func (s *Store) sorted() []domain.Run {
	runs := make([]domain.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})
	return runs
}

func (s *Store) Save(r *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[r.ID] = copyRun(*r)
	return s.save()
}

func (s *Store) Get(id string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	out := copyRun(r)
	return &out, nil
}

func (s *Store) List(limit int) ([]*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sorted := s.sorted()
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	runs := make([]*domain.Run, len(sorted))
	for i := range sorted {
		r := copyRun(sorted[i])
		runs[i] = &r
	}
	return runs, nil
}

// UpdateProgress only touches memory. Progress is flushed with the next
// Save or UpdateDone so a run does not rewrite the file every poll.
func (s *Store) UpdateProgress(id string, report domain.ProgressReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.runs[id]
	if !ok {
		return domain.ErrNotFound
	}
	r.Apply(report)
	s.runs[id] = r
	return nil
}

func (s *Store) UpdateDone(r *domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[r.ID]; !ok {
		return domain.ErrNotFound
	}
	s.runs[r.ID] = copyRun(*r)
	return s.save()
}

func copyRun(r domain.Run) domain.Run {
	r.Inputs = append([]string(nil), r.Inputs...)
	return r
}

var _ port.RunStore = (*Store)(nil)
