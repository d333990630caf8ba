package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/report"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*report.Run
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*report.Run),
	}
}

// Save persists the run in memory.
func (s *Store) Save(ctx context.Context, run *report.Run) error {
	// Copy to ensure isolation, similar to serialization
	copied := *run
	copied.Records = slices.Clone(run.Records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[run.ID] = &copied
	return nil
}

// Load retrieves the run from memory.
func (s *Store) Load(ctx context.Context, runID string) (*report.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.data[runID]
	if !ok {
		return nil, domain.ErrReportNotFound
	}

	// Copy on read so the caller can't mutate store state through the pointer
	ret := *run
	ret.Records = slices.Clone(run.Records)
	return &ret, nil
}

// Delete removes the run.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	return nil
}

// List returns the stored run IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}
