package report

import (
	"sync"
	"time"

	"github.com/schoolpulse/backend/internal/shared"
)

// Store is an in-memory, newest-first list of reports.
type Store struct {
	mu      sync.RWMutex
	reports []*Report
}

func NewStore() *Store {
	return &Store{}
}

// Create assigns an ID and timestamp and prepends the report.
func (s *Store) Create(r *Report) *Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = shared.NewID("rpt_")
	}
	r.CreatedAt = time.Now().UTC()

	s.reports = append([]*Report{r}, s.reports...)
	return r
}

// List returns all reports, newest first.
func (s *Store) List() []*Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Report, len(s.reports))
	copy(out, s.reports)
	return out
}

func (s *Store) GetByID(id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}
