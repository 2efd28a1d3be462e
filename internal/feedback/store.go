package feedback

import (
	"sync"
	"time"

	"github.com/schoolpulse/backend/internal/shared"
)

// Store is an in-memory, newest-first list of feedback entries.
type Store struct {
	mu      sync.RWMutex
	entries []*Feedback
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Create(f *Feedback) *Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.ID == "" {
		f.ID = shared.NewID("fbk_")
	}
	f.CreatedAt = time.Now().UTC()

	s.entries = append([]*Feedback{f}, s.entries...)
	return f
}

func (s *Store) List() []*Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Feedback, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
