// Package playback assigns start times to decoded audio buffers so that
// chunks arriving with jitter still play back-to-back, in order, with no
// gaps or overlaps.
package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/schoolpulse/backend/internal/audio"
)

// Clock reports elapsed time on the output timeline. The zero point is the
// start of the session.
type Clock interface {
	Now() time.Duration
}

type monotonicClock struct {
	epoch time.Time
}

func NewClock() Clock {
	return &monotonicClock{epoch: time.Now()}
}

func (c *monotonicClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// EmitFunc delivers a buffer to the output device when it is due, together
// with its assigned start offset on the session timeline.
type EmitFunc func(buf *audio.Buffer, start time.Duration)

type entry struct {
	emit *time.Timer
	done *time.Timer
}

// Scheduler owns the playback cursor for one session. The cursor is
// monotonically non-decreasing: the start assigned to chunk N+1 is never
// before the end of chunk N.
type Scheduler struct {
	clock Clock
	emit  EmitFunc
	log   *slog.Logger

	mu      sync.Mutex
	cursor  time.Duration
	live    map[int64]*entry
	nextID  int64
	stopped bool
}

func NewScheduler(clock Clock, emit EmitFunc, log *slog.Logger) *Scheduler {
	if clock == nil {
		clock = NewClock()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Scheduler{
		clock: clock,
		emit:  emit,
		log:   log,
		live:  map[int64]*entry{},
	}
}

// Schedule assigns the buffer the earliest start that neither overlaps the
// previous chunk nor lies in the past, arms its emission, and advances the
// cursor past its end. Returns the assigned start offset.
func (s *Scheduler) Schedule(buf *audio.Buffer) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	start := s.cursor
	if start < now {
		start = now
	}
	s.cursor = start + buf.Duration()

	if s.stopped {
		return start
	}

	id := s.nextID
	s.nextID++

	e := &entry{}
	delay := start - now
	if delay < 0 {
		delay = 0
	}
	e.emit = time.AfterFunc(delay, func() {
		s.emit(buf, start)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.stopped {
			return
		}
		// The chunk stays in the live set until it finishes sounding.
		e.done = time.AfterFunc(buf.Duration(), func() {
			s.mu.Lock()
			delete(s.live, id)
			s.mu.Unlock()
		})
	})
	s.live[id] = e

	return start
}

// Cursor returns the next available start time.
func (s *Scheduler) Cursor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Pending returns the number of chunks scheduled or currently sounding.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Stop silences everything still pending and rejects further scheduling
// side effects. Returns the number of chunks cancelled.
func (s *Scheduler) Stop() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return 0
	}
	s.stopped = true

	n := len(s.live)
	for id, e := range s.live {
		e.emit.Stop()
		if e.done != nil {
			e.done.Stop()
		}
		delete(s.live, id)
	}
	if n > 0 {
		s.log.Debug("playback silenced", "chunks", n)
	}
	return n
}
