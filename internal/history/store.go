// Package history keeps the rolling per-user conversation window.
//
// Each user owns an ordered list of lines ("User: ..." / "Bot: ...") capped at
// a fixed length; the oldest lines are dropped first. Nothing is persisted:
// the store lives exactly as long as the process.
package history

import (
	"context"
	"sync"
	"time"
)

// DefaultMaxLines keeps the last five exchanges.
const DefaultMaxLines = 10

// Role prefixes used for conversation lines.
const (
	UserPrefix = "User: "
	BotPrefix  = "Bot: "
)

type entry struct {
	lines      []string
	lastActive time.Time
}

type userLock struct {
	ch   chan struct{}
	refs int
}

// Store maps opaque user identifiers to their conversation lines.
// It is safe for concurrent use.
type Store struct {
	maxLines int
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	locks   map[string]*userLock
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for activity tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty store keeping at most maxLines lines per user.
// Non-positive values fall back to DefaultMaxLines.
func New(maxLines int, opts ...Option) *Store {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	s := &Store{
		maxLines: maxLines,
		now:      time.Now,
		entries:  make(map[string]*entry),
		locks:    make(map[string]*userLock),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxLines returns the per-user cap.
func (s *Store) MaxLines() int {
	return s.maxLines
}

// Get returns a copy of the user's lines, oldest first. Unknown users get an
// empty slice.
func (s *Store) Get(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return []string{}
	}
	out := make([]string, len(e.lines))
	copy(out, e.lines)
	return out
}

// Append adds lines to the user's history and truncates it to the newest
// MaxLines entries. The entry is created on first use.
func (s *Store) Append(userID string, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		e = &entry{}
		s.entries[userID] = e
	}
	e.lines = append(e.lines, lines...)
	if over := len(e.lines) - s.maxLines; over > 0 {
		kept := make([]string, s.maxLines)
		copy(kept, e.lines[over:])
		e.lines = kept
	}
	e.lastActive = s.now()
}

// Lock acquires the user's exclusive turn slot. Callers hold it across the
// whole read-generate-append sequence so that concurrent turns of the same
// user are serialized. It returns ctx.Err() if the context ends first.
func (s *Store) Lock(ctx context.Context, userID string) (func(), error) {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &userLock{ch: make(chan struct{}, 1)}
		s.locks[userID] = l
	}
	l.refs++
	s.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		s.release(userID, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.ch
			s.release(userID, l)
		})
	}, nil
}

func (s *Store) release(userID string, l *userLock) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(s.locks, userID)
	}
}

// EvictIdle removes users whose last append is older than ttl and who have no
// turn in progress. It returns the number of users removed. A non-positive
// ttl disables eviction.
func (s *Store) EvictIdle(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, e := range s.entries {
		if _, busy := s.locks[id]; busy {
			continue
		}
		if e.lastActive.Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of users currently tracked.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
