// Package store holds the append-only in-memory message collection and its
// time-ordered, cursor-bounded retrieval.
package store

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chatfeed-dev/chatfeed/shared/domain"
)

// NoBound is the "positive infinity" cursor: a query bounded by it returns the
// newest page.
const NoBound = int64(math.MaxInt64)

// Store is the append-only message collection. Messages never change after
// insertion; there is no update or delete. A single RWMutex guards the whole
// store so Query observes a consistent snapshot relative to concurrent
// Append calls.
type Store struct {
	mu       sync.RWMutex
	messages []domain.Message // insertion order
	lastTs   int64
	now      func() time.Time
}

func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock makes the timestamp source injectable for tests.
func NewWithClock(now func() time.Time) *Store {
	return &Store{now: now}
}

// Append assigns the message an id and a monotonically increasing timestamp
// and inserts it. Two appends never share a timestamp: a synthesized bot reply
// appended after its trigger always sorts strictly after it.
func (s *Store) Append(msg domain.Message) domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.Id == "" {
		msg.Id = uuid.NewString()
	}
	ts := s.now().UnixMilli()
	if ts <= s.lastTs {
		ts = s.lastTs + 1
	}
	s.lastTs = ts
	msg.Timestamp = ts

	s.messages = append(s.messages, msg)
	return msg
}

// Seed inserts pre-built messages keeping their timestamps, assigning ids
// where absent. Used for the demo messages shown on a fresh server.
func (s *Store) Seed(msgs ...domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range msgs {
		if msg.Id == "" {
			msg.Id = uuid.NewString()
		}
		if msg.Timestamp > s.lastTs {
			s.lastTs = msg.Timestamp
		}
		s.messages = append(s.messages, msg)
	}
}

// Query returns up to limit messages with timestamp strictly before the
// cursor, newest-first. The sort is stable, so equal timestamps keep insertion
// order and repeated identical queries are reproducible.
func (s *Store) Query(before int64, limit int) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page := make([]domain.Message, 0, limit)
	for _, msg := range s.messages {
		if msg.Timestamp < before {
			page = append(page, msg)
		}
	}
	sort.SliceStable(page, func(i, j int) bool {
		return page[i].Timestamp > page[j].Timestamp
	})
	if len(page) > limit {
		page = page[:limit]
	}
	return page
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}
