// Package store keeps the most recently generated reports in memory.
package store

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/solardome/preclear-demo/internal/report"
)

// DefaultCapacity is the number of reports retained when none is configured.
const DefaultCapacity = 20

// ErrNotFound is returned by Get for ids that were never stored or have been
// evicted.
var ErrNotFound = errors.New("report not found")

// Store is a bounded, newest-first report store. Ids live in a ring buffer
// sized to the capacity; the map and the ring always hold the same ids.
type Store struct {
	mu       sync.RWMutex
	capacity int
	ring     []string
	next     int
	size     int
	reports  map[string]report.Report
}

// New returns an empty store. A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		ring:     make([]string, capacity),
		reports:  make(map[string]report.Report, capacity),
	}
}

// Put stores rep as the newest report and evicts the oldest one when the
// store is full. Storing an id that is already present replaces its record
// in place and leaves the order untouched.
func (s *Store) Put(rep report.Report) string {
	rep = rep.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reports[rep.ID]; ok {
		s.reports[rep.ID] = rep
		return rep.ID
	}
	if s.size == s.capacity {
		delete(s.reports, s.ring[s.next])
	} else {
		s.size++
	}
	s.ring[s.next] = rep.ID
	s.reports[rep.ID] = rep
	s.next = (s.next + 1) % s.capacity
	return rep.ID
}

func (s *Store) Get(id string) (report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rep, ok := s.reports[id]
	if !ok {
		return report.Report{}, errors.Wrapf(ErrNotFound, "report %q", id)
	}
	return rep.Clone(), nil
}

// List returns the stored reports, newest first.
func (s *Store) List() []report.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]report.Report, 0, s.size)
	for i := 1; i <= s.size; i++ {
		idx := (s.next - i + s.capacity) % s.capacity
		out = append(out, s.reports[s.ring[idx]].Clone())
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

func (s *Store) Capacity() int {
	return s.capacity
}
