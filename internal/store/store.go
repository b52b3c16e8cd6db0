// Package store keeps one in-memory collection per entity kind.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrNotFound is returned for ids absent from a store.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned when seeding a record whose id is already stored.
var ErrDuplicateID = errors.New("duplicate record id")

// Record is implemented by pointers to entity types.
type Record interface {
	GetID() string
	SetID(id string)
}

// Store holds records of one kind in insertion order. All methods are safe
// for concurrent use; a single RWMutex serializes writers.
//
// Returned records are copies. Slice fields still share backing arrays with
// the stored record, so callers must replace slices rather than mutate them.
type Store[T any, P interface {
	*T
	Record
}] struct {
	kind string

	mu      sync.RWMutex
	records []T
	index   map[string]int
	highest int
}

// New returns an empty store. kind names the entity in error messages.
func New[T any, P interface {
	*T
	Record
}](kind string) *Store[T, P] {
	return &Store[T, P]{
		kind:  kind,
		index: make(map[string]int),
	}
}

// Kind returns the entity name the store was created with.
func (s *Store[T, P]) Kind() string { return s.kind }

// Create assigns the next id to rec and appends it. prepare, when non-nil,
// runs under the write lock with the id already set and a snapshot of the
// existing records, which it must not retain. A non-nil error aborts the
// insert.
func (s *Store[T, P]) Create(rec T, prepare func(rec *T, existing []T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strconv.Itoa(s.highest + 1)
	P(&rec).SetID(id)

	if prepare != nil {
		if err := prepare(&rec, s.records); err != nil {
			var zero T
			return zero, err
		}
		P(&rec).SetID(id)
	}

	s.insert(rec)
	return rec, nil
}

// Get returns the record with the given id.
func (s *Store[T, P]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, s.notFound(id)
	}
	return s.records[i], nil
}

// List returns every record in insertion order.
func (s *Store[T, P]) List() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, len(s.records))
	copy(out, s.records)
	return out
}

// Find returns the first record matching pred.
func (s *Store[T, P]) Find(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if pred(rec) {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

// Update runs mutate on a copy of the record and stores the copy only if
// mutate returns nil. others holds every other record of the kind. The id
// cannot be changed by mutate.
func (s *Store[T, P]) Update(id string, mutate func(rec *T, others []T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, s.notFound(id)
	}

	updated := s.records[i]
	others := make([]T, 0, len(s.records)-1)
	others = append(others, s.records[:i]...)
	others = append(others, s.records[i+1:]...)

	if err := mutate(&updated, others); err != nil {
		var zero T
		return zero, err
	}

	P(&updated).SetID(id)
	s.records[i] = updated
	return updated, nil
}

// Delete removes the record and returns it.
func (s *Store[T, P]) Delete(id string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		var zero T
		return zero, s.notFound(id)
	}

	removed := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.records); j++ {
		s.index[P(&s.records[j]).GetID()] = j
	}
	return removed, nil
}

// Len returns the number of stored records.
func (s *Store[T, P]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Seed appends records keeping their ids. Records without an id get the
// next one. Numeric ids advance the sequence.
func (s *Store[T, P]) Seed(records ...T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range records {
		p := P(&rec)
		if p.GetID() == "" {
			p.SetID(strconv.Itoa(s.highest + 1))
		}
		if _, exists := s.index[p.GetID()]; exists {
			return fmt.Errorf("%s %s: %w", s.kind, p.GetID(), ErrDuplicateID)
		}
		s.insert(rec)
	}
	return nil
}

// insert appends rec and advances the id sequence. Callers hold the write lock.
func (s *Store[T, P]) insert(rec T) {
	id := P(&rec).GetID()
	s.index[id] = len(s.records)
	s.records = append(s.records, rec)

	if n, err := strconv.Atoi(id); err == nil && n > s.highest {
		s.highest = n
	}
}

func (s *Store[T, P]) notFound(id string) error {
	return fmt.Errorf("%s %s: %w", s.kind, id, ErrNotFound)
}
