// Package store holds the five record collections that form the single
// source of truth. All reads hand out deep copies; derived views and
// aggregates never share map references with the store.
package store

import (
	"errors"
	"sync"

	"budgetbook/internal/core"
)

// ErrNothingToUndo signals an undo with no prior snapshot, surfaced to the
// user as a "nothing to undo" notice rather than an internal failure.
var ErrNothingToUndo = errors.New("nothing to undo")

// undoLimit caps the snapshot stack; the oldest entry is evicted silently.
const undoLimit = 20

type snapshot struct {
	kind    core.Kind
	records []core.Record
}

// Store is the owned, injected replacement for the original's ambient
// globals. Mutating operations snapshot the affected collection first;
// wholesale replacement (load, CSV import) is not undoable.
type Store struct {
	mu          sync.Mutex
	collections map[core.Kind][]core.Record
	undo        []snapshot
	revisions   map[core.Kind]int64
}

// New returns an empty store with all five collections initialized.
func New() *Store {
	s := &Store{
		collections: make(map[core.Kind][]core.Record, len(core.Kinds())),
		revisions:   make(map[core.Kind]int64, len(core.Kinds())),
	}
	for _, k := range core.Kinds() {
		s.collections[k] = nil
	}
	return s
}

// Collection returns a deep copy of the collection in insertion order.
func (s *Store) Collection(kind core.Kind) []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.CloneAll(s.collections[kind])
}

// Len returns the collection size.
func (s *Store) Len(kind core.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collections[kind])
}

// Revision returns a counter bumped on every mutation of the collection.
// Sync messages carry it so the worker can drop stale events.
func (s *Store) Revision(kind core.Kind) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revisions[kind]
}

// Replace installs a new collection wholesale. The prior contents are
// discarded without an undo snapshot.
func (s *Store) Replace(kind core.Kind, records []core.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[kind] = core.CloneAll(records)
	s.revisions[kind]++
}

// FindByID returns a copy of the first record whose id stringifies equal to
// the requested id.
func (s *Store) FindByID(kind core.Kind, id string) (core.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.collections[kind] {
		if r.ID() == id {
			return r.Clone(), true
		}
	}
	return nil, false
}

// Upsert replaces the record with the same id in place, preserving its
// position, or appends when the id is new.
func (s *Store) Upsert(kind core.Kind, rec core.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushSnapshot(kind)
	s.revisions[kind]++

	id := rec.ID()
	coll := s.collections[kind]
	for i, existing := range coll {
		if existing.ID() == id {
			coll[i] = rec.Clone()
			return
		}
	}
	s.collections[kind] = append(coll, rec.Clone())
}

// DeleteByID removes the first record matching id and reports whether a
// removal occurred. A miss is a no-op, not an error, and leaves the undo
// stack untouched.
func (s *Store) DeleteByID(kind core.Kind, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.collections[kind]
	for i, r := range coll {
		if r.ID() == id {
			s.pushSnapshot(kind)
			s.revisions[kind]++
			s.collections[kind] = append(coll[:i:i], coll[i+1:]...)
			return true
		}
	}
	return false
}

// DeleteMany removes every record whose id is in ids under a single undo
// snapshot, returning how many were removed.
func (s *Store) DeleteMany(kind core.Kind, ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	victim := make(map[string]bool, len(ids))
	for _, id := range ids {
		victim[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.collections[kind]
	kept := coll[:0:0]
	removed := 0
	for _, r := range coll {
		if victim[r.ID()] {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0
	}
	s.pushSnapshot(kind)
	s.revisions[kind]++
	s.collections[kind] = kept
	return removed
}

// Undo restores the most recent snapshot and reports which collection it
// belonged to. Returns ErrNothingToUndo on an empty stack.
func (s *Store) Undo() (core.Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return "", ErrNothingToUndo
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.collections[last.kind] = last.records
	s.revisions[last.kind]++
	return last.kind, nil
}

// UndoDepth returns the number of snapshots available.
func (s *Store) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// pushSnapshot deep-copies the pre-mutation collection onto the undo stack.
// Callers must hold s.mu.
func (s *Store) pushSnapshot(kind core.Kind) {
	s.undo = append(s.undo, snapshot{kind: kind, records: core.CloneAll(s.collections[kind])})
	if len(s.undo) > undoLimit {
		s.undo = s.undo[1:]
	}
}
