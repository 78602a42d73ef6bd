// Package history holds the snapshot history of a reactive-state graph.
//
// A [History] is an ordered sequence of immutable [Snapshot] values; the
// index of a snapshot is its position in time. Each snapshot maps node names
// (atoms, selectors, components) to a [Record] listing the node's outgoing
// dependencies.
//
// Snapshots keep their entries in insertion order. The first entry is the
// fallback root when a requested root is absent, so the order read from a
// history file is preserved exactly (see [Snapshot.UnmarshalJSON] and
// [Snapshot.UnmarshalYAML]) instead of relying on map iteration.
//
// # Usage
//
//	h, err := history.Load("testdata/history.json")
//	if err != nil {
//	    return err
//	}
//	snap, err := h.Get(3)
package history

import (
	"github.com/matzehuels/atomtree/pkg/errors"
)

// Record is the raw capture of one node in a snapshot.
type Record struct {
	// Dependencies lists the names this node points at, in capture order.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// Atoms lists the atoms associated with the node (components only).
	Atoms []string `json:"atoms,omitempty" yaml:"atoms,omitempty"`
}

// Entry is a single (name, record) pair of a snapshot.
type Entry struct {
	Name   string
	Record Record
}

// Snapshot is one immutable version of the dependency graph.
// The zero value is an empty snapshot ready to use.
type Snapshot struct {
	entries []Entry
	index   map[string]int
}

// NewSnapshot creates a snapshot from entries, keeping their order.
// A repeated name replaces the earlier record but keeps its position.
func NewSnapshot(entries ...Entry) *Snapshot {
	s := &Snapshot{}
	for _, e := range entries {
		s.add(e.Name, e.Record)
	}
	return s
}

func (s *Snapshot) add(name string, r Record) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.entries[i].Record = r
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, Entry{Name: name, Record: r})
}

// Len returns the number of nodes in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Record returns the record stored under name.
func (s *Snapshot) Record(name string) (Record, bool) {
	if s == nil {
		return Record{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Record{}, false
	}
	return s.entries[i].Record, true
}

// Node returns the dependencies and atom tags of name.
func (s *Snapshot) Node(name string) (deps, tags []string, ok bool) {
	r, ok := s.Record(name)
	return r.Dependencies, r.Atoms, ok
}

// First returns the name of the first entry in insertion order.
func (s *Snapshot) First() (string, bool) {
	if s.Len() == 0 {
		return "", false
	}
	return s.entries[0].Name, true
}

// Names returns all node names in insertion order.
func (s *Snapshot) Names() []string {
	names := make([]string, 0, s.Len())
	if s == nil {
		return names
	}
	for _, e := range s.entries {
		names = append(names, e.Name)
	}
	return names
}

// Entries returns a copy of the snapshot's entries in insertion order.
func (s *Snapshot) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// History is the time-indexed sequence of snapshots.
type History struct {
	snapshots []*Snapshot
}

// New creates a history from snapshots. Nil snapshots are stored as empty ones.
func New(snapshots ...*Snapshot) *History {
	h := &History{snapshots: make([]*Snapshot, 0, len(snapshots))}
	for _, s := range snapshots {
		h.Append(s)
	}
	return h
}

// Append adds a new latest snapshot.
func (h *History) Append(s *Snapshot) {
	if s == nil {
		s = &Snapshot{}
	}
	h.snapshots = append(h.snapshots, s)
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.snapshots)
}

// Get returns the snapshot at index.
func (h *History) Get(index int) (*Snapshot, error) {
	if index < 0 || index >= h.Len() {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %d out of range [0, %d)", index, h.Len())
	}
	return h.snapshots[index], nil
}

// Clamp maps any index onto the valid range, returning -1 for an empty history.
func (h *History) Clamp(index int) int {
	switch n := h.Len(); {
	case n == 0:
		return -1
	case index < 0:
		return 0
	case index >= n:
		return n - 1
	default:
		return index
	}
}

// Latest returns the most recent snapshot, or an empty one.
func (h *History) Latest() *Snapshot {
	if h.Len() == 0 {
		return &Snapshot{}
	}
	return h.snapshots[len(h.snapshots)-1]
}
