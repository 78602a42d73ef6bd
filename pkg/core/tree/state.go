package tree

import (
	"maps"
	"slices"
)

// ExpandState records the user's expand/collapse choices.
//
// Paths without an entry are expanded. Only explicit user changes are stored,
// and a toggle back to the default removes the entry, so toggling twice leaves
// the state exactly as it was.
//
// ExpandState is not safe for concurrent use.
type ExpandState struct {
	expanded map[Path]bool
}

// NewExpandState returns an empty state with every node expanded.
func NewExpandState() *ExpandState {
	return &ExpandState{expanded: make(map[Path]bool)}
}

// Expanded reports whether the node at p shows its children.
func (s *ExpandState) Expanded(p Path) bool {
	if s == nil {
		return true
	}
	v, ok := s.expanded[p]
	return !ok || v
}

// Set stores an explicit flag for p.
func (s *ExpandState) Set(p Path, expanded bool) {
	if s.expanded == nil {
		s.expanded = make(map[Path]bool)
	}
	if expanded {
		delete(s.expanded, p)
		return
	}
	s.expanded[p] = false
}

// Toggle flips the flag of p and returns the new value.
func (s *ExpandState) Toggle(p Path) bool {
	next := !s.Expanded(p)
	s.Set(p, next)
	return next
}

// Collapsed returns the collapsed paths in sorted order.
func (s *ExpandState) Collapsed() []Path {
	if s == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(s.expanded))
}

// Clone returns an independent copy of s.
func (s *ExpandState) Clone() *ExpandState {
	if s == nil {
		return NewExpandState()
	}
	return &ExpandState{expanded: maps.Clone(s.expanded)}
}

// Len returns the number of explicitly collapsed paths.
func (s *ExpandState) Len() int {
	if s == nil {
		return 0
	}
	return len(s.expanded)
}
