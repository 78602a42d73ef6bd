package tree

import (
	"slices"
	"testing"
)

func TestExpandStateDefaults(t *testing.T) {
	var nilState *ExpandState
	if !nilState.Expanded("a") {
		t.Error("nil state should report expanded")
	}
	if !NewExpandState().Expanded("a/b") {
		t.Error("new state should report expanded")
	}
}

func TestExpandStateToggle(t *testing.T) {
	s := NewExpandState()

	if got := s.Toggle("a/b"); got {
		t.Errorf("first Toggle() = %v, want false", got)
	}
	if s.Expanded("a/b") {
		t.Error("a/b should be collapsed")
	}
	if got := s.Toggle("a/b"); !got {
		t.Errorf("second Toggle() = %v, want true", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after toggling back", s.Len())
	}
}

func TestExpandStateCloneAndCollapsed(t *testing.T) {
	s := NewExpandState()
	s.Set("b", false)
	s.Set("a", false)

	c := s.Clone()
	c.Set("a", true)

	if got := s.Collapsed(); !slices.Equal(got, []Path{"a", "b"}) {
		t.Errorf("Collapsed() = %v, want [a b]", got)
	}
	if got := c.Collapsed(); !slices.Equal(got, []Path{"b"}) {
		t.Errorf("clone Collapsed() = %v, want [b]", got)
	}
}

func TestPath(t *testing.T) {
	p := RootPath("app").Child("todos/filtered").Child("x")

	if got, want := p.Names(), []string{"app", "todos/filtered", "x"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if p.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", p.Depth())
	}
	if got := p.Parent(); got != RootPath("app").Child("todos/filtered") {
		t.Errorf("Parent() = %q", got)
	}
	if RootPath("app").Parent() != "" {
		t.Error("root Parent() should be empty")
	}
}
