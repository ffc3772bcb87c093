package store

import (
	"errors"
	"testing"

	"github.com/tine-lang/tine/internal/value"
)

func TestBindAndLookup(t *testing.T) {
	s := New()
	s.Bind("x", value.NewInt(1))
	got, ok := s.Lookup("x")
	if !ok || !got.Equal(value.NewInt(1)) {
		t.Fatalf("Lookup(x) = %v, ok=%v", got, ok)
	}
}

func TestPushScopeShadowsThenPopRestores(t *testing.T) {
	s := New()
	s.Bind("x", value.NewInt(1))
	s.PushScope()
	s.Bind("x", value.NewInt(2))
	got, _ := s.Lookup("x")
	if !got.Equal(value.NewInt(2)) {
		t.Fatalf("inner scope should shadow: got %v", got)
	}
	s.PopScope()
	got, _ = s.Lookup("x")
	if !got.Equal(value.NewInt(1)) {
		t.Fatalf("popping scope should restore outer binding: got %v", got)
	}
}

func TestAssignOverwritesExistingElseBindsNovel(t *testing.T) {
	s := New()
	idx := s.Bind("x", value.NewInt(1))
	s.Assign("x", value.NewInt(99))
	if got := s.Get(idx); !got.Equal(value.NewInt(99)) {
		t.Fatalf("Assign should overwrite the existing slot in place, got %v", got)
	}
	s.Assign("y", value.NewInt(5))
	got, ok := s.Lookup("y")
	if !ok || !got.Equal(value.NewInt(5)) {
		t.Fatalf("Assign should bind a novel name, got %v ok=%v", got, ok)
	}
}

func TestBindIndexProjectsExistingSlot(t *testing.T) {
	s := New()
	idx := s.Bind("x", value.NewInt(7))
	s.PushFrame()
	s.BindIndex("captured", idx)
	got, ok := s.Lookup("captured")
	if !ok || !got.Equal(value.NewInt(7)) {
		t.Fatalf("BindIndex should project the original slot, got %v ok=%v", got, ok)
	}
	s.Set(idx, value.NewInt(8))
	got, _ = s.Lookup("captured")
	if !got.Equal(value.NewInt(8)) {
		t.Fatal("projected binding should observe mutation through the shared slab index")
	}
}

func TestLookupAllFailsClosedOnFirstMissingName(t *testing.T) {
	s := New()
	s.Bind("a", value.NewInt(1))
	_, err := s.LookupAll([]string{"a", "nope"})
	var ue UnboundError
	if !errors.As(err, &ue) || ue.Name != "nope" {
		t.Fatalf("expected UnboundError{nope}, got %v", err)
	}
}

func TestFrameScopeIsolation(t *testing.T) {
	s := New()
	s.Bind("x", value.NewInt(1))
	s.PushFrame()
	if _, ok := s.Lookup("x"); ok {
		t.Fatal("a fresh call frame must not see the caller's bindings directly")
	}
	s.PopFrame()
	if _, ok := s.Lookup("x"); !ok {
		t.Fatal("popping the call frame should restore visibility of the outer frame")
	}
}
