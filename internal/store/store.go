// Package store implements the evaluator's scope-stack/value-slab memory
// model (spec §4.D): an append-only slab of objects addressed by stable
// integer index, and a stack of scope frames each holding a stack of
// binding layers, grounded on the teacher interpreter's own VM frame stack
// (internal/runtime/vm.go's []*Frame plus each Frame's Locals array) —
// reshaped here so that bindings outlive the frame that created them,
// which a closure's captured free variables require.
package store

import (
	"errors"
	"fmt"

	"github.com/tine-lang/tine/internal/value"
)

// ErrUnbound is wrapped by Store.LookupAll when a name a closure wants to
// capture is not visible in the defining scope.
var ErrUnbound = errors.New("store: unbound variable")

// UnboundError names the specific identifier LookupAll could not find.
type UnboundError struct {
	Name string
}

func (e UnboundError) Error() string { return fmt.Sprintf("store: unbound variable %q", e.Name) }
func (e UnboundError) Unwrap() error { return ErrUnbound }

// layer is one set of bindings introduced together, e.g. by a single
// LetIn's pattern or a function path's input patterns. name -> slab index.
type layer map[string]int

// Frame is one call's worth of scope: a stack of layers, innermost last.
// Pushed on function call, popped on return.
type Frame struct {
	layers []layer
}

func newFrame() *Frame {
	return &Frame{layers: []layer{{}}}
}

func (f *Frame) top() layer {
	return f.layers[len(f.layers)-1]
}

// pushScope opens a new, empty binding layer on top of f, used for LetIn's
// body. A matched function path's parameters are bound into the initial
// layer of the fresh frame its call pushes instead.
func (f *Frame) pushScope() {
	f.layers = append(f.layers, layer{})
}

// popScope discards the innermost binding layer. Callers must not pop the
// frame's initial layer.
func (f *Frame) popScope() {
	f.layers = f.layers[:len(f.layers)-1]
}

func (f *Frame) lookup(name string) (int, bool) {
	for i := len(f.layers) - 1; i >= 0; i-- {
		if idx, ok := f.layers[i][name]; ok {
			return idx, true
		}
	}
	return 0, false
}

// Store is the evaluator's whole memory: an append-only slab of objects
// (indices are stable for the Store's lifetime, so a closure snapshot can
// hold them across scope pops) plus a stack of active frames.
type Store struct {
	slab   []value.Object
	frames []*Frame
}

// New returns a Store with a single global frame, ready for built-ins to be
// installed into via Bind before any evaluation begins.
func New() *Store {
	s := &Store{}
	s.frames = append(s.frames, newFrame())
	return s
}

// Current is the innermost active frame.
func (s *Store) Current() *Frame {
	return s.frames[len(s.frames)-1]
}

// PushFrame opens a new call frame, used when a function path's body begins
// evaluating. The new frame starts with one empty layer.
func (s *Store) PushFrame() {
	s.frames = append(s.frames, newFrame())
}

// PopFrame discards the innermost call frame. The global frame (index 0)
// must never be popped.
func (s *Store) PopFrame() {
	s.frames = s.frames[:len(s.frames)-1]
}

// PushScope opens a new binding layer in the current frame, for LetIn.
func (s *Store) PushScope() {
	s.Current().pushScope()
}

// PopScope discards the innermost binding layer of the current frame.
func (s *Store) PopScope() {
	s.Current().popScope()
}

// Alloc appends o to the slab without binding any name to it, returning
// its stable index. Used to stash values a synthetic closure's snapshot
// will reference directly by index, bypassing name resolution entirely.
func (s *Store) Alloc(o value.Object) int {
	idx := len(s.slab)
	s.slab = append(s.slab, o)
	return idx
}

// Bind allocates a fresh slab slot for o and binds name to it in the
// current frame's innermost layer, returning that index.
func (s *Store) Bind(name string, o value.Object) int {
	idx := s.Alloc(o)
	s.Current().top()[name] = idx
	return idx
}

// Assign implements spec §4.D's resolving-overwrites/novel-allocates rule:
// if name already resolves somewhere in the current frame, its slab slot is
// overwritten in place; otherwise a fresh slot is bound in the current
// layer.
func (s *Store) Assign(name string, o value.Object) {
	if idx, ok := s.Current().lookup(name); ok {
		s.slab[idx] = o
		return
	}
	s.Bind(name, o)
}

// BindIndex binds name to an already-existing slab index in the current
// frame's innermost layer, without allocating a new slot. A closure's
// snapshot is installed this way: the captured indices are projected
// directly into the new frame rather than copied (spec §4.E), so that a
// mutation visible through one name stays visible through the other.
func (s *Store) BindIndex(name string, idx int) {
	s.Current().top()[name] = idx
}

// Lookup searches the current frame's layers, innermost first, for name.
func (s *Store) Lookup(name string) (value.Object, bool) {
	idx, ok := s.Current().lookup(name)
	if !ok {
		return value.Object{}, false
	}
	return s.slab[idx], true
}

// LookupIndex is Lookup but returns the slab index instead of the value.
func (s *Store) LookupIndex(name string) (int, bool) {
	return s.Current().lookup(name)
}

// LookupAll resolves every name in names against the current frame,
// returning a snapshot suitable for Closure.Snapshot. It fails closed: any
// missing name aborts the whole snapshot, since a closure with a dangling
// free variable could never be called safely.
func (s *Store) LookupAll(names []string) (map[string]int, error) {
	out := make(map[string]int, len(names))
	for _, n := range names {
		idx, ok := s.Current().lookup(n)
		if !ok {
			return nil, UnboundError{Name: n}
		}
		out[n] = idx
	}
	return out, nil
}

// Get reads the slab slot at idx directly, without going through a name
// lookup.
func (s *Store) Get(idx int) value.Object {
	return s.slab[idx]
}

// Set overwrites the slab slot at idx. Objects themselves are immutable;
// Set exists for rebinding a name to a new object value in place (e.g. a
// future mutable-reference extension), not for mutating an Object in place.
func (s *Store) Set(idx int, o value.Object) {
	s.slab[idx] = o
}
