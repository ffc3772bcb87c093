// Package eval is the explicit-stack driver of spec §4.E: a cell stack of
// pending work, a value stack of results flowing upward, and the
// scope/store (internal/store) they share — grounded on the teacher's VM
// dispatch loop (internal/runtime/vm_dispatch.go's `for ... switch op`),
// reshaped from a bytecode instruction pointer into a work-item stack so
// user recursion never grows the host call stack.
package eval

import (
	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/pattern"
	"github.com/tine-lang/tine/internal/value"
)

// Cell is the closed set of nine work items the driver loop understands.
type Cell interface {
	isCell()
}

// LiteralCell pushes an already-constructed value, used both for literal
// AST nodes and for a FunDef's freshly built function object.
type LiteralCell struct {
	Value value.Object
}

func (LiteralCell) isCell() {}

// VarRefCell looks up Name in the current scope and pushes the bound
// object.
type VarRefCell struct {
	Name string
	Pos  model.Position
}

func (VarRefCell) isCell() {}

// FunInitCell starts a call: Args is already in reversed declared order
// (last-declared first), matching the convention FunArgsCell expects.
type FunInitCell struct {
	Callee model.Expr
	Args   []model.Expr
	Pos    model.Position
}

func (FunInitCell) isCell() {}

// FunArgsCell pops the callee value pushed by FunInitCell's callee cell and
// arranges evaluation of the first-declared arguments the callee can take.
// Args is in reversed declared order, so those are the tail of the slice.
type FunArgsCell struct {
	Args []model.Expr
	Pos  model.Position
}

func (FunArgsCell) isCell() {}

// FunCallCell pops N already-evaluated argument values and dispatches them
// against Fn.
type FunCallCell struct {
	Fn  *value.FunctionObject
	N   int
	Pos model.Position
}

func (FunCallCell) isCell() {}

// FunCleanupCell pops the scope frame FunCallCell pushed, once the call's
// body has fully resolved to a value. Output/Pos are only consulted when
// Options.CheckOutputPatterns is set.
type FunCleanupCell struct {
	Output pattern.Pattern
	Pos    model.Position
}

func (FunCleanupCell) isCell() {}

// LetInitCell starts a let-binding: evaluate Value, then match Pattern
// against it before evaluating Body.
type LetInitCell struct {
	Pattern pattern.Pattern
	Value   model.Expr
	Body    model.Expr
	Pos     model.Position
}

func (LetInitCell) isCell() {}

// LetBindCell pops the value LetInitCell's value cell produced, matches it
// against Pattern, and arranges evaluation of Body in the extended scope.
type LetBindCell struct {
	Pattern pattern.Pattern
	Body    model.Expr
	Pos     model.Position
}

func (LetBindCell) isCell() {}

// ScopePopCell discards the binding layer LetBindCell opened.
type ScopePopCell struct{}

func (ScopePopCell) isCell() {}
