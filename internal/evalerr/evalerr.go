// Package evalerr defines the eight error kinds of spec.md §7, one type per
// kind, each carrying the structured context its kind needs plus a
// human-readable message — grounded on the teacher's CompileError/
// LexError/ParseError trio (internal/compiler), which use the same
// one-struct-per-phase-with-an-Error-method shape.
package evalerr

import (
	"fmt"
	"strings"

	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/value"
)

// UnboundVariable reports that Name had no binding visible at Pos, whether
// discovered during translation (free-variable snapshotting) or execution
// (a VarRef cell).
type UnboundVariable struct {
	Name string
	Pos  model.Position
}

func (e UnboundVariable) Error() string {
	return fmt.Sprintf("%s: unbound variable %q", e.Pos, e.Name)
}

// PathDiagnostic explains why one path of a function object rejected the
// arguments it was tried against.
type PathDiagnostic struct {
	Path   value.FunctionPath
	Reason string
}

// NoPatternMatch reports that none of a function object's paths accepted
// the given arguments. Diagnostics holds one entry per path attempted, in
// declared order, so the message can cite exactly which input pattern
// rejected which argument.
type NoPatternMatch struct {
	Pos         model.Position
	Args        []value.Object
	Diagnostics []PathDiagnostic
}

func (e NoPatternMatch) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: no path matched (", e.Pos)
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteString(")")
	for _, d := range e.Diagnostics {
		fmt.Fprintf(&b, "\n  %s: %s", d.Path.String(), d.Reason)
	}
	return b.String()
}

// ArityMismatch reports a call supplying a different argument count than a
// callee could ever accept at any of its paths.
type ArityMismatch struct {
	Pos      model.Position
	Expected int
	Got      int
}

func (e ArityMismatch) Error() string {
	return fmt.Sprintf("%s: arity mismatch: expected %d argument(s), got %d", e.Pos, e.Expected, e.Got)
}

// TypeMismatch reports a built-in's signature being violated in a way the
// pattern layer did not already catch. Defensive: well-typed patterns on
// every built-in should make this unreachable in practice.
type TypeMismatch struct {
	Pos      model.Position
	Expected string
	Got      string
}

func (e TypeMismatch) Error() string {
	return fmt.Sprintf("%s: type mismatch: expected %s, got %s", e.Pos, e.Expected, e.Got)
}

// ArithmeticErrorKind distinguishes the ArithmeticError variants.
type ArithmeticErrorKind int

const (
	DivisionByZero ArithmeticErrorKind = iota
	ModuloByZero
)

func (k ArithmeticErrorKind) String() string {
	if k == ModuloByZero {
		return "modulo by zero"
	}
	return "division by zero"
}

// ArithmeticError reports an arithmetic built-in invoked with operands that
// make the operation undefined.
type ArithmeticError struct {
	Pos  model.Position
	Kind ArithmeticErrorKind
}

func (e ArithmeticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
}

// DuplicateBinding reports a linear-pattern violation: the same variable
// name appearing twice within one pattern.
type DuplicateBinding struct {
	Pos  model.Position
	Name string
}

func (e DuplicateBinding) Error() string {
	return fmt.Sprintf("%s: variable %q bound more than once in one pattern", e.Pos, e.Name)
}

// MalformedAst reports an AST invariant broken, e.g. a function whose
// paths disagree on arity. Always a translation-time defect, never a
// user-recoverable runtime condition.
type MalformedAst struct {
	Pos     model.Position
	Message string
}

func (e MalformedAst) Error() string {
	return fmt.Sprintf("%s: malformed ast: %s", e.Pos, e.Message)
}

// ResourceExhausted reports that the evaluator's optional limit on the
// number of cells visited (Options.MaxCells) was tripped, guarding against runaway or unbounded
// recursive evaluation in an embedding host.
type ResourceExhausted struct {
	Limit int
}

func (e ResourceExhausted) Error() string {
	return fmt.Sprintf("evaluator exceeded cell limit of %d", e.Limit)
}
