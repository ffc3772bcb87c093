package model

import "github.com/tine-lang/tine/internal/pattern"

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() Position
	End() Position
}

// Expr is the interface implemented by every expression node. The
// evaluator's translator switches on the concrete type exhaustively.
type Expr interface {
	Node
	exprNode()
}

// IntLit is an integer literal.
type IntLit struct {
	Value    int64
	StartPos Position
	EndPos   Position
}

func (i *IntLit) Pos() Position { return i.StartPos }
func (i *IntLit) End() Position { return i.EndPos }
func (i *IntLit) exprNode()     {}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value    bool
	StartPos Position
	EndPos   Position
}

func (b *BoolLit) Pos() Position { return b.StartPos }
func (b *BoolLit) End() Position { return b.EndPos }
func (b *BoolLit) exprNode()     {}

// Var is a reference to a bound identifier.
type Var struct {
	Name     string
	StartPos Position
	EndPos   Position
}

func (v *Var) Pos() Position { return v.StartPos }
func (v *Var) End() Position { return v.EndPos }
func (v *Var) exprNode()     {}

// Call is a function application; the surface parser also desugars binary
// and boolean operators into a Call of the corresponding built-in name, so
// this is the only application node the evaluator ever sees.
type Call struct {
	Callee Expr
	Args   []Expr
	EndPos Position
}

func (c *Call) Pos() Position { return c.Callee.Pos() }
func (c *Call) End() Position { return c.EndPos }
func (c *Call) exprNode()     {}

// Path is one alternative of a multi-path function definition: a tuple of
// input patterns, an (unchecked, §9) output pattern, and a body expression.
type Path struct {
	Input    []pattern.Pattern
	Output   pattern.Pattern
	Body     Expr
	StartPos Position
	EndPos   Position
}

func (p *Path) Pos() Position { return p.StartPos }
func (p *Path) End() Position { return p.EndPos }

// Arity returns the number of input patterns, i.e. the path's arity.
func (p *Path) Arity() int { return len(p.Input) }

// FunDef is a function definition: a non-empty list of paths, all of which
// must share the same arity (MalformedAst otherwise).
type FunDef struct {
	Paths    []*Path
	StartPos Position
	EndPos   Position
}

func (f *FunDef) Pos() Position { return f.StartPos }
func (f *FunDef) End() Position { return f.EndPos }
func (f *FunDef) exprNode()     {}

// LetIn destructures Value against Pattern and evaluates Body with the
// resulting bindings in scope.
type LetIn struct {
	Pattern  pattern.Pattern
	Value    Expr
	Body     Expr
	StartPos Position
	EndPos   Position
}

func (l *LetIn) Pos() Position { return l.StartPos }
func (l *LetIn) End() Position { return l.EndPos }
func (l *LetIn) exprNode()     {}
