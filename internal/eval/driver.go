package eval

import (
	"errors"
	"fmt"

	"github.com/tine-lang/tine/internal/evalerr"
	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/pattern"
	"github.com/tine-lang/tine/internal/store"
	"github.com/tine-lang/tine/internal/value"
)

// Options configures a single Run. The zero value runs with no cell limit.
type Options struct {
	// MaxCells caps the number of cells the driver loop may visit before
	// it gives up with ResourceExhausted. Zero means unlimited.
	MaxCells int

	// StrictArity turns under-application into an ArityMismatch instead of
	// building a residual (curried) function object. Off by default: the
	// surface language gets currying for free.
	StrictArity bool

	// CheckOutputPatterns, when set, has FunCleanup match a path's produced
	// value against its (currently always unparsed, so always nil) Output
	// pattern, raising NoPatternMatch on failure. Documented extension
	// point for a future surface syntax that can express output patterns.
	CheckOutputPatterns bool
}

// Driver owns the cell stack, the value stack, and the scope/store. It is
// constructed fresh for each top-level Run.
type Driver struct {
	store     *store.Store
	cellStack []Cell
	values    []value.Object
	opts      Options
	cellCount int
}

// Arg implements value.NativeEnv by reading name out of the current scope.
func (d *Driver) Arg(name string) (value.Object, bool) {
	return d.store.Lookup(name)
}

// Run evaluates expr to completion against st, which must already have any
// built-ins installed in its global frame. On success the cell stack is
// empty and exactly one value is returned (spec §8 invariant 1).
func Run(expr model.Expr, st *store.Store, opts Options) (value.Object, error) {
	d := &Driver{store: st, opts: opts}
	cell, err := d.translate(expr)
	if err != nil {
		return value.Object{}, err
	}
	d.pushCell(cell)
	for len(d.cellStack) > 0 {
		if d.opts.MaxCells > 0 {
			d.cellCount++
			if d.cellCount > d.opts.MaxCells {
				return value.Object{}, evalerr.ResourceExhausted{Limit: d.opts.MaxCells}
			}
		}
		c := d.popCell()
		if err := d.visit(c); err != nil {
			return value.Object{}, err
		}
	}
	if len(d.values) != 1 {
		return value.Object{}, fmt.Errorf("eval: final value stack has length %d, want 1", len(d.values))
	}
	return d.values[0], nil
}

func (d *Driver) pushCell(c Cell)          { d.cellStack = append(d.cellStack, c) }
func (d *Driver) popCell() Cell {
	n := len(d.cellStack) - 1
	c := d.cellStack[n]
	d.cellStack = d.cellStack[:n]
	return c
}

func (d *Driver) pushValue(o value.Object) { d.values = append(d.values, o) }
func (d *Driver) popValue() value.Object {
	n := len(d.values) - 1
	v := d.values[n]
	d.values = d.values[:n]
	return v
}

// popArgs pops n values and returns them in declared order (arg1..argN);
// the value stack holds them with the last-declared argument on top.
func (d *Driver) popArgs(n int) []value.Object {
	out := make([]value.Object, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = d.popValue()
	}
	return out
}

func reverseExprs(in []model.Expr) []model.Expr {
	out := make([]model.Expr, len(in))
	for i, e := range in {
		out[len(in)-1-i] = e
	}
	return out
}

// translate converts an AST node to its initial cell (spec §4.E's
// "Translator"). Building a FunDef's function object is the only case that
// can fail: its paths' free variables must all resolve in the current
// scope, or translation fails with UnboundVariable.
func (d *Driver) translate(e model.Expr) (Cell, error) {
	switch n := e.(type) {
	case *model.IntLit:
		return LiteralCell{Value: value.NewInt(n.Value)}, nil
	case *model.BoolLit:
		return LiteralCell{Value: value.NewBool(n.Value)}, nil
	case *model.Var:
		return VarRefCell{Name: n.Name, Pos: n.StartPos}, nil
	case *model.Call:
		return FunInitCell{Callee: n.Callee, Args: reverseExprs(n.Args), Pos: n.Pos()}, nil
	case *model.FunDef:
		fn, err := d.buildFunction(n)
		if err != nil {
			return nil, err
		}
		return LiteralCell{Value: value.NewFunction(fn)}, nil
	case *model.LetIn:
		return LetInitCell{Pattern: n.Pattern, Value: n.Value, Body: n.Body, Pos: n.StartPos}, nil
	default:
		return nil, evalerr.MalformedAst{Pos: e.Pos(), Message: fmt.Sprintf("unhandled expression type %T", e)}
	}
}

// buildFunction constructs the function object a FunDef literal evaluates
// to, snapshotting each path's free variables out of the defining scope.
func (d *Driver) buildFunction(n *model.FunDef) (*value.FunctionObject, error) {
	if len(n.Paths) == 0 {
		return nil, evalerr.MalformedAst{Pos: n.StartPos, Message: "function has no paths"}
	}
	arity := n.Paths[0].Arity()
	paths := make([]value.FunctionPath, len(n.Paths))
	for i, p := range n.Paths {
		if p.Arity() != arity {
			return nil, evalerr.MalformedAst{Pos: p.StartPos, Message: "function paths disagree on arity"}
		}
		bound := patternVarSet(p.Input)
		var needed []string
		for _, fv := range freeVars(p.Body) {
			if !bound[fv] {
				needed = append(needed, fv)
			}
		}
		snapshot, err := d.store.LookupAll(needed)
		if err != nil {
			var ue store.UnboundError
			if errors.As(err, &ue) {
				return nil, evalerr.UnboundVariable{Name: ue.Name, Pos: p.StartPos}
			}
			return nil, err
		}
		paths[i] = value.FunctionPath{
			Input:  p.Input,
			Output: p.Output,
			Body:   value.Closure{Body: p.Body, Snapshot: snapshot},
		}
	}
	return &value.FunctionObject{Paths: paths, Arity: arity}, nil
}

// visit performs one cell's effect, per spec §4.E's nine visit rules.
func (d *Driver) visit(c Cell) error {
	switch cell := c.(type) {
	case LiteralCell:
		d.pushValue(cell.Value)
		return nil

	case VarRefCell:
		v, ok := d.store.Lookup(cell.Name)
		if !ok {
			return evalerr.UnboundVariable{Name: cell.Name, Pos: cell.Pos}
		}
		d.pushValue(v)
		return nil

	case FunInitCell:
		d.pushCell(FunArgsCell{Args: cell.Args, Pos: cell.Pos})
		calleeCell, err := d.translate(cell.Callee)
		if err != nil {
			return err
		}
		d.pushCell(calleeCell)
		return nil

	case FunArgsCell:
		callee := d.popValue()
		fn, ok := callee.AsFunction()
		if !ok {
			return evalerr.TypeMismatch{Pos: cell.Pos, Expected: "Function", Got: callee.Tag}
		}
		n := len(cell.Args)
		applied := fn.Arity
		if n < applied {
			applied = n
		}
		if applied < n {
			// over-application: the excess, later-declared args are
			// re-applied to this call's result once it returns.
			remaining := cell.Args[:n-applied]
			d.pushCell(FunArgsCell{Args: remaining, Pos: cell.Pos})
		}
		d.pushCell(FunCallCell{Fn: fn, N: applied, Pos: cell.Pos})
		toEval := cell.Args[n-applied:]
		for _, argExpr := range toEval {
			argCell, err := d.translate(argExpr)
			if err != nil {
				return err
			}
			d.pushCell(argCell)
		}
		return nil

	case FunCallCell:
		args := d.popArgs(cell.N)
		if cell.N < cell.Fn.Arity {
			if d.opts.StrictArity {
				return evalerr.ArityMismatch{Pos: cell.Pos, Expected: cell.Fn.Arity, Got: cell.N}
			}
			residual := d.curry(cell.Fn, args)
			d.pushValue(value.NewFunction(residual))
			return nil
		}
		match, err := value.MatchFunction(cell.Fn, args)
		if err != nil {
			return translateMatchError(err, cell.Pos)
		}
		d.store.PushFrame()
		d.pushCell(FunCleanupCell{Output: match.Path.Output, Pos: cell.Pos})
		switch body := match.Path.Body.(type) {
		case value.Closure:
			for name, idx := range body.Snapshot {
				d.store.BindIndex(name, idx)
			}
			for name, obj := range match.Bindings {
				d.store.Bind(name, obj)
			}
			bodyCell, err := d.translate(body.Body)
			if err != nil {
				return err
			}
			d.pushCell(bodyCell)
		case value.NativeEvaluable:
			for name, obj := range match.Bindings {
				d.store.Bind(name, obj)
			}
			result, err := body.Fn(d)
			if err != nil {
				return err
			}
			d.pushValue(result)
		default:
			return evalerr.MalformedAst{Pos: cell.Pos, Message: fmt.Sprintf("unhandled evaluable type %T", body)}
		}
		return nil

	case FunCleanupCell:
		if d.opts.CheckOutputPatterns && cell.Output != nil {
			result := d.values[len(d.values)-1]
			if _, err := value.Match(cell.Output, result, value.Bindings{}); err != nil {
				d.store.PopFrame()
				return translateOutputError(err, cell.Pos, cell.Output, result)
			}
		}
		d.store.PopFrame()
		return nil

	case LetInitCell:
		d.pushCell(LetBindCell{Pattern: cell.Pattern, Body: cell.Body, Pos: cell.Pos})
		valueCell, err := d.translate(cell.Value)
		if err != nil {
			return err
		}
		d.pushCell(valueCell)
		return nil

	case LetBindCell:
		v := d.popValue()
		d.store.PushScope()
		bindings, err := value.Match(cell.Pattern, v, value.Bindings{})
		if err != nil {
			return translateBindError(err, cell.Pos)
		}
		for name, obj := range bindings {
			d.store.Assign(name, obj)
		}
		d.pushCell(ScopePopCell{})
		bodyCell, err := d.translate(cell.Body)
		if err != nil {
			return err
		}
		d.pushCell(bodyCell)
		return nil

	case ScopePopCell:
		d.store.PopScope()
		return nil

	default:
		return fmt.Errorf("eval: unhandled cell type %T", c)
	}
}

// curry builds a residual function object for under-application: a single
// fresh path of arity fn.Arity-len(supplied) whose body re-applies the
// already-supplied arguments, plus whatever the residual function is next
// given, to the original function. This reuses the ordinary FunInit/
// FunArgs/FunCall cells with no extra evaluable variant and no recursion
// into a nested driver loop.
func (d *Driver) curry(fn *value.FunctionObject, supplied []value.Object) *value.FunctionObject {
	remaining := fn.Arity - len(supplied)
	snapshot := map[string]int{}
	snapshot["$fn"] = d.store.Alloc(value.NewFunction(fn))

	args := make([]model.Expr, 0, fn.Arity)
	for i, v := range supplied {
		name := fmt.Sprintf("$arg%d", i)
		snapshot[name] = d.store.Alloc(v)
		args = append(args, &model.Var{Name: name})
	}
	inputs := make([]pattern.Pattern, remaining)
	for i := 0; i < remaining; i++ {
		name := fmt.Sprintf("$p%d", i)
		inputs[i] = pattern.Variable{Name: name}
		args = append(args, &model.Var{Name: name})
	}
	body := &model.Call{Callee: &model.Var{Name: "$fn"}, Args: args}
	path := value.FunctionPath{
		Input: inputs,
		Body:  value.Closure{Body: body, Snapshot: snapshot},
	}
	return &value.FunctionObject{Paths: []value.FunctionPath{path}, Arity: remaining}
}

func translateMatchError(err error, pos model.Position) error {
	var nm value.NoPathMatchedError
	if errors.As(err, &nm) {
		diags := make([]evalerr.PathDiagnostic, len(nm.Attempted))
		for i, p := range nm.Attempted {
			diags[i] = evalerr.PathDiagnostic{Path: p, Reason: pathMismatchReason(p, nm.Args)}
		}
		return evalerr.NoPatternMatch{Pos: pos, Args: nm.Args, Diagnostics: diags}
	}
	return translateBindError(err, pos)
}

func translateBindError(err error, pos model.Position) error {
	var dup value.DuplicateVariableError
	if errors.As(err, &dup) {
		return evalerr.DuplicateBinding{Pos: pos, Name: dup.Name}
	}
	return err
}

// pathMismatchReason names the first input pattern of path that fails to
// accept the corresponding argument, for a NoPatternMatch diagnostic.
func pathMismatchReason(path value.FunctionPath, args []value.Object) string {
	if len(path.Input) != len(args) {
		return fmt.Sprintf("expects %d argument(s), got %d", len(path.Input), len(args))
	}
	for i, in := range path.Input {
		if _, err := value.Match(in, args[i], value.Bindings{}); err != nil {
			return fmt.Sprintf("argument %d (%s) does not match %s", i+1, args[i], in)
		}
	}
	return "did not match"
}

// translateOutputError reports a path's produced value failing its own
// (opt-in checked) output pattern as a NoPatternMatch naming that one path.
func translateOutputError(err error, pos model.Position, output pattern.Pattern, result value.Object) error {
	reason := fmt.Sprintf("result %s does not match output pattern %s", result, output)
	return evalerr.NoPatternMatch{
		Pos:  pos,
		Args: []value.Object{result},
		Diagnostics: []evalerr.PathDiagnostic{{
			Path:   value.FunctionPath{Output: output},
			Reason: reason,
		}},
	}
}
