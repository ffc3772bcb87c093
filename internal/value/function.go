package value

import (
	"strconv"
	"strings"

	"github.com/tine-lang/tine/internal/model"
	"github.com/tine-lang/tine/internal/pattern"
)

// Bindings maps identifiers to the objects a successful match bound them
// to.
type Bindings map[string]Object

// NativeEnv is the narrow interface a Native evaluable uses to read its
// already-matched parameters out of the current scope. It is satisfied by
// the evaluator's driver; defining it here (rather than depending on the
// evaluator package) keeps value free of a cycle and lets built-ins be
// described purely in terms of argument names.
type NativeEnv interface {
	Arg(name string) (Object, bool)
}

// Native is an action that reads named arguments from the current scope
// and produces a result, per spec §3's "Native" evaluable variant.
type Native func(env NativeEnv) (Object, error)

// Evaluable is the sum of Closure and Native (spec §3). It is what a
// function path's body actually is once matched.
type Evaluable interface {
	isEvaluable()
}

// Closure is a body AST plus a binding snapshot: a mapping from captured
// free identifiers to store indices valid in the defining scope (spec §3).
type Closure struct {
	Body     model.Expr
	Snapshot map[string]int
}

func (Closure) isEvaluable() {}

// NativeEvaluable adapts a Native action to the Evaluable interface.
type NativeEvaluable struct {
	Fn Native
}

func (NativeEvaluable) isEvaluable() {}

// FunctionPath is one alternative of a multi-path function: input
// patterns, an (unchecked, §9) output pattern, and a body evaluable.
type FunctionPath struct {
	Input  []pattern.Pattern
	Output pattern.Pattern
	Body   Evaluable
}

// Arity is the number of input patterns.
func (p FunctionPath) Arity() int { return len(p.Input) }

func (p FunctionPath) String() string {
	parts := make([]string, len(p.Input))
	for i, in := range p.Input {
		parts[i] = in.String()
	}
	out := "_"
	if p.Output != nil {
		out = p.Output.String()
	}
	return "Path " + strings.Join(parts, " ") + " => " + out
}

// FunctionObject is a multi-path function with a fixed arity; every path
// must agree on arity (MalformedAst otherwise, checked at construction by
// the translator, not here).
type FunctionObject struct {
	Paths []FunctionPath
	Arity int
}

func (f *FunctionObject) String() string {
	parts := make([]string, len(f.Paths))
	for i, p := range f.Paths {
		parts[i] = p.String()
	}
	return "Function/" + strconv.Itoa(f.Arity) + " " + strings.Join(parts, " | ")
}
