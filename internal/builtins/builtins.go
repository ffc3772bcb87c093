// Package builtins registers the minimal native function set of spec
// §4.F into a store's global frame: integer arithmetic, boolean
// connectives, and the tracing identity function — grounded on the
// teacher's own builtins.go, which installs native functions into the VM's
// global namespace the same way, one registration call per name.
package builtins

import (
	"fmt"
	"io"

	"github.com/tine-lang/tine/internal/evalerr"
	"github.com/tine-lang/tine/internal/pattern"
	"github.com/tine-lang/tine/internal/store"
	"github.com/tine-lang/tine/internal/value"
)

// Install binds the built-in set into st's global frame. Must be called
// before any user code runs against st, and before any nested scopes are
// pushed (built-ins belong in the outermost layer).
func Install(st *store.Store, traceWriter io.Writer) {
	install(st, "+", intPair("a", "b"), arith(func(a, b int64) (int64, error) { return a + b, nil }))
	install(st, "-", intPair("a", "b"), arith(func(a, b int64) (int64, error) { return a - b, nil }))
	install(st, "*", intPair("a", "b"), arith(func(a, b int64) (int64, error) { return a * b, nil }))
	install(st, "/", intPair("a", "b"), arith(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, evalerr.ArithmeticError{Kind: evalerr.DivisionByZero}
		}
		return a / b, nil
	}))
	install(st, "%", intPair("a", "b"), arith(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, evalerr.ArithmeticError{Kind: evalerr.ModuloByZero}
		}
		return a % b, nil
	}))
	install(st, "&&", boolPair("a", "b"), logic(func(a, b bool) bool { return a && b }))
	install(st, "||", boolPair("a", "b"), logic(func(a, b bool) bool { return a || b }))
	install(st, "trace", []pattern.Pattern{pattern.Variable{Name: "x"}}, traceFn(traceWriter))
}

func intPattern(name string) pattern.Pattern {
	return pattern.Object{Tag: "Int", Children: []pattern.Pattern{pattern.Variable{Name: name}}}
}

func boolPattern(name string) pattern.Pattern {
	return pattern.Object{Tag: "Bool", Children: []pattern.Pattern{pattern.Variable{Name: name}}}
}

func intPair(a, b string) []pattern.Pattern  { return []pattern.Pattern{intPattern(a), intPattern(b)} }
func boolPair(a, b string) []pattern.Pattern { return []pattern.Pattern{boolPattern(a), boolPattern(b)} }

func install(st *store.Store, name string, inputs []pattern.Pattern, fn value.Native) {
	obj := value.NewFunction(&value.FunctionObject{
		Arity: len(inputs),
		Paths: []value.FunctionPath{{
			Input: inputs,
			Body:  value.NativeEvaluable{Fn: fn},
		}},
	})
	st.Bind(name, obj)
}

// arith adapts a checked int64 binary operation to a Native, reading its
// operands from the current scope under the conventional parameter names
// "a" and "b". Operand types are already guaranteed by the registered
// <Int a> <Int b> pattern; the type assertions here are defensive, not a
// real dispatch path (spec §7's TypeMismatch).
func arith(op func(a, b int64) (int64, error)) value.Native {
	return func(env value.NativeEnv) (value.Object, error) {
		a, ok := env.Arg("a")
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Int", Got: "<missing>"}
		}
		b, ok := env.Arg("b")
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Int", Got: "<missing>"}
		}
		ai, ok := a.AsInt()
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Int", Got: a.Tag}
		}
		bi, ok := b.AsInt()
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Int", Got: b.Tag}
		}
		r, err := op(ai, bi)
		if err != nil {
			return value.Object{}, err
		}
		return value.NewInt(r), nil
	}
}

func logic(op func(a, b bool) bool) value.Native {
	return func(env value.NativeEnv) (value.Object, error) {
		a, ok := env.Arg("a")
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Bool", Got: "<missing>"}
		}
		b, ok := env.Arg("b")
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Bool", Got: "<missing>"}
		}
		ab, ok := a.AsBool()
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Bool", Got: a.Tag}
		}
		bb, ok := b.AsBool()
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "Bool", Got: b.Tag}
		}
		return value.NewBool(op(ab, bb)), nil
	}
}

// traceFn is the unary identity that also writes its argument to w as a
// side effect, used by spec §8's left-to-right evaluation-order property
// test.
func traceFn(w io.Writer) value.Native {
	return func(env value.NativeEnv) (value.Object, error) {
		x, ok := env.Arg("x")
		if !ok {
			return value.Object{}, evalerr.TypeMismatch{Expected: "any", Got: "<missing>"}
		}
		if w != nil {
			fmt.Fprintln(w, x.String())
		}
		return x, nil
	}
}
