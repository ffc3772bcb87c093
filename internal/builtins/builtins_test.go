package builtins

import (
	"bytes"
	"errors"
	"testing"

	"github.com/tine-lang/tine/internal/evalerr"
	"github.com/tine-lang/tine/internal/store"
	"github.com/tine-lang/tine/internal/value"
)

func TestDivisionByZeroProducesArithmeticError(t *testing.T) {
	st := store.New()
	Install(st, &bytes.Buffer{})
	div, ok := st.Lookup("/")
	if !ok {
		t.Fatal("expected / to be installed")
	}
	fn, _ := div.AsFunction()
	match, err := value.MatchFunction(fn, []value.Object{value.NewInt(1), value.NewInt(0)})
	if err != nil {
		t.Fatalf("matching should succeed, the zero check happens inside the native: %v", err)
	}
	native, ok := match.Path.Body.(value.NativeEvaluable)
	if !ok {
		t.Fatal("expected a native body")
	}
	_, err = native.Fn(fakeEnv(match.Bindings))
	var ae evalerr.ArithmeticError
	if !errors.As(err, &ae) || ae.Kind != evalerr.DivisionByZero {
		t.Fatalf("expected DivisionByZero, got %v", err)
	}
}

func TestTraceIsIdentityAndWritesOutput(t *testing.T) {
	var buf bytes.Buffer
	st := store.New()
	Install(st, &buf)
	tr, _ := st.Lookup("trace")
	fn, _ := tr.AsFunction()
	match, err := value.MatchFunction(fn, []value.Object{value.NewInt(4)})
	if err != nil {
		t.Fatal(err)
	}
	native := match.Path.Body.(value.NativeEvaluable)
	result, err := native.Fn(fakeEnv(match.Bindings))
	if err != nil {
		t.Fatal(err)
	}
	if !result.Equal(value.NewInt(4)) {
		t.Fatalf("trace should be the identity, got %v", result)
	}
	if buf.String() != "(Int 4)\n" {
		t.Fatalf("trace output = %q", buf.String())
	}
}

type fakeEnv value.Bindings

func (e fakeEnv) Arg(name string) (value.Object, bool) {
	v, ok := e[name]
	return v, ok
}
