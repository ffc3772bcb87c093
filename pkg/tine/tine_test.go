package tine

import (
	"bytes"
	"testing"

	"github.com/tine-lang/tine/internal/pattern"
	"github.com/tine-lang/tine/internal/value"
)

func TestRunConvenienceFunction(t *testing.T) {
	got, err := Run("let x := 5 in x * (x + 1)")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(value.NewInt(30)) {
		t.Fatalf("got %v, want 30", got)
	}
}

func TestStateReuseSharesBuiltinsNotBindings(t *testing.T) {
	state := NewState()
	defer state.Close()
	if _, err := state.Run("let x := 1 in x"); err != nil {
		t.Fatal(err)
	}
	// A name bound inside one Run's let must not leak into the next.
	if _, err := state.Run("x"); err == nil {
		t.Fatal("expected x to be unbound in a fresh top-level Run")
	}
}

func TestStateClosedRejectsFurtherUse(t *testing.T) {
	state := NewState()
	state.Close()
	if _, err := state.Run("1"); err == nil {
		t.Fatal("expected an error running on a closed State")
	}
}

func TestRegisterAddsCallableNative(t *testing.T) {
	state := NewState()
	defer state.Close()
	err := state.Register("double", func(env value.NativeEnv) (value.Object, error) {
		x, _ := env.Arg("x")
		n, _ := x.AsInt()
		return value.NewInt(n * 2), nil
	}, pattern.Object{Tag: "Int", Children: []pattern.Pattern{pattern.Variable{Name: "x"}}})
	if err != nil {
		t.Fatal(err)
	}
	got, err := state.Run("double 21")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(value.NewInt(42)) {
		t.Fatalf("got %v, want 42", got)
	}
}

func TestWithTraceRedirectsOutput(t *testing.T) {
	var buf bytes.Buffer
	state := NewState(WithTrace(&buf))
	defer state.Close()
	if _, err := state.Run("trace 9"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "(Int 9)\n" {
		t.Fatalf("trace output = %q", buf.String())
	}
}

func TestParseErrorAggregation(t *testing.T) {
	_, err := Run("let x")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if _, ok := err.(*ParseErrors); !ok {
		t.Fatalf("expected *ParseErrors, got %T", err)
	}
}
