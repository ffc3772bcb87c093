package value

import (
	"errors"
	"testing"

	"github.com/tine-lang/tine/internal/pattern"
)

func TestMatchVariableBindsAnyObject(t *testing.T) {
	bindings, err := Match(pattern.Variable{Name: "x"}, NewInt(7), Bindings{})
	if err != nil {
		t.Fatal(err)
	}
	if got, ok := bindings["x"]; !ok || !got.Equal(NewInt(7)) {
		t.Fatalf("bindings[x] = %v, ok=%v", got, ok)
	}
}

func TestMatchRepeatedVariableAlwaysFails(t *testing.T) {
	pair := pattern.Object{Tag: "Pair", Children: []pattern.Pattern{
		pattern.Variable{Name: "x"}, pattern.Variable{Name: "x"},
	}}
	_, err := Match(pair, NewComposite("Pair", []Object{NewInt(1), NewInt(1)}), Bindings{})
	var dup DuplicateVariableError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateVariableError even for equal repeats, got %v", err)
	}
	_, err = Match(pair, NewComposite("Pair", []Object{NewInt(1), NewInt(2)}), Bindings{})
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateVariableError, got %v", err)
	}
}

func TestMatchLiteralNeverMatchesCompositeObject(t *testing.T) {
	lit := pattern.Literal{Tag: "Int", Value: pattern.Int(5)}
	wrapped := NewComposite("Int", []Object{NewInt(5)})
	_, err := Match(lit, wrapped, Bindings{})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("literal pattern must not match a composite object, even one-child: got %v", err)
	}
}

func TestMatchObjectSelfLoopIntoOmega(t *testing.T) {
	obj := pattern.Object{Tag: "Int", Children: []pattern.Pattern{pattern.Variable{Name: "n"}}}
	bindings, err := Match(obj, NewInt(9), Bindings{})
	if err != nil {
		t.Fatalf("one-child object pattern should match omega object of same tag: %v", err)
	}
	if !bindings["n"].Equal(NewInt(9)) {
		t.Fatalf("n should bind to the omega object itself, got %v", bindings["n"])
	}
}

func TestMatchNoMatchOnTagMismatch(t *testing.T) {
	_, err := Match(pattern.Literal{Tag: "Int", Value: pattern.Int(1)}, NewBool(true), Bindings{})
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func intFn(paths ...FunctionPath) *FunctionObject {
	return &FunctionObject{Paths: paths, Arity: len(paths[0].Input)}
}

func TestMatchFunctionTriesPathsInOrder(t *testing.T) {
	zeroPath := FunctionPath{
		Input: []pattern.Pattern{pattern.Literal{Tag: "Int", Value: pattern.Int(0)}},
	}
	otherPath := FunctionPath{
		Input: []pattern.Pattern{pattern.Variable{Name: "n"}},
	}
	fn := intFn(zeroPath, otherPath)

	m, err := MatchFunction(fn, []Object{NewInt(0)})
	if err != nil {
		t.Fatal(err)
	}
	if m.Path.Input[0] != zeroPath.Input[0] {
		t.Fatal("expected the first (zero) path to match")
	}

	m, err = MatchFunction(fn, []Object{NewInt(3)})
	if err != nil {
		t.Fatal(err)
	}
	if !m.Bindings["n"].Equal(NewInt(3)) {
		t.Fatalf("expected fallthrough path to bind n=3, got %v", m.Bindings)
	}
}

func TestMatchFunctionNoPathMatchedCitesArgs(t *testing.T) {
	fn := intFn(FunctionPath{
		Input: []pattern.Pattern{pattern.Literal{Tag: "Int", Value: pattern.Int(0)}},
	})
	_, err := MatchFunction(fn, []Object{NewBool(true)})
	var nm NoPathMatchedError
	if !errors.As(err, &nm) {
		t.Fatalf("expected NoPathMatchedError, got %v", err)
	}
	if len(nm.Args) != 1 || !nm.Args[0].Equal(NewBool(true)) {
		t.Fatalf("NoPathMatchedError.Args = %v", nm.Args)
	}
}
