package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tine-lang/tine/internal/model"
)

func parse(t *testing.T, source string) model.Expr {
	t.Helper()
	expr, errs := NewParser(source, "<test>").Parse()
	require.Empty(t, errs, "unexpected parse errors for %q", source)
	return expr
}

func TestParsePrecedenceNestsMulUnderAdd(t *testing.T) {
	expr := parse(t, "1 + 2 * 3")
	call, ok := expr.(*model.Call)
	require.True(t, ok, "expected *model.Call at top level, got %T", expr)

	callee, ok := call.Callee.(*model.Var)
	require.True(t, ok, "expected top-level call to +, got %T", call.Callee)
	assert.Equal(t, "+", callee.Name)

	right, ok := call.Args[1].(*model.Call)
	require.True(t, ok, "expected right operand to be a call, got %T", call.Args[1])
	rc, ok := right.Callee.(*model.Var)
	require.True(t, ok)
	assert.Equal(t, "*", rc.Name)
}

func TestParseApplicationIsNaryJuxtaposition(t *testing.T) {
	expr := parse(t, "f a b")
	call, ok := expr.(*model.Call)
	require.True(t, ok, "expected *model.Call, got %T", expr)
	assert.Len(t, call.Args, 2)
}

func TestParseLetAcceptsDestructuringPattern(t *testing.T) {
	expr := parse(t, "let <Pair a b> := p in a")
	letIn, ok := expr.(*model.LetIn)
	require.True(t, ok, "expected *model.LetIn, got %T", expr)
	assert.Equal(t, "<Pair a b>", letIn.Pattern.String())
}

func TestParseFunMultiPath(t *testing.T) {
	expr := parse(t, "fun |- 0 -> 1 |- n -> n")
	fn, ok := expr.(*model.FunDef)
	require.True(t, ok, "expected *model.FunDef, got %T", expr)
	assert.Len(t, fn.Paths, 2)
}

func TestParseReportsUnexpectedToken(t *testing.T) {
	_, errs := NewParser("let x", "<test>").Parse()
	assert.NotEmpty(t, errs, "expected parse errors for a truncated let")
}

func TestParseOperatorPrecedenceTable(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOuter string
	}{
		{"or lowest", "true || false && true", "||"},
		{"and over add", "1 + 2 && 3 + 4", "&&"},
		{"add over mul", "1 * 2 + 3 * 4", "+"},
		{"mul over mod", "1 % 2 * 3", "*"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			expr := parse(t, test.input)
			call, ok := expr.(*model.Call)
			require.True(t, ok, "expected *model.Call at top level, got %T", expr)
			callee, ok := call.Callee.(*model.Var)
			require.True(t, ok)
			assert.Equal(t, test.wantOuter, callee.Name)
		})
	}
}
