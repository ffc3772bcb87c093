// Package tine provides a public API for embedding the tine evaluator in
// Go applications — grounded on pkg/rage's State/StateOption shape
// (functional options configuring a VM-equivalent before any source runs),
// trimmed to the handful of knobs tine's evaluator actually exposes.
//
// Basic usage:
//
//	result, err := tine.Run(`let x := 5 in x * (x + 1)`)
//
//	state := tine.NewState()
//	state.Register("double", func(env value.NativeEnv) (value.Object, error) {
//		x, _ := env.Arg("x")
//		n, _ := x.AsInt()
//		return value.NewInt(n * 2), nil
//	}, pattern.Variable{Name: "x"})
//	result, err := state.Run(`double 21`)
package tine

import (
	"fmt"
	"io"
	"os"

	"github.com/tine-lang/tine/internal/builtins"
	"github.com/tine-lang/tine/internal/eval"
	"github.com/tine-lang/tine/internal/pattern"
	"github.com/tine-lang/tine/internal/store"
	"github.com/tine-lang/tine/internal/syntax"
	"github.com/tine-lang/tine/internal/value"
)

// StateOption is a functional option for configuring State creation.
type StateOption func(*stateConfig)

type stateConfig struct {
	traceWriter         io.Writer
	maxCells            int
	strictArity         bool
	checkOutputPatterns bool
}

// WithTrace sets the writer the `trace` built-in writes to. Defaults to
// os.Stderr, matching the teacher's plain fmt.Fprintf(os.Stderr, ...)
// logging style; pass io.Discard to silence it.
func WithTrace(w io.Writer) StateOption {
	return func(c *stateConfig) { c.traceWriter = w }
}

// WithMaxCells caps the number of cells a single Run may visit before
// failing with an evalerr.ResourceExhausted. Zero (the default) means
// unlimited.
func WithMaxCells(n int) StateOption {
	return func(c *stateConfig) { c.maxCells = n }
}

// WithStrictArity turns under-application into an ArityMismatch instead of
// the default currying behavior.
func WithStrictArity() StateOption {
	return func(c *stateConfig) { c.strictArity = true }
}

// WithCheckOutputPatterns enables output-pattern verification at function
// cleanup, the documented extension point for a future surface syntax that
// can express them (see SPEC_FULL.md §1.1).
func WithCheckOutputPatterns() StateOption {
	return func(c *stateConfig) { c.checkOutputPatterns = true }
}

// State is a reusable evaluation context: one store (and therefore one set
// of global bindings) shared across any number of Run calls.
type State struct {
	store  *store.Store
	opts   eval.Options
	closed bool
}

// NewState creates a State with the minimal built-in set of spec.md §4.F
// installed.
func NewState(opts ...StateOption) *State {
	cfg := &stateConfig{traceWriter: os.Stderr}
	for _, opt := range opts {
		opt(cfg)
	}
	st := store.New()
	builtins.Install(st, cfg.traceWriter)
	return &State{
		store: st,
		opts: eval.Options{
			MaxCells:            cfg.maxCells,
			StrictArity:         cfg.strictArity,
			CheckOutputPatterns: cfg.checkOutputPatterns,
		},
	}
}

// Close marks s unusable. Idempotent, matching the teacher's State.Close.
func (s *State) Close() {
	s.closed = true
	s.store = nil
}

func (s *State) checkClosed() error {
	if s.closed {
		return fmt.Errorf("tine: operation on closed State")
	}
	return nil
}

// Run parses and evaluates source, returning its result object.
func (s *State) Run(source string) (value.Object, error) {
	return s.RunWithFilename(source, "<string>")
}

// RunWithFilename is Run with a filename attached to diagnostics.
func (s *State) RunWithFilename(source, filename string) (value.Object, error) {
	if err := s.checkClosed(); err != nil {
		return value.Object{}, err
	}
	expr, errs := syntax.NewParser(source, filename).Parse()
	if len(errs) > 0 {
		return value.Object{}, &ParseErrors{Errors: errs}
	}
	return eval.Run(expr, s.store, s.opts)
}

// Register installs a custom native function under name with the given
// input patterns, usable from source the same way a built-in is.
func (s *State) Register(name string, fn value.Native, inputs ...pattern.Pattern) error {
	if err := s.checkClosed(); err != nil {
		return err
	}
	obj := value.NewFunction(&value.FunctionObject{
		Arity: len(inputs),
		Paths: []value.FunctionPath{{
			Input: inputs,
			Body:  value.NativeEvaluable{Fn: fn},
		}},
	})
	s.store.Bind(name, obj)
	return nil
}

// ParseErrors aggregates one or more syntax.ParseError into a single error
// value, matching the teacher's CompileErrors wrapper.
type ParseErrors struct {
	Errors []syntax.ParseError
}

func (e *ParseErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d parse errors:", len(e.Errors))
	for _, pe := range e.Errors {
		msg += "\n  " + pe.Error()
	}
	return msg
}

// Run is a convenience function that creates a temporary State, runs
// source, and discards the state.
func Run(source string) (value.Object, error) {
	state := NewState()
	defer state.Close()
	return state.Run(source)
}
