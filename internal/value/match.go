package value

import (
	"errors"
	"fmt"

	"github.com/tine-lang/tine/internal/pattern"
)

// ErrNoMatch is returned by Match when the pattern simply does not match the
// object, as opposed to a structural problem with the pattern itself. Callers
// that try multiple paths in order (MatchFunction) use this to mean "try the
// next path", not "stop".
var ErrNoMatch = errors.New("value: pattern does not match")

// DuplicateVariableError reports that a pattern bound the same variable name
// twice in a single match (linear patterns only), e.g. matching `<Pair x x>`
// against any object: the second `x` is rejected regardless of whether it
// would have matched the same value as the first.
type DuplicateVariableError struct {
	Name string
}

func (e DuplicateVariableError) Error() string {
	return fmt.Sprintf("value: variable %q bound more than once in one pattern", e.Name)
}

// Match pairs pattern p against object o, accumulating bindings into acc and
// returning the (possibly extended) bindings. A Variable that repeats within
// a single pattern is a linear-pattern violation unconditionally (spec
// §4.A): DuplicateVariableError, not ErrNoMatch, since it signals a
// malformed pattern rather than an object that simply fails to match.
//
// The self-loop rule applies only to Object patterns against omega objects
// (spec §4.A's `O(t,ps) vs o` rule); a Literal pattern never matches a
// composite object, one-child or not (spec §8's boundary case).
func Match(p pattern.Pattern, o Object, acc Bindings) (Bindings, error) {
	switch pp := p.(type) {
	case pattern.Variable:
		if _, ok := acc[pp.Name]; ok {
			return nil, DuplicateVariableError{Name: pp.Name}
		}
		next := make(Bindings, len(acc)+1)
		for k, v := range acc {
			next[k] = v
		}
		next[pp.Name] = o
		return next, nil

	case pattern.Literal:
		if o.Tag != pp.Tag || !o.omega {
			return nil, ErrNoMatch
		}
		if !payloadEqualsLiteral(o.payload, pp.Value) {
			return nil, ErrNoMatch
		}
		return acc, nil

	case pattern.Object:
		if o.Tag != pp.Tag {
			return nil, ErrNoMatch
		}
		if o.omega {
			// self-loop: an omega object matches a one-child Object pattern
			// of the same tag by recursing into itself.
			if len(pp.Children) != 1 {
				return nil, ErrNoMatch
			}
			return Match(pp.Children[0], o, acc)
		}
		if len(o.attrs) != len(pp.Children) {
			return nil, ErrNoMatch
		}
		cur := acc
		for i, child := range pp.Children {
			var err error
			cur, err = Match(child, o.attrs[i], cur)
			if err != nil {
				return nil, err
			}
		}
		return cur, nil

	default:
		return nil, fmt.Errorf("value: unhandled pattern type %T", p)
	}
}

func payloadEqualsLiteral(payload Payload, lv pattern.LiteralValue) bool {
	switch v := lv.(type) {
	case pattern.Int:
		n, ok := payload.(IntPayload)
		return ok && int64(n) == int64(v)
	case pattern.Bool:
		b, ok := payload.(BoolPayload)
		return ok && bool(b) == bool(v)
	default:
		return false
	}
}

// PathMatch is the result of successfully matching every input pattern of a
// FunctionPath against a tuple of argument objects.
type PathMatch struct {
	Path     FunctionPath
	Bindings Bindings
}

// NoPathMatchedError reports that none of a function's paths accepted the
// given arguments, carrying per-path diagnostics for the caller to render
// (spec §7's NoPatternMatch).
type NoPathMatchedError struct {
	Attempted []FunctionPath
	Args      []Object
}

func (e NoPathMatchedError) Error() string {
	return fmt.Sprintf("value: no path matched %d argument(s)", len(e.Args))
}

// MatchFunction tries each of fn's paths in declared order against args,
// returning the first that matches every input pattern. args must already
// have length equal to the path's arity; partial application is handled by
// the caller before MatchFunction is ever consulted.
func MatchFunction(fn *FunctionObject, args []Object) (*PathMatch, error) {
	for _, path := range fn.Paths {
		if len(path.Input) != len(args) {
			continue
		}
		acc := Bindings{}
		ok := true
		for i, in := range path.Input {
			var err error
			acc, err = Match(in, args[i], acc)
			if err != nil {
				if errors.Is(err, ErrNoMatch) {
					ok = false
					break
				}
				return nil, err
			}
		}
		if ok {
			return &PathMatch{Path: path, Bindings: acc}, nil
		}
	}
	return nil, NoPathMatchedError{Attempted: fn.Paths, Args: args}
}
