// Package pattern implements the pattern language of spec §4.A: the three
// pattern variants, the `contains` preorder over them, and nothing else —
// matching a pattern against a runtime object needs the object model too,
// and lives in internal/value (see values.hpp's own co-location of match()
// with pattern.hpp in the original implementation this was distilled from).
package pattern

import (
	"fmt"
	"strings"
)

// Pattern is the sum type of the three pattern variants. It is a closed
// set; switch over the concrete type exhaustively rather than adding a
// visitor, matching the style of the rest of the evaluator's sum types.
type Pattern interface {
	fmt.Stringer
	isPattern()
}

// Variable binds whatever it matches to Name.
type Variable struct {
	Name string
}

func (Variable) isPattern()       {}
func (v Variable) String() string { return v.Name }

// LiteralValue is the closed set of values a Literal pattern can compare
// against: an integer or a boolean payload.
type LiteralValue interface {
	fmt.Stringer
	Equal(LiteralValue) bool
	isLiteralValue()
}

// Int is an integer literal pattern value.
type Int int64

func (Int) isLiteralValue() {}
func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }
func (i Int) Equal(o LiteralValue) bool {
	other, ok := o.(Int)
	return ok && other == i
}

// Bool is a boolean literal pattern value.
type Bool bool

func (Bool) isLiteralValue() {}
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Equal(o LiteralValue) bool {
	other, ok := o.(Bool)
	return ok && other == b
}

// Literal matches an omega object of the given tag whose payload equals
// Value.
type Literal struct {
	Tag   string
	Value LiteralValue
}

func (Literal) isPattern() {}
func (l Literal) String() string {
	return fmt.Sprintf("%s %s", l.Tag, l.Value)
}

// Object matches by tag and recursively by child patterns. A single-child
// Object pattern also matches an omega object of the same tag via the
// self-loop rule (see Match in internal/value).
type Object struct {
	Tag      string
	Children []Pattern
}

func (Object) isPattern() {}
func (o Object) String() string {
	parts := make([]string, len(o.Children))
	for i, c := range o.Children {
		parts[i] = c.String()
	}
	if len(parts) == 0 {
		return "<" + o.Tag + ">"
	}
	return "<" + o.Tag + " " + strings.Join(parts, " ") + ">"
}

// Vars returns the identifiers bound by p, in the order a depth-first
// traversal of its children visits them. Used by free-variable analysis to
// subtract a path's parameter names from its body's free variables.
func Vars(p Pattern) []string {
	var out []string
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch q := p.(type) {
		case Variable:
			out = append(out, q.Name)
		case Literal:
			// no bindings
		case Object:
			for _, c := range q.Children {
				walk(c)
			}
		}
	}
	walk(p)
	return out
}

// Contains is the preorder of spec §4.A: Contains(p, q) holds iff every
// object matched by q is also matched by p.
func Contains(p, q Pattern) bool {
	switch pp := p.(type) {
	case Variable:
		return true
	case Literal:
		switch qq := q.(type) {
		case Literal:
			return pp.Tag == qq.Tag && pp.Value.Equal(qq.Value)
		case Object:
			// self-loop: L(t,v) >= O(t,[c]) iff t==t and L(t,v) >= c
			if pp.Tag != qq.Tag || len(qq.Children) != 1 {
				return false
			}
			return Contains(pp, qq.Children[0])
		default:
			return false
		}
	case Object:
		switch qq := q.(type) {
		case Object:
			if pp.Tag != qq.Tag || len(pp.Children) != len(qq.Children) {
				return false
			}
			for i := range pp.Children {
				if !Contains(pp.Children[i], qq.Children[i]) {
					return false
				}
			}
			return true
		case Literal:
			// self-loop: O(t,[a]) >= L(t,v) iff t==t and a >= L(t,v)
			if pp.Tag != qq.Tag || len(pp.Children) != 1 {
				return false
			}
			return Contains(pp.Children[0], qq)
		default:
			return false
		}
	default:
		return false
	}
}
