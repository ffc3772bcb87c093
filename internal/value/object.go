// Package value implements the runtime object model of spec §3/§4.B: tagged
// values with either a primitive (omega) payload or a list of child objects,
// function objects with pattern-dispatched paths, and the Match operation
// that pairs a Pattern against an Object — grounded on the original
// implementation's values.hpp, which defines object<value_t> and its match()
// overloads in the same header as the pattern types for exactly this
// reason: matching needs both at once.
package value

import (
	"fmt"
	"strings"
)

// Payload is the closed set of primitive values an omega object can carry.
type Payload interface {
	fmt.Stringer
	Equal(Payload) bool
	isPayload()
}

// IntPayload is an integer primitive.
type IntPayload int64

func (IntPayload) isPayload()       {}
func (i IntPayload) String() string { return fmt.Sprintf("%d", int64(i)) }
func (i IntPayload) Equal(o Payload) bool {
	other, ok := o.(IntPayload)
	return ok && other == i
}

// BoolPayload is a boolean primitive.
type BoolPayload bool

func (BoolPayload) isPayload() {}
func (b BoolPayload) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b BoolPayload) Equal(o Payload) bool {
	other, ok := o.(BoolPayload)
	return ok && other == b
}

// FuncPayload wraps a function-object reference so it can be carried as an
// omega object's payload (e.g. the value bound by `let f := fun |- ...`).
type FuncPayload struct {
	Fn *FunctionObject
}

func (FuncPayload) isPayload() {}
func (f FuncPayload) String() string {
	return f.Fn.String()
}
func (f FuncPayload) Equal(o Payload) bool {
	other, ok := o.(FuncPayload)
	return ok && other.Fn == f.Fn
}

// Object is a runtime value: a tag plus either an omega payload or a list
// of composite children. The two are mutually exclusive; IsOmega reports
// which one is present. Objects are immutable once constructed and are
// freely copied.
type Object struct {
	Tag     string
	omega   bool
	payload Payload
	attrs   []Object
}

// NewOmega constructs an omega object with the given tag and payload.
func NewOmega(tag string, payload Payload) Object {
	return Object{Tag: tag, omega: true, payload: payload}
}

// NewComposite constructs a composite object with the given tag and
// children. children may be empty (still distinct from an omega object).
func NewComposite(tag string, children []Object) Object {
	return Object{Tag: tag, omega: false, attrs: children}
}

// NewInt constructs the conventional `Int n` omega object.
func NewInt(n int64) Object { return NewOmega("Int", IntPayload(n)) }

// NewBool constructs the conventional `Bool b` omega object.
func NewBool(b bool) Object { return NewOmega("Bool", BoolPayload(b)) }

// NewFunction constructs the conventional `Function` omega object wrapping
// a function object reference.
func NewFunction(fn *FunctionObject) Object {
	return NewOmega("Function", FuncPayload{Fn: fn})
}

// IsOmega reports whether o carries a primitive payload rather than a list
// of children.
func (o Object) IsOmega() bool { return o.omega }

// Payload returns the omega payload. Panics if o is composite; callers must
// check IsOmega first (mirrors the original's unchecked std::get access).
func (o Object) Payload() Payload {
	if !o.omega {
		panic("value: Payload called on composite object")
	}
	return o.payload
}

// Attrs returns the composite children. Panics if o is omega.
func (o Object) Attrs() []Object {
	if o.omega {
		panic("value: Attrs called on omega object")
	}
	return o.attrs
}

// Arity is 1 for an omega object (its sole conceptual attribute is itself,
// per the self-loop rule) and len(Attrs()) for a composite object.
func (o Object) Arity() int {
	if o.omega {
		return 1
	}
	return len(o.attrs)
}

// AsInt returns the object's integer payload and whether it is one.
func (o Object) AsInt() (int64, bool) {
	if !o.omega {
		return 0, false
	}
	p, ok := o.payload.(IntPayload)
	return int64(p), ok
}

// AsBool returns the object's boolean payload and whether it is one.
func (o Object) AsBool() (bool, bool) {
	if !o.omega {
		return false, false
	}
	p, ok := o.payload.(BoolPayload)
	return bool(p), ok
}

// AsFunction returns the object's function-object payload and whether it
// is one.
func (o Object) AsFunction() (*FunctionObject, bool) {
	if !o.omega {
		return nil, false
	}
	p, ok := o.payload.(FuncPayload)
	if !ok {
		return nil, false
	}
	return p.Fn, true
}

// Equal reports whether two objects have the same tag and structurally
// equal content.
func (o Object) Equal(other Object) bool {
	if o.Tag != other.Tag || o.omega != other.omega {
		return false
	}
	if o.omega {
		return o.payload.Equal(other.payload)
	}
	if len(o.attrs) != len(other.attrs) {
		return false
	}
	for i := range o.attrs {
		if !o.attrs[i].Equal(other.attrs[i]) {
			return false
		}
	}
	return true
}

func (o Object) String() string {
	if o.omega {
		return fmt.Sprintf("(%s %s)", o.Tag, o.payload)
	}
	if len(o.attrs) == 0 {
		return "(" + o.Tag + ")"
	}
	parts := make([]string, len(o.attrs))
	for i, c := range o.attrs {
		parts[i] = c.String()
	}
	return "(" + o.Tag + " " + strings.Join(parts, " ") + ")"
}
