package querystate

import (
	"slices"
	"strings"
)

// Kind tags the three shapes a query value can take.
type Kind int

const (
	KindAbsent Kind = iota
	KindScalar
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	default:
		return "absent"
	}
}

// Value is a single facet value: Absent, Scalar(string) or List([]string).
// The zero Value is Absent. A Value never holds an empty string or an empty list.
type Value struct {
	kind   Kind
	scalar string
	list   []string
}

// Absent returns the value that means "no filter applied".
func Absent() Value {
	return Value{}
}

// Scalar returns a single-string value. An empty string yields Absent.
func Scalar(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: KindScalar, scalar: s}
}

// List returns a multi-string value. Empty strings are dropped and a list with
// nothing left in it yields Absent.
func List(values ...string) Value {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return Value{}
	}
	return Value{kind: KindList, list: out}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Values returns the value as a fresh slice: nil for Absent, one element for a
// Scalar, a copy of the list otherwise.
func (v Value) Values() []string {
	switch v.kind {
	case KindScalar:
		return []string{v.scalar}
	case KindList:
		return slices.Clone(v.list)
	default:
		return nil
	}
}

// First returns the scalar, the first list element, or "" when absent.
func (v Value) First() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		return v.list[0]
	default:
		return ""
	}
}

func (v Value) Len() int {
	switch v.kind {
	case KindScalar:
		return 1
	case KindList:
		return len(v.list)
	default:
		return 0
	}
}

func (v Value) Contains(s string) bool {
	switch v.kind {
	case KindScalar:
		return v.scalar == s
	case KindList:
		return slices.Contains(v.list, s)
	default:
		return false
	}
}

// Equal reports exact equality: same kind and same elements in the same order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == o.scalar
	case KindList:
		return slices.Equal(v.list, o.list)
	default:
		return true
	}
}

// SameSet reports whether both values carry the same set of strings, ignoring
// order, duplicates and the scalar/list distinction.
func (v Value) SameSet(o Value) bool {
	a, b := v.Values(), o.Values()
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(slices.Compact(a), slices.Compact(b))
}

func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindList:
		return "[" + strings.Join(v.list, " ") + "]"
	default:
		return "<absent>"
	}
}
