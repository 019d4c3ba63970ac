// Package querystate converts between URL query strings and an immutable
// in-memory filter/sort state, and computes new states from user actions.
//
// A State maps facet keys to values. A key is present only while it has at
// least one non-empty value, so "no value" and "absent" mean the same thing.
// Every transition returns a new State; the input is never modified, so
// callers may keep the old snapshot around for comparison or undo.
//
// Two keys are reserved: "page" is the pagination index and is dropped by every
// filter or sort change, and "ordering" is the sort selection, always
// single-valued.
package querystate

import (
	"maps"
	"slices"
	"strconv"
)

const (
	KeyPage     = "page"
	KeyOrdering = "ordering"
)

// State is a snapshot of the filter, sort and pagination selection.
// The zero State is empty and ready to use.
type State struct {
	values map[string]Value
}

// Pair is one raw key/value occurrence from a query string.
type Pair struct {
	Key   string
	Value string
}

// New builds a State from explicit values. Absent values are skipped.
func New(values map[string]Value) State {
	out := make(map[string]Value, len(values))
	for k, v := range values {
		if k == "" || v.IsAbsent() {
			continue
		}
		out[k] = v
	}
	return State{values: out}
}

func (s State) Get(key string) Value {
	return s.values[key]
}

func (s State) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s State) Len() int {
	return len(s.values)
}

func (s State) IsEmpty() bool {
	return len(s.values) == 0
}

// Keys returns the keys in sorted order.
func (s State) Keys() []string {
	return slices.Sorted(maps.Keys(s.values))
}

// With returns a copy of s with key set to v. An Absent v removes the key.
func (s State) With(key string, v Value) State {
	out := s.clone()
	if v.IsAbsent() {
		delete(out, key)
	} else if key != "" {
		out[key] = v
	}
	return State{values: out}
}

// Without returns a copy of s with the given keys removed.
func (s State) Without(keys ...string) State {
	out := s.clone()
	for _, k := range keys {
		delete(out, k)
	}
	return State{values: out}
}

// Equal reports exact equality, including value kinds and list order.
func (s State) Equal(o State) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for k, v := range s.values {
		ov, ok := o.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Equivalent reports key/value-set equality: the same keys, each carrying the
// same set of strings regardless of order or scalar/list shape.
func (s State) Equivalent(o State) bool {
	if len(s.values) != len(o.values) {
		return false
	}
	for k, v := range s.values {
		ov, ok := o.values[k]
		if !ok || !v.SameSet(ov) {
			return false
		}
	}
	return true
}

// Page returns the 1-based page index. Missing or unparseable pages are 1.
func (s State) Page() int {
	n, err := strconv.Atoi(s.Get(KeyPage).First())
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func (s State) Ordering() string {
	return s.Get(KeyOrdering).First()
}

// Map returns the state as a fresh map of string slices.
func (s State) Map() map[string][]string {
	out := make(map[string][]string, len(s.values))
	for k, v := range s.values {
		out[k] = v.Values()
	}
	return out
}

func (s State) clone() map[string]Value {
	out := make(map[string]Value, len(s.values)+1)
	for k, v := range s.values {
		out[k] = v
	}
	return out
}
