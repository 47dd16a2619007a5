// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package attrs implements the type-erased attribute store.
//
// Values of any concrete type T are attached to an inclusive token range.
// The store keeps, per type, the list of (range, value) pairs in insertion
// order; per token position, the list of (type, instance) entries touching
// it; and, parallel to each value, its association list. Identity matching
// between a queried attribute and its associations uses address equality
// on the stored value, which is why every value is individually
// heap-allocated on Insert rather than held inline in a slice that could
// be reallocated out from under a previously returned pointer.
package attrs

import (
	"reflect"

	"github.com/mdhender/layered-nlp/assoc"
	"github.com/mdhender/layered-nlp/tokens"
)

// Range is an inclusive token range, the unit attributes are attached to.
// This is the inclusive counterpart of sel.Selection's half-open range;
// conversion between the two happens only at the Selection/assign
// boundary.
type Range struct {
	Start tokens.Position
	End   tokens.Position
}

// Contains reports whether p falls within the inclusive range.
func (r Range) Contains(p tokens.Position) bool {
	return r.Start <= p && p <= r.End
}

type bucket struct {
	typ    reflect.Type
	ranges []Range
	values []any // each entry is a *T, individually allocated for address stability
	assocs [][]assoc.AssociatedSpan
}

type posEntry struct {
	typ reflect.Type
	idx int // index into the bucket's parallel slices
}

// Store is the per-line attribute bucket collection. The zero value is not
// usable; construct with NewStore.
type Store struct {
	buckets map[reflect.Type]*bucket
	byPos   map[tokens.Position][]posEntry
}

// NewStore returns an empty attribute store.
func NewStore() *Store {
	return &Store{
		buckets: make(map[reflect.Type]*bucket),
		byPos:   make(map[tokens.Position][]posEntry),
	}
}

func typeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(&zero).Elem()
}

func (s *Store) bucketFor(t reflect.Type) *bucket {
	b, ok := s.buckets[t]
	if !ok {
		b = &bucket{typ: t}
		s.buckets[t] = b
	}
	return b
}

// Insert appends value to the type-T list, attached to r, with no
// associations. Range validity (both endpoints are valid token indices in
// the line) is a precondition enforced by the selection/assign API, not by
// the store.
func Insert[T any](s *Store, r Range, value T) {
	InsertWithAssociations[T](s, r, value, nil)
}

// InsertWithAssociations is Insert, additionally recording assocs as the
// association list for this specific instance.
func InsertWithAssociations[T any](s *Store, r Range, value T, assocs []assoc.AssociatedSpan) {
	t := typeOf[T]()
	b := s.bucketFor(t)

	ptr := new(T)
	*ptr = value
	idx := len(b.values)
	b.ranges = append(b.ranges, r)
	b.values = append(b.values, ptr)
	b.assocs = append(b.assocs, assocs)

	for p := r.Start; p <= r.End; p++ {
		s.byPos[p] = append(s.byPos[p], posEntry{typ: t, idx: idx})
	}
}

// InsertErasedWithAssociations is InsertWithAssociations for a caller that
// only has a reflect.Type and an any value in hand -- the shape the
// type-erased line resolver runtime needs, since a pipeline mixes
// resolvers emitting different concrete T's that can't share one generic
// call site. value must be assignable to t; the representation matches
// InsertWithAssociations exactly; both paths can be read back with Get[T]
// or QueryWithAssociations[T] interchangeably.
func InsertErasedWithAssociations(s *Store, t reflect.Type, r Range, value any, assocs []assoc.AssociatedSpan) {
	b := s.bucketFor(t)

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	idx := len(b.values)
	b.ranges = append(b.ranges, r)
	b.values = append(b.values, ptr.Interface())
	b.assocs = append(b.assocs, assocs)

	for p := r.Start; p <= r.End; p++ {
		s.byPos[p] = append(s.byPos[p], posEntry{typ: t, idx: idx})
	}
}

// Result is one (range, value) pair returned by Get, with the stored
// pointer retained so callers can match it by address against an entry
// from QueryWithAssociations.
type Result[T any] struct {
	Range Range
	Value *T
}

// Get returns every (range, value) pair of type T, in insertion order.
func Get[T any](s *Store) []Result[T] {
	t := typeOf[T]()
	b, ok := s.buckets[t]
	if !ok {
		return nil
	}
	out := make([]Result[T], len(b.values))
	for i, v := range b.values {
		out[i] = Result[T]{Range: b.ranges[i], Value: v.(*T)}
	}
	return out
}

// WithAssociations is one (range, value, associations) triple, returned by
// QueryWithAssociations.
type WithAssociations[T any] struct {
	Range        Range
	Value        *T
	Associations []assoc.AssociatedSpan
}

// QueryWithAssociations returns every (range, value, associations) triple
// of type T, in insertion order.
func QueryWithAssociations[T any](s *Store) []WithAssociations[T] {
	t := typeOf[T]()
	b, ok := s.buckets[t]
	if !ok {
		return nil
	}
	out := make([]WithAssociations[T], len(b.values))
	for i, v := range b.values {
		out[i] = WithAssociations[T]{
			Range:        b.ranges[i],
			Value:        v.(*T),
			Associations: b.assocs[i],
		}
	}
	return out
}

// Clear removes all attributes of type T from both the type list and the
// per-position index. Used only during tests or speculative passes (spec
// §4.2).
func Clear[T any](s *Store) {
	t := typeOf[T]()
	delete(s.buckets, t)
	for p, entries := range s.byPos {
		kept := entries[:0]
		for _, e := range entries {
			if e.typ != t {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(s.byPos, p)
		} else {
			s.byPos[p] = kept
		}
	}
}

// Found is one entry returned by Find: the type touching a position, the
// range of the attribute instance, and its value as an untyped pointer.
type Found struct {
	Type  reflect.Type
	Range Range
	Value any // concrete type is *T for whichever T was inserted
}

// Find enumerates every attribute instance covering pos, across all types.
func (s *Store) Find(pos tokens.Position) []Found {
	entries := s.byPos[pos]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Found, 0, len(entries))
	for _, e := range entries {
		b := s.buckets[e.typ]
		out = append(out, Found{Type: e.typ, Range: b.ranges[e.idx], Value: b.values[e.idx]})
	}
	return out
}

// HasType reports whether any attribute of type t has been inserted into
// s, regardless of position. Used by the document resolver runtime to
// check a declared dependency without needing the concrete Go type at the
// call site.
func (s *Store) HasType(t reflect.Type) bool {
	b, ok := s.buckets[t]
	return ok && len(b.values) > 0
}

// HasType is the package-level form of Store.HasType, for callers that
// only have a *Store and a reflect.Type in hand.
func HasType(s *Store, t reflect.Type) bool {
	return s.HasType(t)
}

// Types returns the attribute types currently touching pos, one entry per
// attribute instance (a type appears once for each of its instances
// covering pos), so a caller can enumerate attributes at a point without
// scanning all types.
func (s *Store) Types(pos tokens.Position) []reflect.Type {
	entries := s.byPos[pos]
	if len(entries) == 0 {
		return nil
	}
	out := make([]reflect.Type, len(entries))
	for i, e := range entries {
		out[i] = e.typ
	}
	return out
}
