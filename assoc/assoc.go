// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package assoc implements the association contract: a tagged reference
// from one attribute or semantic span to another span range.
package assoc

import (
	"reflect"

	"github.com/mdhender/layered-nlp/tokens"
)

// SpanRef is an inclusive token range on a line or document, the target of
// an Association.
type SpanRef struct {
	Start tokens.Position
	End   tokens.Position
}

// Contains reports whether p falls within the inclusive range.
func (s SpanRef) Contains(p tokens.Position) bool {
	return s.Start <= p && p <= s.End
}

// Kind identifies an association's type. Two associations of the same Kind
// share the same label: the label is intrinsic to the type, not supplied
// per instance.
type Kind interface {
	// Label returns the static label for this association kind, e.g.
	// "obligor_source" or "action_span".
	Label() string
	// Glyph returns an optional single-character display glyph and
	// whether one is defined.
	Glyph() (rune, bool)
}

// AssociatedSpan is one outgoing association owned by an attribute
// instance or a semantic span.
type AssociatedSpan struct {
	Kind   Kind
	Target SpanRef
}

// Label is a convenience accessor mirroring Kind.Label().
func (a AssociatedSpan) Label() string { return a.Kind.Label() }

// TypeOf returns the reflect.Type of the association's Kind, used by
// callers that need to group or filter associations by kind without
// depending on a concrete package.
func TypeOf(a AssociatedSpan) reflect.Type {
	return reflect.TypeOf(a.Kind)
}
