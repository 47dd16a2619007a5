// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package document

import (
	"reflect"
	"sort"

	"github.com/mdhender/layered-nlp/tokens"
)

// AddSpan appends a new SemanticSpan to the document and invalidates the
// association navigation index. Duplicate spans (same range and payload
// type inserted more than once) are allowed; span deduplication is left to
// the resolver that calls AddSpan, not the runtime (decided in
// DESIGN.md: no implicit dedup).
func (d *Document) AddSpan(payload any, firstLine, lastLine int, firstToken, lastToken tokens.Position, associations []DocAssociatedSpan) SpanId {
	s := &SemanticSpan{
		FirstLine:    firstLine,
		LastLine:     lastLine,
		FirstToken:   firstToken,
		LastToken:    lastToken,
		Payload:      payload,
		PayloadType:  reflect.TypeOf(payload),
		Associations: associations,
	}
	id := d.spans.add(s)
	d.invalidate()
	d.metrics.AddSpans(1)
	return id
}

// associations lazily (re)builds and returns the document's association
// navigation index: built on demand, cached until the next AddSpan.
func (d *Document) associations() *associationIndex {
	if d.assocIndex == nil {
		d.assocIndex = buildAssociationIndex(d.spans.all())
		d.metrics.IncAssociationIndexRebuild()
	}
	return d.assocIndex
}

// QueryResult is one span of payload type T returned by Query, in
// document order.
type QueryResult[T any] struct {
	ID                    SpanId
	FirstLine, LastLine   int
	FirstToken, LastToken tokens.Position
	Value                 T
}

// Query returns every SemanticSpan in d whose payload has type T, in
// document order. Query is a free function rather than a method because
// Go methods cannot introduce a new type parameter.
func Query[T any](d *Document) []QueryResult[T] {
	var zero T
	t := reflect.TypeOf(&zero).Elem()
	spans := d.spans.ofType(t)
	out := make([]QueryResult[T], len(spans))
	for i, s := range spans {
		out[i] = QueryResult[T]{
			ID:         s.ID,
			FirstLine:  s.FirstLine,
			LastLine:   s.LastLine,
			FirstToken: s.FirstToken,
			LastToken:  s.LastToken,
			Value:      s.Payload.(T),
		}
	}
	return out
}

// QueryOne is the typed counterpart of Document.Span: it looks up id and
// reports whether its payload has type T.
func QueryOne[T any](d *Document, id SpanId) (QueryResult[T], bool) {
	s, ok := d.spans.get(id)
	if !ok {
		return QueryResult[T]{}, false
	}
	v, ok := s.Payload.(T)
	if !ok {
		return QueryResult[T]{}, false
	}
	return QueryResult[T]{
		ID:         s.ID,
		FirstLine:  s.FirstLine,
		LastLine:   s.LastLine,
		FirstToken: s.FirstToken,
		LastToken:  s.LastToken,
		Value:      v,
	}, true
}

// AllSpans returns every span in the document, in document order.
func (d *Document) AllSpans() []*SemanticSpan {
	return d.spans.ordered()
}

// SpanResult is a navigable handle onto one SemanticSpan, returned by
// Document.Span. It bundles the span's own fields with the document it
// belongs to, so its navigation methods (Associations, Inbound, Parents,
// Children, Overlapping) can resolve other spans without the caller
// threading a *Document through separately.
type SpanResult struct {
	doc  *Document
	span *SemanticSpan
}

// Span looks up a span by id. The bool is false if no such span exists
// (e.g. it was never added, or the id came from a different document).
func (d *Document) Span(id SpanId) (SpanResult, bool) {
	s, ok := d.spans.get(id)
	if !ok {
		return SpanResult{}, false
	}
	return SpanResult{doc: d, span: s}, true
}

// ID returns the span's identity.
func (r SpanResult) ID() SpanId { return r.span.ID }

// Span returns the underlying SemanticSpan.
func (r SpanResult) Span() *SemanticSpan { return r.span }

// Associations returns the spans this span points to via an outgoing
// association with the given label. An empty label matches every label.
func (r SpanResult) Associations(label string) []SpanResult {
	return r.doc.resolveEdges(r.doc.associations().outgoing[r.span.ID], label)
}

// Inbound returns the spans that point to this span via an association
// with the given label. An empty label matches every label.
func (r SpanResult) Inbound(label string) []SpanResult {
	return r.doc.resolveEdges(r.doc.associations().incoming[r.span.ID], label)
}

func (d *Document) resolveEdges(edges []edge, label string) []SpanResult {
	var out []SpanResult
	for _, e := range edges {
		if label != "" && e.label != label {
			continue
		}
		if sr, ok := d.Span(e.target); ok {
			out = append(out, sr)
		}
	}
	return out
}

// Parents returns every span that strictly encloses this one,
// nearest-enclosing first.
func (r SpanResult) Parents() []SpanResult {
	var out []SpanResult
	for _, s := range r.doc.spans.all() {
		if s.encloses(r.span) {
			out = append(out, SpanResult{doc: r.doc, span: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return smaller(out[i].span, out[j].span)
	})
	return out
}

// Children returns every span strictly enclosed by this one, ordered by
// start position; the order of children sharing a start position is not
// defined.
func (r SpanResult) Children() []SpanResult {
	var out []SpanResult
	for _, s := range r.doc.spans.all() {
		if r.span.encloses(s) {
			out = append(out, SpanResult{doc: r.doc, span: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].span.start().less(out[j].span.start())
	})
	return out
}

// Overlapping returns every other span that shares at least one token
// position with this one, without either strictly enclosing the other.
func (r SpanResult) Overlapping() []SpanResult {
	var out []SpanResult
	for _, s := range r.doc.spans.all() {
		if s.ID == r.span.ID {
			continue
		}
		if r.span.encloses(s) || s.encloses(r.span) {
			continue
		}
		if spansOverlap(r.doc, r.span, s) {
			out = append(out, SpanResult{doc: r.doc, span: s})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].span.start().less(out[j].span.start())
	})
	return out
}

// spansOverlap reports whether a and b occupy at least one common (line,
// token) position, by checking every line their ranges share.
func spansOverlap(d *Document, a, b *SemanticSpan) bool {
	lo := a.FirstLine
	if b.FirstLine > lo {
		lo = b.FirstLine
	}
	hi := a.LastLine
	if b.LastLine < hi {
		hi = b.LastLine
	}
	for line := lo; line <= hi; line++ {
		aStart, aEnd := tokenRangeOnLine(d, a, line)
		bStart, bEnd := tokenRangeOnLine(d, b, line)
		if aStart <= bEnd && bStart <= aEnd {
			return true
		}
	}
	return false
}

// tokenRangeOnLine returns the inclusive token range s occupies on line,
// assuming s actually spans that line. A line strictly between s's first
// and last line is fully occupied.
func tokenRangeOnLine(d *Document, s *SemanticSpan, line int) (tokens.Position, tokens.Position) {
	start := tokens.Position(0)
	end := d.Lines[line].Len() - 1
	if line == s.FirstLine {
		start = s.FirstToken
	}
	if line == s.LastLine {
		end = s.LastToken
	}
	return start, end
}
