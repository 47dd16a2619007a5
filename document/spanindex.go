// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package document

import (
	"reflect"
	"sort"
)

// spanIndex owns every SemanticSpan added to a Document, plus the
// secondary indexes by payload type and by line. Query[T] reads the
// by-type index; the navigation methods scan every span.
type spanIndex struct {
	nextID SpanId
	byID   map[SpanId]*SemanticSpan
	byType map[reflect.Type][]SpanId
	byLine map[int][]SpanId
	order  []SpanId // insertion order, the tie-break under equal (line, token) starts
}

func newSpanIndex() *spanIndex {
	return &spanIndex{
		nextID: 1,
		byID:   make(map[SpanId]*SemanticSpan),
		byType: make(map[reflect.Type][]SpanId),
		byLine: make(map[int][]SpanId),
	}
}

func (si *spanIndex) add(s *SemanticSpan) SpanId {
	s.ID = si.nextID
	si.nextID++
	si.byID[s.ID] = s
	si.byType[s.PayloadType] = append(si.byType[s.PayloadType], s.ID)
	for line := s.FirstLine; line <= s.LastLine; line++ {
		si.byLine[line] = append(si.byLine[line], s.ID)
	}
	si.order = append(si.order, s.ID)
	return s.ID
}

func (si *spanIndex) get(id SpanId) (*SemanticSpan, bool) {
	s, ok := si.byID[id]
	return s, ok
}

func (si *spanIndex) all() []*SemanticSpan {
	out := make([]*SemanticSpan, len(si.order))
	for i, id := range si.order {
		out[i] = si.byID[id]
	}
	return out
}

// ordered returns every span sorted by (first_line, first_token), with
// ties broken by insertion order -- a stable sort over the insertion-order
// slice already gives that. Document order is non-decreasing in (line,
// token) regardless of the order spans were added.
func (si *spanIndex) ordered() []*SemanticSpan {
	out := si.all()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start().less(out[j].start())
	})
	return out
}

func (si *spanIndex) ofType(t reflect.Type) []*SemanticSpan {
	ids := si.byType[t]
	if len(ids) == 0 {
		return nil
	}
	out := make([]*SemanticSpan, 0, len(ids))
	for _, id := range ids {
		out = append(out, si.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].start().less(out[j].start())
	})
	return out
}
