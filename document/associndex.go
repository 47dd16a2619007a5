// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package document

// edge is one resolved, directed association between two spans.
type edge struct {
	label  string
	target SpanId
}

// associationIndex is the lazily built navigation structure over a
// Document's current span set. It is rebuilt from scratch whenever it is
// invalidated by AddSpan and then queried again; the rebuild resolves
// every DocAssociatedSpan's raw TargetRef to a concrete SpanId, by
// exact-match first and by innermost enclosing span second, dropping any
// association that resolves to neither (decided in DESIGN.md).
type associationIndex struct {
	outgoing map[SpanId][]edge
	incoming map[SpanId][]edge
}

func buildAssociationIndex(spans []*SemanticSpan) *associationIndex {
	idx := &associationIndex{
		outgoing: make(map[SpanId][]edge),
		incoming: make(map[SpanId][]edge),
	}
	for _, s := range spans {
		for _, da := range s.Associations {
			targetID, ok := resolveTarget(spans, da.Target)
			if !ok {
				continue // an unresolved association is dropped from navigation
			}
			label := da.Kind.Label()
			idx.outgoing[s.ID] = append(idx.outgoing[s.ID], edge{label: label, target: targetID})
			idx.incoming[targetID] = append(idx.incoming[targetID], edge{label: label, target: s.ID})
		}
	}
	return idx
}

// resolveTarget finds the span a TargetRef names: an exact match on
// (line, token range) if one exists, else the smallest span whose range
// encloses the target range, else no match.
func resolveTarget(spans []*SemanticSpan, ref TargetRef) (SpanId, bool) {
	for _, s := range spans {
		if s.FirstLine == ref.Line && s.LastLine == ref.Line &&
			s.FirstToken == ref.Span.Start && s.LastToken == ref.Span.End {
			return s.ID, true
		}
	}

	var best *SemanticSpan
	for _, s := range spans {
		if !targetWithin(s, ref) {
			continue
		}
		if best == nil || smaller(s, best) {
			best = s
		}
	}
	if best != nil {
		return best.ID, true
	}
	return 0, false
}

func targetWithin(s *SemanticSpan, ref TargetRef) bool {
	start := docPos{line: ref.Line, tok: ref.Span.Start}
	end := docPos{line: ref.Line, tok: ref.Span.End}
	return s.start().leq(start) && end.leq(s.end())
}

// smaller reports whether a's (line, token) footprint is strictly smaller
// than b's: fewer lines, or as many lines and a smaller token distance --
// used to pick the innermost enclosing span among several candidates.
func smaller(a, b *SemanticSpan) bool {
	aLines, bLines := a.LastLine-a.FirstLine, b.LastLine-b.FirstLine
	if aLines != bLines {
		return aLines < bLines
	}
	aSpan := int(a.LastToken) - int(a.FirstToken)
	bSpan := int(b.LastToken) - int(b.FirstToken)
	return aSpan < bSpan
}
