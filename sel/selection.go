// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package sel implements the selection and matcher algebra: a half-open
// token range over a line, together with composable matchers that drive
// forward and backward scans and produce assignments without ever
// mutating the line.
package sel

import (
	"fmt"
	"strings"

	"github.com/mdhender/layered-nlp/assoc"
	"github.com/mdhender/layered-nlp/attrs"
	"github.com/mdhender/layered-nlp/internal/lnlperrors"
	"github.com/mdhender/layered-nlp/line"
	"github.com/mdhender/layered-nlp/tokens"
)

// Selection is a half-open token range [Start, End) over a single Line.
// Selections are cheap to copy and never mutate the line; they are the
// only inputs and outputs of matchers.
type Selection struct {
	ln    *line.Line
	start tokens.Position
	end   tokens.Position
}

// Full returns a selection spanning the entire line.
func Full(l *line.Line) Selection {
	return Selection{ln: l, start: 0, end: l.Len()}
}

// New returns the selection [start, end) over l. It panics if the range
// isn't within [0, l.Len()]; building an out-of-bounds selection is always
// a programmer error, never reachable from input text.
func New(l *line.Line, start, end tokens.Position) Selection {
	if start < 0 || end < start || end > l.Len() {
		panic(fmt.Sprintf("sel: invalid range [%d,%d) over line of length %d", start, end, l.Len()))
	}
	return Selection{ln: l, start: start, end: end}
}

// Line returns the selection's line.
func (s Selection) Line() *line.Line { return s.ln }

// Start returns the selection's inclusive start position.
func (s Selection) Start() tokens.Position { return s.start }

// End returns the selection's exclusive end position.
func (s Selection) End() tokens.Position { return s.end }

// Len returns the number of token positions spanned.
func (s Selection) Len() int { return int(s.end - s.start) }

// IsEmpty reports whether the selection spans zero positions.
func (s Selection) IsEmpty() bool { return s.end <= s.start }

// SpanRef converts the half-open selection to the inclusive SpanRef form
// used by attribute ranges and associations. Only valid for a non-empty
// selection.
func (s Selection) SpanRef() assoc.SpanRef {
	return assoc.SpanRef{Start: s.start, End: s.end - 1}
}

// Text reconstructs the original text spanned by the selection by joining
// token text in position order.
func (s Selection) Text() string {
	var sb strings.Builder
	for p := s.start; p < s.end; p++ {
		sb.WriteString(s.ln.TokenText(p))
	}
	return sb.String()
}

// SplitWith splits s at the endpoints of other, which must be a selection
// over the same line. It returns the portion of s before other's start,
// the portion of s overlapping other, and the portion of s after other's
// end -- used to decide containment and ordering without exposing raw
// indices.
func (s Selection) SplitWith(other Selection) (before, inside, after Selection) {
	clamp := func(p tokens.Position) tokens.Position {
		if p < s.start {
			return s.start
		}
		if p > s.end {
			return s.end
		}
		return p
	}
	os, oe := clamp(other.start), clamp(other.end)
	before = Selection{ln: s.ln, start: s.start, end: os}
	inside = Selection{ln: s.ln, start: os, end: oe}
	after = Selection{ln: s.ln, start: oe, end: s.end}
	return before, inside, after
}

// MatchFirstForwards advances from Start() to the nearest occurrence of m,
// returning the extended selection from Start() through the end of the
// match together with the matcher's extracted value. It returns false if
// there is no match, or if the selection is empty.
func (s Selection) MatchFirstForwards(m Matcher) (Selection, any, bool) {
	if s.IsEmpty() {
		return Selection{}, nil, false
	}
	for pos := s.start; pos <= s.end; pos++ {
		if end, val, ok := m.TryAt(s.ln, pos, s.end); ok {
			return Selection{ln: s.ln, start: s.start, end: end}, val, true
		}
	}
	return Selection{}, nil, false
}

// MatchFirstBackwards is the symmetric counterpart of MatchFirstForwards:
// it advances from End() backwards to the nearest occurrence of m,
// returning the extended selection from the start of the match through
// End().
func (s Selection) MatchFirstBackwards(m Matcher) (Selection, any, bool) {
	if s.IsEmpty() {
		return Selection{}, nil, false
	}
	for pos := s.end; pos >= s.start; pos-- {
		if end, val, ok := m.TryAt(s.ln, pos, s.end); ok && end <= s.end {
			return Selection{ln: s.ln, start: pos, end: s.end}, val, true
		}
	}
	return Selection{}, nil, false
}

// Match is one non-overlapping result of FindBy/FindFirstBy: the match's
// own span (not extended to the search selection's boundaries) and the
// matcher's extracted value.
type Match struct {
	Selection Selection
	Value     any
}

// FindBy returns every non-overlapping match of m inside s, in document
// order. Ties are broken earliest-start-then-longest: once a match is
// found at a position, scanning resumes after that match's end, so
// overlapping candidates starting inside an already-matched span are
// never reported.
func (s Selection) FindBy(m Matcher) []Match {
	var out []Match
	pos := s.start
	for pos <= s.end {
		end, val, ok := m.TryAt(s.ln, pos, s.end)
		if ok {
			out = append(out, Match{Selection: Selection{ln: s.ln, start: pos, end: end}, Value: val})
			if end <= pos {
				pos++ // zero-width match: avoid looping forever
			} else {
				pos = end
			}
			continue
		}
		pos++
	}
	return out
}

// FindFirstBy returns the first match of m inside s, if any.
func (s Selection) FindFirstBy(m Matcher) (Match, bool) {
	pos := s.start
	for pos <= s.end {
		if end, val, ok := m.TryAt(s.ln, pos, s.end); ok {
			return Match{Selection: Selection{ln: s.ln, start: pos, end: end}, Value: val}, true
		}
		pos++
	}
	return Match{}, false
}

// TokenTextAt returns the text of the token at pos, if pos is a valid
// token position within the selection's line. This is the "current token
// text" helper.
func TokenTextAt(s Selection, pos tokens.Position) (string, bool) {
	if pos < 0 || pos >= s.ln.Len() {
		return "", false
	}
	return s.ln.TokenText(pos), true
}

// Assignment is a resolver output: an inclusive attribute range, the
// value to attach, and any associations it carries, ready to be folded
// into a line's attribute store by the resolver runtime.
type Assignment[T any] struct {
	Range        attrs.Range
	Value        T
	Associations []assoc.AssociatedSpan
}

// AssignmentBuilder accumulates associations for a pending Assignment.
// Obtain one with Assign and finalize it with Build.
type AssignmentBuilder[T any] struct {
	sel    Selection
	value  T
	assocs []assoc.AssociatedSpan
}

// Assign is the entry point for emitting an attribute over s.
func Assign[T any](s Selection, value T) *AssignmentBuilder[T] {
	return &AssignmentBuilder[T]{sel: s, value: value}
}

// WithAssociation records one association, owned by the eventual
// Assignment, targeting an inclusive range on the same line or document.
func (b *AssignmentBuilder[T]) WithAssociation(kind assoc.Kind, target assoc.SpanRef) *AssignmentBuilder[T] {
	b.assocs = append(b.assocs, assoc.AssociatedSpan{Kind: kind, Target: target})
	return b
}

// Build finalizes the assignment. It returns ErrInvalidRange if the
// selection is empty or any association's target references positions
// outside the line -- always a programmer error.
func (b *AssignmentBuilder[T]) Build() (Assignment[T], error) {
	if b.sel.IsEmpty() {
		return Assignment[T]{}, fmt.Errorf("%w: empty selection has no inclusive range", lnlperrors.ErrInvalidRange)
	}
	lineLen := b.sel.ln.Len()
	for _, a := range b.assocs {
		if a.Target.Start < 0 || a.Target.End >= lineLen || a.Target.Start > a.Target.End {
			return Assignment[T]{}, fmt.Errorf("%w: association target %v outside line of length %d", lnlperrors.ErrInvalidRange, a.Target, lineLen)
		}
	}
	return Assignment[T]{
		Range:        attrs.Range{Start: b.sel.start, End: b.sel.end - 1},
		Value:        b.value,
		Associations: b.assocs,
	}, nil
}
