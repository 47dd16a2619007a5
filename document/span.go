// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package document

import (
	"fmt"
	"reflect"

	"github.com/alecthomas/repr"

	"github.com/mdhender/layered-nlp/assoc"
	"github.com/mdhender/layered-nlp/tokens"
)

// SpanId identifies a SemanticSpan within one Document. Ids are assigned in
// insertion order starting at 1 and are never reused; they are not stable
// across documents.
type SpanId int64

// TargetRef locates the span an outgoing DocAssociatedSpan points at. A
// document multiplexes many lines, so unlike assoc.SpanRef (a token range
// on a single, implicit line) a document-level target must also name which
// line the range belongs to.
type TargetRef struct {
	Line int
	Span assoc.SpanRef
}

// DocAssociatedSpan is one outgoing association owned by a SemanticSpan,
// the document-level counterpart of assoc.AssociatedSpan.
type DocAssociatedSpan struct {
	Kind   assoc.Kind
	Target TargetRef
}

// SnapshotKind is an optional marker a semantic span's payload type may
// implement to control how DebugText renders it. Types that don't
// implement it fall back to a generic repr dump of the payload value.
type SnapshotKind interface {
	// SnapshotPrefix is a short tag, e.g. "OBL" or "DEF", prepended to the
	// rendered span.
	SnapshotPrefix() string
	// SnapshotName is the human-facing name of the payload's semantic
	// category, e.g. "ObligationPhrase".
	SnapshotName() string
}

// SemanticSpan is a document-level annotation over a contiguous run of
// lines, carrying a type-erased payload and its outgoing associations.
type SemanticSpan struct {
	ID SpanId

	// FirstLine and LastLine are indices into Document.Lines; for a span
	// confined to one line they're equal.
	FirstLine, LastLine int
	// FirstToken is a position on FirstLine; LastToken is a position on
	// LastLine. For a single-line span both are positions on that one
	// line and FirstToken <= LastToken.
	FirstToken, LastToken tokens.Position

	Payload     any
	PayloadType reflect.Type

	Associations []DocAssociatedSpan
}

// start and end give the span's location as a single comparable compound
// key, (line, token), used for document ordering and containment checks.
func (s *SemanticSpan) start() docPos { return docPos{line: s.FirstLine, tok: s.FirstToken} }
func (s *SemanticSpan) end() docPos   { return docPos{line: s.LastLine, tok: s.LastToken} }

// docPos is a (line, token) pair ordered lexicographically by line, then
// token.
type docPos struct {
	line int
	tok  tokens.Position
}

func (a docPos) less(b docPos) bool {
	if a.line != b.line {
		return a.line < b.line
	}
	return a.tok < b.tok
}

func (a docPos) leq(b docPos) bool {
	return a == b || a.less(b)
}

// encloses reports whether the [s.start, s.end] range strictly contains
// [other.start, other.end] -- strict in the sense that it is not also
// equal ("a is a parent of b iff a strictly contains b"), generalized
// here from line-range containment to the finer (line, token) ordering
// so token-level nesting on a shared line is also honored.
func (s *SemanticSpan) encloses(other *SemanticSpan) bool {
	sStart, sEnd := s.start(), s.end()
	oStart, oEnd := other.start(), other.end()
	if !sStart.leq(oStart) || !oEnd.leq(sEnd) {
		return false
	}
	return sStart != oStart || sEnd != oEnd
}

// DebugText renders a span for diagnostic display, using SnapshotKind when
// the payload implements it, else a generic repr dump. It is for
// diagnostics only, never for parsing.
func (s *SemanticSpan) DebugText() string {
	if sk, ok := s.Payload.(SnapshotKind); ok {
		return fmt.Sprintf("[%s:%s lines %d-%d tokens %d-%d]", sk.SnapshotPrefix(), sk.SnapshotName(),
			s.FirstLine, s.LastLine, s.FirstToken, s.LastToken)
	}
	return fmt.Sprintf("[%s lines %d-%d tokens %d-%d %s]", s.PayloadType, s.FirstLine, s.LastLine,
		s.FirstToken, s.LastToken, repr.String(s.Payload))
}
