// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sel

import (
	"github.com/mdhender/layered-nlp/attrs"
	"github.com/mdhender/layered-nlp/line"
	"github.com/mdhender/layered-nlp/tokens"
)

// Matcher is a composable predicate-plus-extractor over a selection: it
// answers "does something matching me start at this exact position", and
// if so, how far the match extends and what value it extracts. Matchers
// never mutate the line; they only read tokens and attributes already
// present in its store.
//
// TryAt attempts a match starting exactly at pos, scanning no further
// than limit (exclusive). It returns the exclusive end of the match, the
// extracted value, and whether a match occurred. Zero-width matchers
// (anchors, Not) return end == pos.
type Matcher interface {
	TryAt(l *line.Line, pos, limit tokens.Position) (end tokens.Position, value any, ok bool)
}

// MatcherFunc adapts a plain function to the Matcher interface.
type MatcherFunc func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool)

func (f MatcherFunc) TryAt(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
	return f(l, pos, limit)
}

// TokenText matches a single token whose text equals text exactly. Unlike
// the generic matchers below, it explicitly skips one leading whitespace
// token before comparing, so that composing two TokenText matchers with
// And lets ordinary inter-word whitespace pass through transparently:
// forward matching skips whitespace only when the matcher explicitly
// requires it.
func TokenText(text string) Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		p := pos
		if p < limit && l.Token(p).Kind == tokens.Whitespace {
			p++
		}
		if p >= limit || p >= l.Len() {
			return 0, nil, false
		}
		if l.Token(p).Text == text {
			return p + 1, l.Token(p).Text, true
		}
		return 0, nil, false
	})
}

// TokenKind matches a single token of the given kind at pos. It does not
// skip whitespace: a generic matcher consumes whitespace tokens as
// visible positions, so TokenKind(tokens.Whitespace) is how a caller
// matches whitespace explicitly.
func TokenKind(k tokens.Kind) Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		if pos >= limit || pos >= l.Len() {
			return 0, nil, false
		}
		if l.Token(pos).Kind == k {
			return pos + 1, l.Token(pos).Text, true
		}
		return 0, nil, false
	})
}

// Whitespace matches a single whitespace token at pos.
func Whitespace() Matcher { return TokenKind(tokens.Whitespace) }

// AttrPresent matches at pos if an attribute of type T covers pos. The
// match extends through the end of the attribute's own range and extracts
// the attribute's value; if that range ends beyond limit, there is no
// match.
func AttrPresent[T any]() Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		for _, r := range attrs.Get[T](l.Store()) {
			if r.Range.Contains(pos) {
				end := r.Range.End + 1
				if end > limit {
					return 0, nil, false
				}
				return end, *r.Value, true
			}
		}
		return 0, nil, false
	})
}

// AttrEquals matches at pos if an attribute of type T covers pos and its
// value equals want.
func AttrEquals[T comparable](want T) Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		for _, r := range attrs.Get[T](l.Store()) {
			if r.Range.Contains(pos) && *r.Value == want {
				end := r.Range.End + 1
				if end > limit {
					return 0, nil, false
				}
				return end, *r.Value, true
			}
		}
		return 0, nil, false
	})
}

// StartOfLine is a zero-width anchor matching only at token position 0.
func StartOfLine() Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		if pos == 0 {
			return pos, nil, true
		}
		return 0, nil, false
	})
}

// EndOfLine is a zero-width anchor matching only at the line's terminal
// position -- the only way to reach the line terminator.
func EndOfLine() Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		if pos == l.Len() {
			return pos, nil, true
		}
		return 0, nil, false
	})
}

// And matches if every matcher matches in sequence, each starting where
// the previous one ended. Its extracted value is the slice of each
// matcher's own extracted value, in order.
func And(matchers ...Matcher) Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		cur := pos
		vals := make([]any, 0, len(matchers))
		for _, m := range matchers {
			end, val, ok := m.TryAt(l, cur, limit)
			if !ok {
				return 0, nil, false
			}
			vals = append(vals, val)
			cur = end
		}
		return cur, vals, true
	})
}

// Or matches if any matcher matches at pos. Per the "earliest-start, then
// longest" tie-break, when more than one alternative matches at the same
// pos, Or returns the longest one.
func Or(matchers ...Matcher) Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		matched := false
		var bestEnd tokens.Position
		var bestVal any
		for _, m := range matchers {
			if end, val, ok := m.TryAt(l, pos, limit); ok {
				if !matched || end > bestEnd {
					matched, bestEnd, bestVal = true, end, val
				}
			}
		}
		if !matched {
			return 0, nil, false
		}
		return bestEnd, bestVal, true
	})
}

// Not is a zero-width negative lookahead: it matches (consuming nothing)
// iff m does not match at pos.
func Not(m Matcher) Matcher {
	return MatcherFunc(func(l *line.Line, pos, limit tokens.Position) (tokens.Position, any, bool) {
		if _, _, ok := m.TryAt(l, pos, limit); ok {
			return 0, nil, false
		}
		return pos, nil, true
	})
}
