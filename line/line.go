// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package line implements the Line type: an ordered, immutable token
// sequence plus an additive attribute store. Once constructed, the token
// sequence never changes; attributes accumulate across resolver passes
// via the line's own attrs.Store.
package line

import (
	"github.com/mdhender/layered-nlp/attrs"
	"github.com/mdhender/layered-nlp/tokens"
)

// Line is one line of a document: an immutable token vector plus an
// additive attribute store and an original-text view for reconstruction.
type Line struct {
	text   string
	toks   []tokens.Token
	store  *attrs.Store
	source int // the logical source (e.g. input id) this line came from
}

// New tokenizes text once and returns a Line with an empty attribute
// store. Any input string is a valid line; tokenization has no error
// cases of its own.
func New(text string) *Line {
	return &Line{
		text:  text,
		toks:  tokens.Tokenize(text),
		store: attrs.NewStore(),
	}
}

// NewWithSource is New, additionally recording which logical source (e.g.
// an input document id) this line was produced from, so one logical
// source can expand into multiple lines.
func NewWithSource(text string, source int) *Line {
	l := New(text)
	l.source = source
	return l
}

// Text returns the line's original, untokenized text.
func (l *Line) Text() string { return l.text }

// Source returns the logical source id this line was attributed to.
func (l *Line) Source() int { return l.source }

// Tokens returns the line's token vector. Callers must not mutate the
// returned slice's contents; the Line's tokens never change after
// construction.
func (l *Line) Tokens() []tokens.Token { return l.toks }

// Len returns the number of tokens in the line; it is also the first
// invalid (end-of-line) position, per the "end == line.len()" boundary
// convention.
func (l *Line) Len() tokens.Position { return tokens.Position(len(l.toks)) }

// Token returns the token at pos. It panics if pos is out of range: an
// out-of-range position is always a programmer error in matcher or
// resolver code, never a runtime possibility reachable from input text.
func (l *Line) Token(pos tokens.Position) tokens.Token {
	return l.toks[pos]
}

// TokenText returns the original substring of the token at pos.
func (l *Line) TokenText(pos tokens.Position) string {
	return l.toks[pos].Text
}

// Store returns the line's attribute store.
func (l *Line) Store() *attrs.Store { return l.store }

// Reconstruct joins every token's text in position order. It always
// equals Text() exactly (R1), since Tokenize never drops or alters
// characters.
func (l *Line) Reconstruct() string {
	return tokens.Reconstruct(l.toks)
}
