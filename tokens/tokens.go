// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package tokens implements the tokenizer contract for layered-nlp lines.
//
// A line is tokenized exactly once, deterministically, into a sequence of
// Token values tagged with one of five kinds. Whitespace tokens are
// first-class: they occupy positions and participate in selection
// geometry; generic matchers consume them as ordinary positions, and only
// sel.TokenText skips a leading one.
package tokens

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Kind classifies a Token. The core depends only on the total order of
// positions and these five tags; it never inspects the rune content of a
// token beyond what the tokenizer recorded as Text.
type Kind int

const (
	Word Kind = iota
	Number
	Punctuation
	Whitespace
	Symbol
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "Word"
	case Number:
		return "Number"
	case Punctuation:
		return "Punctuation"
	case Whitespace:
		return "Whitespace"
	case Symbol:
		return "Symbol"
	default:
		return "Kind(?)"
	}
}

// Position is a zero-based index of a Token within its Line. It is the
// unit of every Selection and attribute range in the core.
type Position int

// ByteSpan is the half-open byte range of a Token within its Line's
// original text, used for reconstruction (R1) and for mapping back to
// source for diagnostics.
type ByteSpan struct {
	Start int
	End   int
}

// Token is a single classified unit of a line.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
	Span ByteSpan
}

// Tokenize splits a raw line into tokens. It is deterministic and stable:
// the same input always produces the same token sequence. Whitespace runs
// are collapsed into a single Whitespace token. Any input string is valid;
// there is no tokenization error, not even for an empty line.
//
// Token.Text is always the untouched original substring, so joining it in
// position order reproduces the input exactly (R1). Classification alone
// consults a fullwidth/halfwidth-normalized view of each rune, so a "ABC"
// typed with fullwidth Latin letters (common in contract text pasted from
// East-Asian-aware word processors) still classifies as a Word.
func Tokenize(line string) []Token {
	var out []Token
	pos := Position(0)
	byteOff := 0

	runes := []rune(line)
	i := 0
	for i < len(runes) {
		switch classifyRune(runes[i]) {
		case classWhitespace:
			start := byteOff
			j := i
			for j < len(runes) && classifyRune(runes[j]) == classWhitespace {
				byteOff += utf8.RuneLen(runes[j])
				j++
			}
			out = append(out, Token{
				Kind: Whitespace,
				Text: string(runes[i:j]),
				Pos:  pos,
				Span: ByteSpan{Start: start, End: byteOff},
			})
			i = j

		case classDigit:
			start := byteOff
			j := i
			for j < len(runes) && classifyRune(runes[j]) == classDigit {
				byteOff += utf8.RuneLen(runes[j])
				j++
			}
			out = append(out, Token{
				Kind: Number,
				Text: string(runes[i:j]),
				Pos:  pos,
				Span: ByteSpan{Start: start, End: byteOff},
			})
			i = j

		case classWord:
			start := byteOff
			j := i
			for j < len(runes) && classifyRune(runes[j]) == classWord {
				byteOff += utf8.RuneLen(runes[j])
				j++
			}
			out = append(out, Token{
				Kind: Word,
				Text: string(runes[i:j]),
				Pos:  pos,
				Span: ByteSpan{Start: start, End: byteOff},
			})
			i = j

		default:
			start := byteOff
			byteOff += utf8.RuneLen(runes[i])
			kind := Symbol
			if classifyRune(runes[i]) == classPunctuation {
				kind = Punctuation
			}
			out = append(out, Token{
				Kind: kind,
				Text: string(runes[i]),
				Pos:  pos,
				Span: ByteSpan{Start: start, End: byteOff},
			})
			i++
		}
		pos++
	}
	return out
}

type runeClass int

const (
	classWhitespace runeClass = iota
	classDigit
	classWord
	classPunctuation
	classSymbol
)

// punctuationRunes are characters that terminate sentences, clauses, or
// quotations -- the marks a reader of a legal document would call
// punctuation rather than a symbol.
const punctuationRunes = ".,;:!?\"'()[]{}"

// classifyRune narrows fullwidth/halfwidth variants before classifying, so
// "ＡＢＣ" (fullwidth Latin) and "ABC" (ASCII) both classify as word runes,
// without changing the byte span or stored text of the token they belong
// to.
func classifyRune(r rune) runeClass {
	narrow := narrowRune(r)
	switch {
	case unicode.IsSpace(narrow):
		return classWhitespace
	case unicode.IsDigit(narrow):
		return classDigit
	case unicode.IsLetter(narrow):
		return classWord
	case strings.ContainsRune(punctuationRunes, narrow):
		return classPunctuation
	default:
		return classSymbol
	}
}

func narrowRune(r rune) rune {
	narrowed := []rune(width.Narrow.String(string(r)))
	if len(narrowed) == 0 {
		return r
	}
	return narrowed[0]
}

// Reconstruct joins token text in position order, reproducing the original
// line text exactly (R1), provided toks is the full, untruncated token
// sequence of that line.
func Reconstruct(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Text)
	}
	return sb.String()
}
