// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package document implements the document-level extension: an ordered
// sequence of processed lines, a semantic-span index, and a lazily built
// association navigation index, plus the runtimes that execute line
// resolvers across every line and document resolvers across the
// aggregated document.
package document

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/mdhender/layered-nlp/internal/lnlpmetrics"
	"github.com/mdhender/layered-nlp/line"
	"github.com/mdhender/layered-nlp/resolve"
)

// Document owns an ordered, immutable-after-construction list of lines,
// the document-level semantic span index, and a lazily built association
// navigation index.
type Document struct {
	// ID is an identity for this document independent of any in-document
	// sequence number, for external correlation (logs, traces, storage
	// keys in a hosting application -- the core itself persists nothing).
	ID uuid.UUID

	Lines        []*line.Line
	LineToSource []int
	OriginalText string

	spans      *spanIndex
	assocIndex *associationIndex // nil until first navigation query after a mutation

	logger  *slog.Logger
	metrics *lnlpmetrics.Metrics
}

// Options configures a Document's runtime behavior.
type Options struct {
	Logger  *slog.Logger
	Metrics *lnlpmetrics.Metrics
}

// New builds a Document from lines already constructed by the caller
// (typically via line.New/line.NewWithSource, one per logical input
// line). originalText is the concatenation used to reconstruct absolute
// positions across the whole document.
func New(lines []*line.Line, originalText string, opts Options) *Document {
	lts := make([]int, len(lines))
	for i, l := range lines {
		lts[i] = l.Source()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{
		ID:           uuid.New(),
		Lines:        lines,
		LineToSource: lts,
		OriginalText: originalText,
		spans:        newSpanIndex(),
		logger:       logger,
		metrics:      opts.Metrics,
	}
}

// RunLineResolvers runs resolvers against every line in the document, in
// line order. It stops at the first line resolver failure and returns it;
// lines processed before the failing one keep whatever was folded in.
func (d *Document) RunLineResolvers(resolvers []resolve.Resolver) error {
	for _, l := range d.Lines {
		if err := resolve.Run(l, resolvers, resolve.Options{Logger: d.logger, Metrics: d.metrics}); err != nil {
			return err
		}
	}
	return nil
}

// Line returns the line at index i. It panics on an out-of-range index:
// that is always a caller bug, never something input text can trigger.
func (d *Document) Line(i int) *line.Line { return d.Lines[i] }

// invalidate drops the cached association index. The next navigation
// query rebuilds it from the current span set.
func (d *Document) invalidate() {
	d.assocIndex = nil
}
