// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package document

import (
	"fmt"
	"reflect"
	"time"

	"github.com/mdhender/layered-nlp/attrs"
	"github.com/mdhender/layered-nlp/internal/lnlperrors"
	"github.com/mdhender/layered-nlp/tokens"
)

// SpanDraft is a not-yet-admitted SemanticSpan: everything AddSpan needs
// except the SpanId, which is assigned only on admission. A DocumentResolver
// returns drafts rather than mutating the document directly: document
// resolvers may read but must not mutate the document they are passed.
type SpanDraft struct {
	FirstLine, LastLine   int
	FirstToken, LastToken tokens.Position
	Payload               any
	Associations          []DocAssociatedSpan
}

// DocumentResolver produces semantic spans from a document's current
// lines and span set. Unlike a line resolver, Resolve has direct read
// access to the whole document -- every line's attribute store and every
// span added by an earlier document resolver in the same run -- because
// span boundaries and associations routinely need to look across lines
// (an obligation on one line associated with a defined term on another).
// Resolve must not mutate d; every new span is expressed as a returned
// SpanDraft, which the runtime admits via AddSpan in returned order.
//
// A resolver declares the types it reads via Dependencies, so
// RunDocumentResolvers can warn when a declared dependency is absent from
// both the lines and the spans added so far, without that being fatal: a
// resolver may have a legitimate fallback path for when its preferred
// input is missing.
type DocumentResolver interface {
	// Name identifies the resolver in diagnostics and metrics.
	Name() string
	// Dependencies lists the attribute or payload types this resolver
	// expects to find already present, either as line attributes or as
	// existing SemanticSpan payload types.
	Dependencies() []reflect.Type
	// Resolve reads d and returns the spans it wants admitted, in the
	// order they should be appended. It must not call d.AddSpan itself.
	Resolve(d *Document) ([]SpanDraft, error)
}

// RunDocumentResolvers runs each resolver against d in declared order,
// admitting every draft it returns via AddSpan before the next resolver
// runs. Document resolvers run after all line resolvers and do not
// observe each other's intermediate state within a single resolve call,
// but later resolvers in the pipeline do see spans admitted by earlier
// ones.
//
// A resolver whose declared dependency is present nowhere in the document
// only logs a warning and increments a metric; it still runs --
// MissingDependency is a warning, not fatal.
//
// If a resolver itself returns an error, RunDocumentResolvers stops and
// returns it wrapped
// in lnlperrors.ErrResolverFailure; every span admitted by earlier
// resolvers in this call is retained.
func RunDocumentResolvers(d *Document, resolvers []DocumentResolver) error {
	for _, r := range resolvers {
		for _, dep := range r.Dependencies() {
			if !d.hasDependency(dep) {
				d.logger.Warn("document resolver missing declared dependency",
					"resolver", r.Name(), "type", dep.String())
				d.metrics.IncMissingDependencyWarning()
			}
		}

		start := time.Now()
		drafts, err := r.Resolve(d)
		d.metrics.ObserveResolver(r.Name(), "document", time.Since(start))
		if err != nil {
			d.logger.Error("document resolver failed", "resolver", r.Name(), "error", err)
			return fmt.Errorf("%w: document resolver %q: %v", lnlperrors.ErrResolverFailure, r.Name(), err)
		}
		for _, sd := range drafts {
			d.AddSpan(sd.Payload, sd.FirstLine, sd.LastLine, sd.FirstToken, sd.LastToken, sd.Associations)
		}
	}
	return nil
}

// hasDependency reports whether t appears as a line attribute type on any
// line of d, or as the payload type of any span already added to d.
func (d *Document) hasDependency(t reflect.Type) bool {
	if len(d.spans.byType[t]) > 0 {
		return true
	}
	for _, l := range d.Lines {
		if attrs.HasType(l.Store(), t) {
			return true
		}
	}
	return false
}
