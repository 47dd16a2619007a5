// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package resolve implements the line resolver runtime: it executes an
// ordered pipeline of line-scoped resolvers, folding each one's emitted
// assignments into the line's attribute store before the next resolver
// runs.
package resolve

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/mdhender/layered-nlp/assoc"
	"github.com/mdhender/layered-nlp/attrs"
	"github.com/mdhender/layered-nlp/internal/lnlperrors"
	"github.com/mdhender/layered-nlp/internal/lnlpmetrics"
	"github.com/mdhender/layered-nlp/line"
	"github.com/mdhender/layered-nlp/sel"
)

// LineResolver emits attributes of type T from the full-line selection.
// Go must be a pure function of the selection it is given: it may read
// whatever is already in the line's attribute store through the store's
// own query API, but it must not mutate the line.
//
// Whether running the same resolver twice across two full pipeline passes
// is idempotent depends on whether Go reads attributes other resolvers
// put in the store on a prior pass -- that is a property of the resolver,
// not of this runtime, and is the resolver author's responsibility to
// document.
type LineResolver[T any] interface {
	Go(full sel.Selection) ([]sel.Assignment[T], error)
}

// Resolver is the type-erased form of LineResolver, used to build a single
// ordered pipeline out of resolvers that each emit a different concrete
// attribute type. Use Adapt to build one from a LineResolver[T].
type Resolver interface {
	// Name is used for diagnostics and metrics labels only.
	Name() string
	emitType() reflect.Type
	goErased(full sel.Selection) ([]erasedAssignment, error)
}

type erasedAssignment struct {
	Range        attrs.Range
	Value        any
	Associations []assoc.AssociatedSpan
}

type adapter[T any] struct {
	name  string
	inner LineResolver[T]
}

// Adapt wraps a LineResolver[T] so it can run inside a type-erased
// pipeline alongside resolvers of other attribute types. name identifies
// the resolver in diagnostics and metrics.
func Adapt[T any](name string, r LineResolver[T]) Resolver {
	return adapter[T]{name: name, inner: r}
}

func (a adapter[T]) Name() string { return a.name }

func (a adapter[T]) emitType() reflect.Type {
	var zero T
	return reflect.TypeOf(&zero).Elem()
}

func (a adapter[T]) goErased(full sel.Selection) ([]erasedAssignment, error) {
	assigns, err := a.inner.Go(full)
	if err != nil {
		return nil, err
	}
	out := make([]erasedAssignment, len(assigns))
	for i, asg := range assigns {
		out[i] = erasedAssignment{Range: asg.Range, Value: asg.Value, Associations: asg.Associations}
	}
	return out, nil
}

// Options configures a single Run invocation.
type Options struct {
	// Logger receives resolver-failure diagnostics. If nil, slog.Default
	// is used.
	Logger *slog.Logger
	// Metrics, if non-nil, receives per-resolver duration and assignment
	// counts. A nil Metrics, or the empty one lnlpmetrics.New(nil)
	// returns, is safe and simply records nothing.
	Metrics *lnlpmetrics.Metrics
}

// Run executes each resolver in declared order against l, folding
// returned assignments into l's attribute store in the order they were
// emitted. A resolver's own returned assignments are never re-queried by
// later assignments within the same resolver's pass; only the store
// itself accumulates across resolvers.
//
// If a resolver returns an error, Run stops and returns it wrapped in
// ErrResolverFailure; the store retains everything folded in by earlier
// resolvers in this Run call -- a failing resolver's pass is the only
// thing that terminates, not prior state.
func Run(l *line.Line, resolvers []Resolver, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	full := sel.Full(l)
	for _, r := range resolvers {
		start := time.Now()
		assigns, err := r.goErased(full)
		opts.Metrics.ObserveResolver(r.Name(), "line", time.Since(start))
		if err != nil {
			logger.Error("line resolver failed", "resolver", r.Name(), "error", err)
			return fmt.Errorf("%w: resolver %q: %v", lnlperrors.ErrResolverFailure, r.Name(), err)
		}
		t := r.emitType()
		for _, a := range assigns {
			attrs.InsertErasedWithAssociations(l.Store(), t, a.Range, a.Value, a.Associations)
		}
		opts.Metrics.AddAssignments(r.Name(), len(assigns))
	}
	return nil
}
