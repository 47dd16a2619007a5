// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package document_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mdhender/layered-nlp/assoc"
	"github.com/mdhender/layered-nlp/document"
	"github.com/mdhender/layered-nlp/line"
)

type testAssocKind string

func (k testAssocKind) Label() string      { return string(k) }
func (k testAssocKind) Glyph() (rune, bool) { return 0, false }

const obligorSource testAssocKind = "obligor_source"

type DefinedTerm struct{ Term string }
type ObligationPhrase struct {
	Obligor string
	Action  string
}

func newTestDoc(t *testing.T) *document.Document {
	t.Helper()
	l0 := line.New(`Company (the "Company") is defined here.`)
	l1 := line.New(`The Company shall deliver goods.`)
	return document.New([]*line.Line{l0, l1}, l0.Text()+"\n"+l1.Text(), document.Options{})
}

// TestAssociationNavigation covers spec end-to-end scenario 5: a
// DefinedTerm span on line 0 and an ObligationPhrase span on line 1 whose
// obligor_source association points at the DefinedTerm's range.
func TestAssociationNavigation(t *testing.T) {
	d := newTestDoc(t)

	// "Company" is the first token ("Company (the \"Company\") ...") on line 0.
	definedID := d.AddSpan(DefinedTerm{Term: "Company"}, 0, 0, 0, 0, nil)

	// The obligation phrase itself spans several tokens on line 1; its
	// association points back at the DefinedTerm span's exact range.
	obligationID := d.AddSpan(ObligationPhrase{Obligor: "Company", Action: "deliver goods"}, 1, 1, 1, 5, []document.DocAssociatedSpan{
		{Kind: obligorSource, Target: document.TargetRef{Line: 0, Span: assoc.SpanRef{Start: 0, End: 0}}},
	})

	obligation, ok := d.Span(obligationID)
	if !ok {
		t.Fatal("obligation span not found")
	}
	got := obligation.Associations("obligor_source")
	if len(got) != 1 || got[0].ID() != definedID {
		t.Fatalf("want associations(obligor_source) = [%d], got %v", definedID, ids(got))
	}

	defined, ok := d.Span(definedID)
	if !ok {
		t.Fatal("defined term span not found")
	}
	inbound := defined.Inbound("obligor_source")
	if len(inbound) != 1 || inbound[0].ID() != obligationID {
		t.Fatalf("want inbound(obligor_source) = [%d], got %v", obligationID, ids(inbound))
	}

	// Adding a further, unrelated span must not disturb existing edges
	// (spec scenario 5: "adding any further span ... returns the same
	// results plus any newly introduced edges, and no stale ones").
	d.AddSpan(DefinedTerm{Term: "goods"}, 1, 1, 4, 4, nil)
	got2 := obligation.Associations("obligor_source")
	if len(got2) != 1 || got2[0].ID() != definedID {
		t.Fatalf("association set changed after unrelated AddSpan: %v", ids(got2))
	}
}

func ids(rs []document.SpanResult) []document.SpanId {
	out := make([]document.SpanId, len(rs))
	for i, r := range rs {
		out[i] = r.ID()
	}
	return out
}

// TestQueryIsDocumentOrderedRegardlessOfInsertionOrder covers scenario 6
// and invariant A5.
func TestQueryIsDocumentOrderedRegardlessOfInsertionOrder(t *testing.T) {
	lines := make([]*line.Line, 4)
	for i := range lines {
		lines[i] = line.New("Company shall deliver goods")
	}
	d := document.New(lines, "", document.Options{})

	// Insert out of document order: line 3, then line 1, then line 2, then
	// line 0.
	d.AddSpan(ObligationPhrase{Obligor: "l3"}, 3, 3, 0, 3, nil)
	d.AddSpan(ObligationPhrase{Obligor: "l1"}, 1, 1, 0, 3, nil)
	d.AddSpan(ObligationPhrase{Obligor: "l2"}, 2, 2, 0, 3, nil)
	d.AddSpan(ObligationPhrase{Obligor: "l0"}, 0, 0, 0, 3, nil)

	got := document.Query[ObligationPhrase](d)
	if len(got) != 4 {
		t.Fatalf("want 4 results, got %d", len(got))
	}
	wantOrder := []string{"l0", "l1", "l2", "l3"}
	for i, w := range wantOrder {
		if got[i].Value.Obligor != w {
			t.Errorf("position %d: want obligor %q, got %q", i, w, got[i].Value.Obligor)
		}
		if got[i].FirstLine != i {
			t.Errorf("position %d: want first line %d, got %d", i, i, got[i].FirstLine)
		}
	}
}

// TestAssociationIndexRebuildsAfterMutation covers invariant A6.
func TestAssociationIndexRebuildsAfterMutation(t *testing.T) {
	d := newTestDoc(t)
	definedID := d.AddSpan(DefinedTerm{Term: "Company"}, 0, 0, 0, 0, nil)
	obligationID := d.AddSpan(ObligationPhrase{Obligor: "Company"}, 1, 1, 1, 5, []document.DocAssociatedSpan{
		{Kind: obligorSource, Target: document.TargetRef{Line: 0, Span: assoc.SpanRef{Start: 0, End: 0}}},
	})

	obligation, _ := d.Span(obligationID)
	if len(obligation.Associations("obligor_source")) != 1 {
		t.Fatal("expected one association before mutation")
	}

	// A second span with its own obligor_source edge must show up on the
	// next navigation call without requiring any explicit rebuild call.
	secondDefined := d.AddSpan(DefinedTerm{Term: "goods"}, 1, 1, 4, 4, nil)
	secondObligation := d.AddSpan(ObligationPhrase{Obligor: "goods"}, 1, 1, 1, 5, []document.DocAssociatedSpan{
		{Kind: obligorSource, Target: document.TargetRef{Line: 1, Span: assoc.SpanRef{Start: 4, End: 4}}},
	})

	second, _ := d.Span(secondObligation)
	edges := second.Associations("obligor_source")
	if len(edges) != 1 || edges[0].ID() != secondDefined {
		t.Fatalf("want [%d], got %v", secondDefined, ids(edges))
	}

	// The original edge must still be intact, unaffected by the new spans.
	first, _ := d.Span(definedID)
	if len(first.Inbound("obligor_source")) != 1 {
		t.Fatal("original association lost after unrelated mutation")
	}
}

// TestParentsAndChildrenRespectStrictLineContainment covers invariant A7.
func TestParentsAndChildrenRespectStrictLineContainment(t *testing.T) {
	lines := []*line.Line{line.New("Company shall deliver goods and services promptly")}
	d := document.New(lines, "", document.Options{})

	outer := d.AddSpan(ObligationPhrase{Obligor: "outer"}, 0, 0, 0, 7, nil)
	inner := d.AddSpan(DefinedTerm{Term: "inner"}, 0, 0, 2, 4, nil)

	innerResult, _ := d.Span(inner)
	parents := innerResult.Parents()
	if len(parents) != 1 || parents[0].ID() != outer {
		t.Fatalf("want inner's only parent to be outer span, got %v", ids(parents))
	}

	outerResult, _ := d.Span(outer)
	children := outerResult.Children()
	if len(children) != 1 || children[0].ID() != inner {
		t.Fatalf("want outer's only child to be inner span, got %v", ids(children))
	}
	if len(outerResult.Parents()) != 0 {
		t.Error("outer span must have no parents of its own")
	}

	// A span with an identical (non-strictly-larger) range is neither a
	// parent nor a child of the original -- containment must be strict.
	equal := d.AddSpan(DefinedTerm{Term: "equal"}, 0, 0, 0, 7, nil)
	equalResult, _ := d.Span(equal)
	for _, p := range equalResult.Parents() {
		if p.ID() == outer {
			t.Error("identical-range span must not treat its twin as a parent")
		}
	}
	for _, c := range outerResult.Children() {
		if c.ID() == equal {
			t.Error("identical-range span must not be treated as a child")
		}
	}
}

// TestOverlappingSharesAtLeastOneTokenButNeitherEncloses covers A8's
// sibling invariant for overlap (distinct from strict containment).
func TestOverlappingSharesAtLeastOneTokenButNeitherEncloses(t *testing.T) {
	lines := []*line.Line{line.New("Company shall deliver goods and services")}
	d := document.New(lines, "", document.Options{})

	a := d.AddSpan(DefinedTerm{Term: "a"}, 0, 0, 0, 3, nil)
	b := d.AddSpan(DefinedTerm{Term: "b"}, 0, 0, 3, 6, nil)
	c := d.AddSpan(DefinedTerm{Term: "c"}, 0, 0, 5, 6, nil)

	ra, _ := d.Span(a)
	overlapping := ra.Overlapping()
	if len(overlapping) != 1 || overlapping[0].ID() != b {
		t.Fatalf("want a overlapping only b (shared token 3), got %v", ids(overlapping))
	}

	rc, _ := d.Span(c)
	if len(rc.Overlapping()) != 0 {
		t.Errorf("c shares no token with a and is enclosed by b, want no overlap results, got %v", ids(rc.Overlapping()))
	}
}

// TestUnresolvedAssociationIsDroppedFromNavigation covers the
// UnresolvedAssociation error-taxonomy entry: a target that matches no
// span is silently absent from navigation.
func TestUnresolvedAssociationIsDroppedFromNavigation(t *testing.T) {
	d := newTestDoc(t)
	obligationID := d.AddSpan(ObligationPhrase{Obligor: "Company"}, 1, 1, 1, 5, []document.DocAssociatedSpan{
		{Kind: obligorSource, Target: document.TargetRef{Line: 0, Span: assoc.SpanRef{Start: 9, End: 9}}},
	})
	obligation, _ := d.Span(obligationID)
	if got := obligation.Associations("obligor_source"); len(got) != 0 {
		t.Fatalf("want unresolved association dropped, got %v", ids(got))
	}
}

type countingResolver struct {
	deps   []reflect.Type
	drafts []document.SpanDraft
	err    error
}

func (r countingResolver) Name() string                 { return "counting" }
func (r countingResolver) Dependencies() []reflect.Type { return r.deps }
func (r countingResolver) Resolve(d *document.Document) ([]document.SpanDraft, error) {
	return r.drafts, r.err
}

func TestRunDocumentResolversAdmitsDraftsInOrder(t *testing.T) {
	d := newTestDoc(t)
	resolvers := []document.DocumentResolver{
		countingResolver{drafts: []document.SpanDraft{
			{FirstLine: 0, LastLine: 0, FirstToken: 0, LastToken: 0, Payload: DefinedTerm{Term: "Company"}},
			{FirstLine: 1, LastLine: 1, FirstToken: 1, LastToken: 1, Payload: DefinedTerm{Term: "Company2"}},
		}},
	}
	if err := document.RunDocumentResolvers(d, resolvers); err != nil {
		t.Fatal(err)
	}
	got := document.Query[DefinedTerm](d)
	if len(got) != 2 {
		t.Fatalf("want 2 defined terms admitted, got %d", len(got))
	}
}

func TestRunDocumentResolversSurfacesFailure(t *testing.T) {
	d := newTestDoc(t)
	boom := errors.New("boom")
	resolvers := []document.DocumentResolver{
		countingResolver{drafts: []document.SpanDraft{
			{FirstLine: 0, LastLine: 0, FirstToken: 0, LastToken: 0, Payload: DefinedTerm{Term: "kept"}},
		}},
		countingResolver{err: boom},
	}
	err := document.RunDocumentResolvers(d, resolvers)
	if err == nil {
		t.Fatal("want error")
	}
	// the first resolver's span must still have been admitted.
	if got := document.Query[DefinedTerm](d); len(got) != 1 {
		t.Fatalf("want 1 defined term retained after later failure, got %d", len(got))
	}
}

func TestRunDocumentResolversWarnsOnMissingDependencyButStillRuns(t *testing.T) {
	d := newTestDoc(t)
	neverSeen := reflect.TypeOf(ObligationPhrase{})
	resolvers := []document.DocumentResolver{
		countingResolver{
			deps: []reflect.Type{neverSeen},
			drafts: []document.SpanDraft{
				{FirstLine: 0, LastLine: 0, FirstToken: 0, LastToken: 0, Payload: DefinedTerm{Term: "ran anyway"}},
			},
		},
	}
	if err := document.RunDocumentResolvers(d, resolvers); err != nil {
		t.Fatal(err)
	}
	if got := document.Query[DefinedTerm](d); len(got) != 1 {
		t.Fatal("resolver with unmet dependency must still run")
	}
}

func TestTokenRoundTripAcrossDocumentLines(t *testing.T) {
	d := newTestDoc(t)
	for _, l := range d.Lines {
		if l.Reconstruct() != l.Text() {
			t.Errorf("reconstruction mismatch: got %q, want %q", l.Reconstruct(), l.Text())
		}
	}
}
