// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package sel_test

import (
	"testing"

	"github.com/mdhender/layered-nlp/line"
	"github.com/mdhender/layered-nlp/sel"
)

func TestMatchFirstForwardsExtendsFromOriginalStart(t *testing.T) {
	l := line.New("Company shall deliver goods")
	full := sel.Full(l)

	matched, val, ok := full.MatchFirstForwards(sel.TokenText("shall"))
	if !ok {
		t.Fatal("want match")
	}
	if matched.Start() != full.Start() {
		t.Errorf("want extended selection to start at original start %d, got %d", full.Start(), matched.Start())
	}
	if val.(string) != "shall" {
		t.Errorf("want extracted value %q, got %v", "shall", val)
	}
}

func TestMatchFirstForwardsOnEmptySelectionReturnsNone(t *testing.T) {
	l := line.New("Company shall deliver goods")
	empty := sel.New(l, 2, 2)
	if _, _, ok := empty.MatchFirstForwards(sel.TokenText("shall")); ok {
		t.Error("want no match on empty selection (B2)")
	}
}

func TestMatchFirstBackwards(t *testing.T) {
	l := line.New("Company shall deliver goods")
	full := sel.Full(l)

	matched, val, ok := full.MatchFirstBackwards(sel.TokenText("shall"))
	if !ok {
		t.Fatal("want match")
	}
	if matched.End() != full.End() {
		t.Errorf("want extended selection to end at original end %d, got %d", full.End(), matched.End())
	}
	if val.(string) != "shall" {
		t.Errorf("want extracted value %q, got %v", "shall", val)
	}
}

func TestFindByNeverOverlaps(t *testing.T) {
	l := line.New("deliver goods and deliver services")
	full := sel.Full(l)

	matches := full.FindBy(sel.TokenText("deliver"))
	if len(matches) != 2 {
		t.Fatalf("want 2 matches, got %d", len(matches))
	}
	if matches[0].Selection.End() > matches[1].Selection.Start() {
		t.Errorf("matches overlap: %+v, %+v", matches[0], matches[1])
	}
}

func TestAssignmentCoveringLastTokenReachesLineLength(t *testing.T) {
	l := line.New("goods")
	full := sel.Full(l)
	b := sel.Assign(full, "whole-line")
	a, err := b.Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if int(a.Range.End)+1 != int(l.Len()) {
		t.Errorf("want range end+1 == line length %d, got range %+v", l.Len(), a.Range)
	}
}

func TestAssignOnEmptySelectionIsInvalidRange(t *testing.T) {
	l := line.New("goods")
	empty := sel.New(l, 1, 1)
	if _, err := sel.Assign(empty, "x").Build(); err == nil {
		t.Error("want error building assignment over empty selection")
	}
}

func TestAndCombinatorSkipsWhitespaceBetweenTokenTextMatches(t *testing.T) {
	l := line.New("shall deliver")
	full := sel.Full(l)
	m := sel.And(sel.TokenText("shall"), sel.TokenText("deliver"))
	matched, _, ok := full.MatchFirstForwards(m)
	if !ok {
		t.Fatal("want combined match across whitespace")
	}
	if matched.Text() != "shall deliver" {
		t.Errorf("want %q, got %q", "shall deliver", matched.Text())
	}
}

func TestOrPrefersLongestMatch(t *testing.T) {
	l := line.New("shall deliver")
	full := sel.Full(l)
	m := sel.Or(sel.TokenText("shall"), sel.And(sel.TokenText("shall"), sel.TokenText("deliver")))
	// both alternatives match at pos 0; the second, registered later, ends
	// at 3 rather than 1 and must win.
	matched, _, ok := full.MatchFirstForwards(m)
	if !ok {
		t.Fatal("want a match")
	}
	if matched.Text() != "shall deliver" {
		t.Errorf("want longest alternative %q, got %q", "shall deliver", matched.Text())
	}
}

func TestNotMatchesWhenWrappedMatcherFails(t *testing.T) {
	l := line.New("goods")
	full := sel.Full(l)
	m := sel.Not(sel.TokenText("shall"))
	_, _, ok := full.MatchFirstForwards(m)
	if !ok {
		t.Fatal("want Not to match when wrapped matcher fails")
	}
}

func TestSplitWith(t *testing.T) {
	l := line.New("a b c d e")
	full := sel.Full(l)
	middle := sel.New(l, 2, 4) // "b " region of tokens 2..3 inclusive-exclusive
	before, inside, after := full.SplitWith(middle)
	if before.Start() != 0 || before.End() != 2 {
		t.Errorf("before: want [0,2), got [%d,%d)", before.Start(), before.End())
	}
	if inside.Start() != 2 || inside.End() != 4 {
		t.Errorf("inside: want [2,4), got [%d,%d)", inside.Start(), inside.End())
	}
	if after.Start() != 4 {
		t.Errorf("after: want start 4, got %d", after.Start())
	}
}

func TestEndOfLineAnchor(t *testing.T) {
	l := line.New("goods")
	full := sel.Full(l)
	matched, _, ok := full.MatchFirstForwards(sel.EndOfLine())
	if !ok {
		t.Fatal("want match at line terminator")
	}
	if matched.End() != l.Len() {
		t.Errorf("want end == line length %d, got %d", l.Len(), matched.End())
	}
}
