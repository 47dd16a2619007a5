// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package scored implements Scored[T], the confidence-wrapping
// interpretation type. Scored[T] is just an attribute type; the core
// provides the wrapper and ScoreSource, and it is up to resolvers to
// choose appropriate confidences.
package scored

import (
	"fmt"

	"github.com/mdhender/layered-nlp/internal/lnlperrors"
)

// ScoreSource is the provenance tag describing how a confidence was
// produced.
type ScoreSource struct {
	kind       sourceKind
	ruleName   string
	model      string
	passID     string
	verifierID string
}

type sourceKind int

const (
	sourceRuleBased sourceKind = iota
	sourceLLMPass
	sourceHumanVerified
	sourceDerived
)

// RuleBased builds a ScoreSource for a deterministic, hand-written rule.
func RuleBased(ruleName string) ScoreSource {
	return ScoreSource{kind: sourceRuleBased, ruleName: ruleName}
}

// LLMPass builds a ScoreSource for a language-model pass.
func LLMPass(model, passID string) ScoreSource {
	return ScoreSource{kind: sourceLLMPass, model: model, passID: passID}
}

// HumanVerified builds a ScoreSource for a human-confirmed interpretation.
// confidence == 1.0 is reserved for this source.
func HumanVerified(verifierID string) ScoreSource {
	return ScoreSource{kind: sourceHumanVerified, verifierID: verifierID}
}

// Derived builds a ScoreSource for a value computed from other attributes
// rather than observed directly.
func Derived() ScoreSource {
	return ScoreSource{kind: sourceDerived}
}

// IsHumanVerified reports whether this source is HumanVerified.
func (s ScoreSource) IsHumanVerified() bool { return s.kind == sourceHumanVerified }

func (s ScoreSource) String() string {
	switch s.kind {
	case sourceRuleBased:
		return fmt.Sprintf("RuleBased{rule_name: %q}", s.ruleName)
	case sourceLLMPass:
		return fmt.Sprintf("LLMPass{model: %q, pass_id: %q}", s.model, s.passID)
	case sourceHumanVerified:
		return fmt.Sprintf("HumanVerified{verifier_id: %q}", s.verifierID)
	case sourceDerived:
		return "Derived"
	default:
		return "ScoreSource(?)"
	}
}

// Scored wraps an interpretation value with a confidence score and its
// provenance. confidence must be in [0.0, 1.0], and confidence == 1.0 iff
// Source is HumanVerified; New enforces both.
type Scored[T any] struct {
	Value      T
	Confidence float64
	Source     ScoreSource
}

// New validates the confidence contract and returns a Scored[T].
// Violating it is a programmer error (ErrConfidenceContract); New
// surfaces it immediately rather than letting a bad value propagate
// through the attribute store.
func New[T any](value T, confidence float64, source ScoreSource) (Scored[T], error) {
	if confidence < 0.0 || confidence > 1.0 {
		return Scored[T]{}, fmt.Errorf("%w: confidence %v out of [0,1]", lnlperrors.ErrConfidenceContract, confidence)
	}
	if confidence == 1.0 && !source.IsHumanVerified() {
		return Scored[T]{}, fmt.Errorf("%w: confidence 1.0 requires HumanVerified source, got %s", lnlperrors.ErrConfidenceContract, source)
	}
	if confidence != 1.0 && source.IsHumanVerified() {
		return Scored[T]{}, fmt.Errorf("%w: HumanVerified source requires confidence 1.0, got %v", lnlperrors.ErrConfidenceContract, confidence)
	}
	return Scored[T]{Value: value, Confidence: confidence, Source: source}, nil
}

// Must is New, panicking on a contract violation. Intended for resolvers
// and tests constructing literal, known-good values.
func Must[T any](value T, confidence float64, source ScoreSource) Scored[T] {
	s, err := New(value, confidence, source)
	if err != nil {
		panic(err)
	}
	return s
}
