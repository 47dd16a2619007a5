// Copyright (c) 2026 Michael D Henderson. All rights reserved.

// Package plnconfig manages JSON configuration loading for the pipeline
// policy knobs that sit above the core: how association targets resolve,
// what a resolver failure does to the surrounding pipeline, and whether
// confidence values get clamped into range rather than rejected outright.
// Configuration is loaded from a JSON file seeded with sensible defaults; a
// missing file is not an error.
package plnconfig

import (
	"encoding/json"
	"log"
	"os"
)

// Error defines a constant error.
type Error string

// Error implements the error interface.
func (e Error) Error() string { return string(e) }

const (
	ErrIsDirectory = Error("is a directory")
	ErrIsNotAFile  = Error("is not a regular file")
)

// AssociationResolutionMode selects how AssociationIndex resolves a raw
// TargetRef to a concrete span: exact match first, falling back to the
// innermost enclosing span (decided in DESIGN.md). The core always
// applies ExactThenInnermost; this knob exists so a hosting application
// can record which policy was in effect when a document was analyzed,
// without the core needing to branch on it.
type AssociationResolutionMode string

const (
	ExactThenInnermost AssociationResolutionMode = "exact_then_innermost"
)

// ResolverFailureMode controls what a pipeline driver does when
// resolve.Run or document.RunDocumentResolvers returns
// lnlperrors.ErrResolverFailure.
type ResolverFailureMode string

const (
	// ResolverFailureStop aborts the remainder of the pipeline for the
	// current line or document, surfacing the error to the caller.
	ResolverFailureStop ResolverFailureMode = "stop"
	// ResolverFailureSkipLine logs the failure and continues with the next
	// line or document, leaving whatever was folded in before the failure.
	ResolverFailureSkipLine ResolverFailureMode = "skip_line"
)

// Config is pipeline-wide policy, independent of any single document.
type Config struct {
	AssociationResolution AssociationResolutionMode `json:"AssociationResolution,omitempty"`
	ResolverFailure       ResolverFailureMode       `json:"ResolverFailure,omitempty"`
	// ClampConfidence, if true, tells a hosting pipeline to clamp an
	// out-of-range Scored[T] confidence into [0,1] instead of treating it
	// as a programmer error (the default, fatal behavior; this is an
	// explicit opt-out for lenient ingestion pipelines).
	ClampConfidence bool `json:"ClampConfidence,omitempty"`
}

// Default returns the conservative policy: exact-then-innermost
// resolution, a failing resolver stops its pipeline, and confidence
// violations are never silently clamped.
func Default() *Config {
	return &Config{
		AssociationResolution: ExactThenInnermost,
		ResolverFailure:       ResolverFailureStop,
		ClampConfidence:       false,
	}
}

// Load reads name as JSON into a Config seeded with Default() values. A
// missing file is not an error: Load logs (when debug is set) and returns
// the defaults. A malformed file or a path that isn't a regular file is
// returned as an error.
func Load(name string, debug bool) (*Config, error) {
	cfg := Default()

	sb, err := os.Stat(name)
	if os.IsNotExist(err) {
		if debug {
			log.Printf("[plnconfig] %q: not found, using defaults\n", name)
		}
		return cfg, nil
	} else if err != nil {
		return cfg, err
	} else if sb.IsDir() {
		return cfg, ErrIsDirectory
	} else if !sb.Mode().IsRegular() {
		return cfg, ErrIsNotAFile
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	if debug {
		if nice, err := json.MarshalIndent(cfg, "", "  "); err == nil {
			log.Printf("[plnconfig] %s\n", nice)
		}
	}
	return cfg, nil
}
