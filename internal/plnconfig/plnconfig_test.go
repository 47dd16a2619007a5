// Copyright (c) 2026 Michael D Henderson. All rights reserved.

package plnconfig_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mdhender/layered-nlp/internal/plnconfig"
)

func TestLoadNonExistentFileReturnsDefaults(t *testing.T) {
	cfg, err := plnconfig.Load("non-existent-file.json", false)
	if err != nil {
		t.Fatalf("expected no error for a missing file, got %v", err)
	}
	if cfg.AssociationResolution != plnconfig.ExactThenInnermost {
		t.Errorf("want default AssociationResolution, got %q", cfg.AssociationResolution)
	}
	if cfg.ResolverFailure != plnconfig.ResolverFailureStop {
		t.Errorf("want default ResolverFailure, got %q", cfg.ResolverFailure)
	}
}

func TestLoadDirectoryIsAnError(t *testing.T) {
	tmpDir := t.TempDir()
	if _, err := plnconfig.Load(tmpDir, false); err != plnconfig.ErrIsDirectory {
		t.Errorf("want ErrIsDirectory, got %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")
	data, err := json.Marshal(plnconfig.Config{
		ResolverFailure: plnconfig.ResolverFailureSkipLine,
		ClampConfidence: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := plnconfig.Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ResolverFailure != plnconfig.ResolverFailureSkipLine {
		t.Errorf("want overridden ResolverFailure, got %q", cfg.ResolverFailure)
	}
	if !cfg.ClampConfidence {
		t.Error("want ClampConfidence true")
	}
}
