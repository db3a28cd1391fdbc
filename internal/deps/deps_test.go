package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}
}

func TestRequireAll(t *testing.T) {
	err := RequireAll([]Requirement{{Name: "Ghost", Command: "definitely-not-a-binary", Description: "Install it"}})
	if err == nil {
		t.Fatalf("expected error for missing requirement")
	}
	if err := RequireAll([]Requirement{{Name: "Optional", Command: "also-missing", Optional: true}}); err != nil {
		t.Fatalf("optional requirements must not fail: %v", err)
	}
}
