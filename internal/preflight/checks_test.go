package preflight

import (
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := CheckDirectoryAccess("Source", dir)
	if !result.Passed {
		t.Fatalf("expected writable temp dir to pass, got %#v", result)
	}

	result = CheckDirectoryAccess("Source", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatalf("expected missing directory to fail")
	}
}
