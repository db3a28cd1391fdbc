package mover

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestMovePostconditions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "statement.pdf")
	dst := filepath.Join(dir, "archive", "statement.pdf")
	writeFile(t, src, "pdf content")

	m := New(nil, false)
	plan := m.Execute(m.PlanMove(src, dst))

	if plan.Disposition != DispositionMoved {
		t.Fatalf("disposition = %s, reason %q", plan.Disposition, plan.Reason)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source must not exist after a completed move")
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read destination: %v", err)
	}
	if string(got) != "pdf content" {
		t.Fatalf("destination content = %q", got)
	}
}

func TestAlreadyCorrect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive", "statement.pdf")
	writeFile(t, path, "pdf content")

	plan := New(nil, false).PlanMove(path, path)
	if plan.Disposition != DispositionSkipAlreadyCorrect {
		t.Fatalf("disposition = %s", plan.Disposition)
	}
}

func TestDuplicateIsSkippedAndPreserved(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "photo.jpg")
	dst := filepath.Join(dir, "archive", "photo.jpg")
	writeFile(t, src, "same bytes")
	writeFile(t, dst, "same bytes")

	m := New(nil, false)
	plan := m.Execute(m.PlanMove(src, dst))

	if plan.Disposition != DispositionSkipDuplicate {
		t.Fatalf("disposition = %s", plan.Disposition)
	}
	for _, p := range []string{src, dst} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("duplicate handling must never delete %s: %v", p, err)
		}
	}
}

func TestCollisionShiftsToFreeSlot(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "photo.jpg")
	dst := filepath.Join(dir, "archive", "photo.jpg")
	writeFile(t, src, "new content")
	writeFile(t, dst, "old content")

	m := New(nil, false)
	plan := m.Execute(m.PlanMove(src, dst))

	if plan.Disposition != DispositionMoved {
		t.Fatalf("disposition = %s, reason %q", plan.Disposition, plan.Reason)
	}
	want := filepath.Join(dir, "archive", "photo_2.jpg")
	if plan.Destination != want {
		t.Fatalf("destination = %q, want %q", plan.Destination, want)
	}
	if got, _ := os.ReadFile(dst); string(got) != "old content" {
		t.Fatal("existing destination must not be overwritten")
	}
}

func TestCollisionResolutionIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "archive", "scan.pdf")

	m := New(nil, false)
	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		src := filepath.Join(dir, "in", "scan.pdf")
		writeFile(t, src, string(rune('a'+i)))

		plan := m.Execute(m.PlanMove(src, dst))
		if plan.Disposition != DispositionMoved {
			t.Fatalf("round %d: disposition = %s, reason %q", i, plan.Disposition, plan.Reason)
		}
		if seen[plan.Destination] {
			t.Fatalf("round %d: destination %q reused", i, plan.Destination)
		}
		seen[plan.Destination] = true
	}

	entries, err := os.ReadDir(filepath.Join(dir, "archive"))
	if err != nil {
		t.Fatalf("read archive: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 distinct archived files, got %d", len(entries))
	}
}

func TestAuditLeavesConflictingContentInPlace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "misplaced", "statement.pdf")
	dst := filepath.Join(dir, "archive", "statement.pdf")
	writeFile(t, src, "one version")
	writeFile(t, dst, "another version")

	m := New(nil, false)
	plan := m.Execute(m.PlanAudit(src, dst))

	if plan.Disposition != DispositionSkipUnresolvable {
		t.Fatalf("disposition = %s, reason %q", plan.Disposition, plan.Reason)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("audit must leave a conflicting file where it is")
	}
	if got, _ := os.ReadFile(dst); string(got) != "another version" {
		t.Fatal("audit must not modify the existing destination")
	}
}

func TestAuditStillMovesCleanMisplacements(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "misplaced", "photo.jpg")
	dst := filepath.Join(dir, "archive", "photo.jpg")
	writeFile(t, src, "content")

	m := New(nil, false)
	plan := m.Execute(m.PlanAudit(src, dst))
	if plan.Disposition != DispositionMoved {
		t.Fatalf("disposition = %s, reason %q", plan.Disposition, plan.Reason)
	}
}

func TestDryRunLeavesSourceInPlace(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "photo.jpg")
	dst := filepath.Join(dir, "archive", "photo.jpg")
	writeFile(t, src, "content")

	m := New(nil, true)
	plan := m.Execute(m.PlanMove(src, dst))

	if plan.Disposition != DispositionWouldMove {
		t.Fatalf("disposition = %s", plan.Disposition)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatal("dry run must not touch the source")
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the destination")
	}
}

func TestUnresolvable(t *testing.T) {
	plan := Unresolvable("/downloads/mystery.bin", "no category matched")
	if plan.Disposition != DispositionSkipUnresolvable || plan.Reason == "" {
		t.Fatalf("got %+v", plan)
	}
}
