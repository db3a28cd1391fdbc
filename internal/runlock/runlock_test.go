package runlock

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireRelease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "organizer.lock")
	lock := New(path, time.Second)

	if err := lock.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
}

func TestContendedLockTimesOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organizer.lock")

	holder := New(path, time.Second)
	if err := holder.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire holder: %v", err)
	}
	defer holder.Release()

	// A second flock handle in the same process still contends because each
	// handle owns its own descriptor.
	waiter := New(path, 300*time.Millisecond)
	err := waiter.Acquire(context.Background())
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
}

func TestWithLockReleasesAfterFn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "organizer.lock")
	lock := New(path, time.Second)

	ran := false
	if err := lock.WithLock(context.Background(), func() error {
		ran = true
		return nil
	}); err != nil {
		t.Fatalf("with lock: %v", err)
	}
	if !ran {
		t.Fatal("fn did not run")
	}

	// The lock must be free again.
	second := New(path, time.Second)
	if err := second.Acquire(context.Background()); err != nil {
		t.Fatalf("reacquire after WithLock: %v", err)
	}
	second.Release()
}
