// Package runlock serializes archive mutation across processes with an
// advisory file lock, so a scheduled watcher and a manually triggered batch
// run never rearrange the same tree concurrently.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrTimeout means another process held the lock for the whole wait window.
// The invocation aborts cleanly and is retried on the next trigger.
var ErrTimeout = errors.New("timed out waiting for organizer lock")

const retryInterval = 250 * time.Millisecond

// Lock is a cross-process advisory lock on a well-known path.
type Lock struct {
	path    string
	timeout time.Duration
	fl      *flock.Flock
}

// New returns an unacquired lock on path. timeout bounds how long Acquire
// waits for a competing holder.
func New(path string, timeout time.Duration) *Lock {
	return &Lock{path: path, timeout: timeout, fl: flock.New(path)}
}

// Acquire blocks until the lock is held, the timeout elapses, or ctx is
// canceled.
func (l *Lock) Acquire(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	ok, err := l.fl.TryLockContext(waitCtx, retryInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w after %s (held by another process?)", ErrTimeout, l.timeout)
		}
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return ErrTimeout
	}
	return nil
}

// Release drops the lock. Safe to call when not held.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// WithLock runs fn while holding the lock.
func (l *Lock) WithLock(ctx context.Context, fn func() error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer func() { _ = l.Release() }()
	return fn()
}
