// Package watcher observes the source folders and drives the pipeline.
// Arrivals are debounced until their size is stable, dispatches are throttled
// per file kind, and a periodic sweep re-discovers files that filesystem
// events missed. A mutex serializes pipeline invocations and a cross-process
// lock keeps independently triggered batch runs out of the archive tree.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pqsoccerboy17/downloads-organizer/internal/config"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
	"github.com/pqsoccerboy17/downloads-organizer/internal/runlock"
)

// DispatchFunc runs one pipeline invocation for a file kind. The watcher
// serializes calls; implementations need no locking of their own.
type DispatchFunc func(ctx context.Context, kind intent.Kind) error

// Timing collects the scheduler's intervals.
type Timing struct {
	// Debounce is how long a newly observed file must rest before the
	// stability check runs.
	Debounce time.Duration
	// Stability is the gap between the two size samples.
	Stability time.Duration
	// MinRunInterval is the per-kind throttle window.
	MinRunInterval time.Duration
	// RescanInterval is the periodic sweep cadence.
	RescanInterval time.Duration
	// MinRescanAge is how old a file must be for the sweep to pick it up,
	// keeping the sweep from racing the event-driven path.
	MinRescanAge time.Duration
}

// TimingFromConfig derives scheduler timing from configuration.
func TimingFromConfig(cfg *config.Config) Timing {
	return Timing{
		Debounce:       cfg.Debounce(),
		Stability:      cfg.StabilityInterval(),
		MinRunInterval: cfg.MinRunInterval(),
		RescanInterval: cfg.RescanInterval(),
		MinRescanAge:   cfg.Debounce() + 5*time.Second,
	}
}

type pendingKey struct {
	path string
	kind intent.Kind
}

// pendingArrival tracks one debouncing file. gen increments every time the
// key is re-armed; a waiter whose generation is stale has been superseded.
type pendingArrival struct {
	gen int
}

// Watcher is the long-running scheduler.
type Watcher struct {
	cfg      *config.Config
	log      *slog.Logger
	timing   Timing
	dispatch DispatchFunc
	lock     *runlock.Lock

	mu      sync.Mutex
	pending map[pendingKey]*pendingArrival
	lastRun map[intent.Kind]time.Time

	// pipelineMu serializes full pipeline invocations across event-driven
	// and periodic triggers.
	pipelineMu sync.Mutex

	now      func() time.Time
	fileSize func(path string) (int64, bool)
}

// New builds a watcher. lock may be nil to skip cross-process locking (tests).
func New(cfg *config.Config, log *slog.Logger, dispatch DispatchFunc, lock *runlock.Lock) *Watcher {
	return NewWithTiming(cfg, log, dispatch, lock, TimingFromConfig(cfg))
}

// NewWithTiming is New with explicit scheduler timing.
func NewWithTiming(cfg *config.Config, log *slog.Logger, dispatch DispatchFunc, lock *runlock.Lock, timing Timing) *Watcher {
	if log == nil {
		log = logging.NewNop()
	}
	return &Watcher{
		cfg:      cfg,
		log:      log,
		timing:   timing,
		dispatch: dispatch,
		lock:     lock,
		pending:  make(map[pendingKey]*pendingArrival),
		lastRun:  make(map[intent.Kind]time.Time),
		now:      time.Now,
		fileSize: statSize,
	}
}

func statSize(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Size(), true
}

// Run watches the source folders until ctx is canceled. At least one source
// folder must be watchable.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create filesystem watcher: %w", err)
	}
	defer fw.Close()

	watched := 0
	for _, dir := range w.cfg.Paths.SourceDirs {
		if err := fw.Add(dir); err != nil {
			w.log.Warn("cannot watch source folder",
				logging.String("dir", dir), logging.Error(err))
			continue
		}
		watched++
	}
	if watched == 0 {
		return errors.New("no watchable source folder")
	}

	w.log.Info("watching source folders",
		logging.Int("folders", watched),
		logging.Duration("debounce", w.timing.Debounce),
		logging.Duration("rescan", w.timing.RescanInterval))

	ticker := time.NewTicker(w.timing.RescanInterval)
	defer ticker.Stop()

	// Pick up anything that arrived while the watcher was offline.
	w.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", logging.Error(err))
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// handleEvent arms or cancels debounce state for one filesystem event. A
// rename mid-download surfaces as Rename on the old name plus Create on the
// new one, so the file ends up tracked under its final name.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
		w.observe(ctx, event.Name)
	case event.Op.Has(fsnotify.Rename), event.Op.Has(fsnotify.Remove):
		w.dropPath(event.Name)
	}
}

// observe arms (or re-arms) the debounce timer for a candidate file.
func (w *Watcher) observe(ctx context.Context, path string) {
	kind := intent.Detect(path)
	if kind == intent.Unknown {
		return
	}
	key := pendingKey{path: path, kind: kind}

	w.mu.Lock()
	arrival, ok := w.pending[key]
	if !ok {
		arrival = &pendingArrival{}
		w.pending[key] = arrival
	}
	arrival.gen++
	gen := arrival.gen
	w.mu.Unlock()

	go w.awaitStable(ctx, key, gen)
}

// awaitStable performs the debounce wait and two-sample stability check,
// then dispatches. An unstable file re-enters the debounce wait; a vanished
// or superseded key aborts silently.
func (w *Watcher) awaitStable(ctx context.Context, key pendingKey, gen int) {
	for {
		if !sleepCtx(ctx, w.timing.Debounce) {
			w.drop(key)
			return
		}
		if !w.current(key, gen) {
			return
		}

		first, ok := w.fileSize(key.path)
		if !ok {
			w.drop(key)
			return
		}
		if !sleepCtx(ctx, w.timing.Stability) {
			w.drop(key)
			return
		}
		if !w.current(key, gen) {
			return
		}
		second, ok := w.fileSize(key.path)
		if !ok {
			w.drop(key)
			return
		}
		if first == second {
			break
		}
		w.log.Debug("file still growing, re-arming debounce",
			logging.String("file", filepath.Base(key.path)))
	}

	w.drop(key)
	w.dispatchThrottled(ctx, key.kind)
}

// current reports whether gen is still the live generation for key.
func (w *Watcher) current(key pendingKey, gen int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	arrival, ok := w.pending[key]
	return ok && arrival.gen == gen
}

func (w *Watcher) drop(key pendingKey) {
	w.mu.Lock()
	delete(w.pending, key)
	w.mu.Unlock()
}

// dropPath cancels pending state for a path under every kind.
func (w *Watcher) dropPath(path string) {
	w.mu.Lock()
	for key := range w.pending {
		if key.path == path {
			delete(w.pending, key)
		}
	}
	w.mu.Unlock()
}

// dispatchThrottled runs the pipeline for kind unless a run of the same kind
// happened inside the throttle window. Bursts of near-simultaneous arrivals
// coalesce into the single run that scans the whole folder anyway.
func (w *Watcher) dispatchThrottled(ctx context.Context, kind intent.Kind) {
	w.mu.Lock()
	if last, ok := w.lastRun[kind]; ok && w.now().Sub(last) < w.timing.MinRunInterval {
		w.mu.Unlock()
		w.log.Debug("dispatch throttled",
			slog.String(logging.FieldKind, kind.String()))
		return
	}
	w.lastRun[kind] = w.now()
	w.mu.Unlock()

	w.pipelineMu.Lock()
	defer w.pipelineMu.Unlock()

	run := func() error { return w.dispatch(ctx, kind) }
	var err error
	if w.lock != nil {
		err = w.lock.WithLock(ctx, run)
	} else {
		err = run()
	}
	if err != nil {
		if errors.Is(err, runlock.ErrTimeout) {
			w.log.Warn("pipeline run skipped, archive locked by another process",
				slog.String(logging.FieldKind, kind.String()))
			return
		}
		w.log.Error("pipeline run failed",
			slog.String(logging.FieldKind, kind.String()),
			logging.Error(err))
	}
}

// Sweep rescans every source folder for settled files that events may have
// missed and dispatches their kinds through the same throttle gate.
func (w *Watcher) Sweep(ctx context.Context) {
	cutoff := w.now().Add(-w.timing.MinRescanAge)
	kinds := make(map[intent.Kind]struct{})

	for _, dir := range w.cfg.Paths.SourceDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			info, err := entry.Info()
			if err != nil || info.ModTime().After(cutoff) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if kind := intent.Detect(path); kind != intent.Unknown {
				kinds[kind] = struct{}{}
			}
		}
	}

	for kind := range kinds {
		w.dispatchThrottled(ctx, kind)
	}
}

// sleepCtx waits d unless ctx finishes first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
