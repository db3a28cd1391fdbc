// Package dates resolves a timestamp for every file the organizer touches.
// Media dates come from an ordered chain of sources, each tagged with a
// ranked provenance; document dates come from kind-specific content patterns
// with generic fallbacks.
package dates

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
)

// Resolver resolves media timestamps. The archive index, when configured, is
// loaded lazily on first use and cached for the resolver's lifetime, so a
// batch run parses the index page at most once.
type Resolver struct {
	log       *slog.Logger
	indexPath string

	indexOnce sync.Once
	index     map[string]time.Time

	now func() time.Time
}

// NewResolver returns a resolver. indexPath may be empty, which disables the
// archive-index source.
func NewResolver(indexPath string, log *slog.Logger) *Resolver {
	if log == nil {
		log = logging.NewNop()
	}
	return &Resolver{
		log:       log,
		indexPath: indexPath,
		now:       time.Now,
	}
}

// Resolve returns the best available timestamp for a media file, consulting
// sources strictly in provenance order. tags is the file's extracted
// metadata and may be nil. Resolve never fails: the final fallback is the
// current time, logged as a warning so the file can be surfaced for review.
func (r *Resolver) Resolve(path string, tags map[string]string) Resolution {
	if when, ok := r.archiveDate(path); ok {
		return Resolution{Time: when, Provenance: ProvenanceArchiveIndex}
	}
	if when, ok := sidecarDate(path); ok {
		return Resolution{Time: when, Provenance: ProvenanceSidecar}
	}
	if when, ok := embeddedDate(tags); ok {
		return Resolution{Time: when, Provenance: ProvenanceEmbedded}
	}
	if info, err := os.Stat(path); err == nil {
		return Resolution{Time: info.ModTime(), Provenance: ProvenanceModTime}
	}

	r.log.Warn("no date source available, falling back to current time",
		logging.String("file", filepath.Base(path)))
	return Resolution{Time: r.now(), Provenance: ProvenanceCurrentTime}
}

func (r *Resolver) archiveDate(path string) (time.Time, bool) {
	if r.indexPath == "" {
		return time.Time{}, false
	}

	r.indexOnce.Do(func() {
		lookup, err := LoadArchiveIndex(r.indexPath)
		if err != nil {
			r.log.Warn("archive index unavailable",
				logging.String("path", r.indexPath),
				logging.Error(err))
			return
		}
		r.index = lookup
		r.log.Debug("archive index loaded",
			logging.Int("entries", len(lookup)))
	})

	when, ok := r.index[filepath.Base(path)]
	return when, ok
}
