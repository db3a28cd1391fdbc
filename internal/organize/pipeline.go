package organize

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pqsoccerboy17/downloads-organizer/internal/config"
	"github.com/pqsoccerboy17/downloads-organizer/internal/dates"
	"github.com/pqsoccerboy17/downloads-organizer/internal/extract"
	"github.com/pqsoccerboy17/downloads-organizer/internal/history"
	"github.com/pqsoccerboy17/downloads-organizer/internal/layout"
	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
	"github.com/pqsoccerboy17/downloads-organizer/internal/mover"
	"github.com/pqsoccerboy17/downloads-organizer/internal/notifications"
)

// Options select the pipeline's operating mode.
type Options struct {
	// DryRun plans everything but moves nothing.
	DryRun bool
	// Audit walks the organized archive instead of the source folders and
	// relocates misfiled entries conservatively.
	Audit bool
}

// Summary aggregates one pipeline run's outcomes.
type Summary struct {
	RunID      string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool

	Moved   int
	Skipped int
	Errored int

	Plans []mover.Plan
}

// Duration is the run's wall-clock length.
func (s Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

func (s *Summary) tally(plan mover.Plan) {
	s.Plans = append(s.Plans, plan)
	switch plan.Disposition {
	case mover.DispositionMoved, mover.DispositionWouldMove:
		s.Moved++
	case mover.DispositionError:
		s.Errored++
	default:
		s.Skipped++
	}
}

// Pipeline executes the organize flow for one file family at a time.
type Pipeline struct {
	cfg  *config.Config
	log  *slog.Logger
	opts Options

	builder  *layout.Builder
	mover    *mover.Mover
	resolver *dates.Resolver
	pdf      *extract.PDFText
	exif     *extract.Exiftool

	store    *history.Store
	notifier notifications.Service
}

// New wires a pipeline from configuration. store may be nil to skip ledger
// recording; notifier may be nil for silent operation.
func New(cfg *config.Config, log *slog.Logger, opts Options, store *history.Store, notifier notifications.Service) *Pipeline {
	if log == nil {
		log = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		opts:     opts,
		builder:  layout.NewBuilder(cfg.Paths.TaxDir, cfg.Paths.MediaDir),
		mover:    mover.New(log, opts.DryRun),
		resolver: dates.NewResolver(cfg.Media.ArchiveIndexPath, log),
		pdf:      extract.NewPDFText(cfg.Tools.PdftotextBinary, cfg.ToolTimeout()),
		exif:     extract.NewExiftool(cfg.Tools.ExiftoolBinary, cfg.ToolTimeout()),
		store:    store,
		notifier: notifier,
	}
}

// beginRun stamps a new run with a correlation ID and returns the annotated
// context and logger shared by every file in the run.
func (p *Pipeline) beginRun(ctx context.Context, kind string) (context.Context, *slog.Logger, *Summary) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.WithContext(ctx, p.log).With(slog.String(logging.FieldKind, kind))

	summary := &Summary{
		RunID:     runID,
		Kind:      kind,
		StartedAt: time.Now(),
		DryRun:    p.opts.DryRun,
	}
	log.Info("run started",
		logging.Bool("dry_run", p.opts.DryRun),
		logging.Bool("audit", p.opts.Audit))
	return ctx, log, summary
}

// finishRun closes out the summary, persists it, and sends the run summary
// notification. Ledger and notification failures are logged, never fatal.
func (p *Pipeline) finishRun(ctx context.Context, log *slog.Logger, summary *Summary) {
	summary.FinishedAt = time.Now()

	log.Info("run finished",
		logging.Int("moved", summary.Moved),
		logging.Int("skipped", summary.Skipped),
		logging.Int("errored", summary.Errored),
		logging.Duration("duration", summary.Duration()))

	if p.store != nil {
		run := history.Run{
			ID:         summary.RunID,
			Kind:       summary.Kind,
			StartedAt:  summary.StartedAt,
			FinishedAt: summary.FinishedAt,
			DryRun:     summary.DryRun,
			Moved:      summary.Moved,
			Skipped:    summary.Skipped,
			Errored:    summary.Errored,
		}
		if err := p.store.RecordRun(ctx, run); err != nil {
			log.Warn("failed to record run in ledger", logging.Error(err))
		}
	}

	if !p.opts.DryRun {
		err := p.notifier.NotifyRunCompleted(ctx, summary.Kind,
			summary.Moved, summary.Skipped, summary.Errored, summary.Duration())
		if err != nil {
			log.Warn("run summary notification failed", logging.Error(err))
		}
	}
}

func (p *Pipeline) recordPlan(ctx context.Context, log *slog.Logger, summary *Summary, plan mover.Plan, category string, confidence int, provenance string) {
	summary.tally(plan)

	if p.store == nil {
		return
	}
	rel := history.Relocation{
		RunID:       summary.RunID,
		Source:      plan.Source,
		Destination: plan.Destination,
		Disposition: string(plan.Disposition),
		Reason:      plan.Reason,
		Category:    category,
		Confidence:  confidence,
		Provenance:  provenance,
	}
	if err := p.store.RecordRelocation(ctx, rel); err != nil {
		log.Warn("failed to record relocation in ledger", logging.Error(err))
	}
}
