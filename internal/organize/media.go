package organize

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/pqsoccerboy17/downloads-organizer/internal/classify"
	"github.com/pqsoccerboy17/downloads-organizer/internal/deps"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
	"github.com/pqsoccerboy17/downloads-organizer/internal/mover"
)

// RunMedia organizes photos, videos, and audio from the source folders, or
// audits the media archive when the audit option is set. Metadata extraction
// being globally unavailable halts the run with an actionable message;
// per-file extraction failure degrades to the later date sources.
func (p *Pipeline) RunMedia(ctx context.Context) (Summary, error) {
	if err := deps.RequireAll(deps.MediaRequirements(p.cfg)); err != nil {
		_ = p.notifier.NotifyRunFailed(ctx, intent.Media.String(), err)
		return Summary{}, err
	}

	ctx, log, summary := p.beginRun(ctx, intent.Media.String())

	var (
		files []string
		err   error
	)
	if p.opts.Audit {
		files, err = walkArchive(p.cfg.Paths.MediaDir, intent.Media)
	} else {
		files, err = p.scanSources(intent.Media)
	}
	if err != nil {
		_ = p.notifier.NotifyRunFailed(ctx, summary.Kind, err)
		return *summary, err
	}
	log.Info("scan complete", logging.Int("candidates", len(files)))

	for _, path := range files {
		if ctx.Err() != nil {
			return *summary, ctx.Err()
		}
		p.processMediaFile(ctx, log, summary, path)
	}

	p.finishRun(ctx, log, summary)
	return *summary, nil
}

func (p *Pipeline) processMediaFile(ctx context.Context, log *slog.Logger, summary *Summary, path string) {
	src, err := NewSourceFile(path)
	if err != nil {
		log.Debug("skipping vanished file", logging.String("file", filepath.Base(path)))
		return
	}

	result := classify.MediaFile(src.Path)
	if result.Category.Class == classify.Unclassified {
		plan := mover.Unresolvable(src.Path, "extension is not a known media format")
		p.recordPlan(ctx, log, summary, plan, "", 0, "")
		return
	}

	tags, err := p.exif.Tags(ctx, src.Path)
	if err != nil {
		log.Warn("metadata extraction failed, continuing without tags",
			logging.String("file", src.Name),
			logging.Error(err))
		tags = nil
	}

	resolution := p.resolver.Resolve(src.Path, tags)
	if resolution.LowConfidence() {
		_ = p.notifier.NotifyReviewNeeded(ctx, src.Name,
			"no capture date found; filed under today's date")
	}

	ideal := p.builder.MediaDestination(src.Path, result.Category.MediaKind, resolution.Time)
	plan := p.mover.Execute(p.planFor(src.Path, ideal))

	log.Info("media processed",
		logging.String("file", src.Name),
		logging.String("category", result.Category.Kind),
		logging.String("date_source", resolution.Provenance.String()),
		logging.String("disposition", string(plan.Disposition)))
	p.recordPlan(ctx, log, summary, plan, result.Category.Kind, result.Confidence,
		resolution.Provenance.String())
}
