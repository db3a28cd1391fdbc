package organize

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/pqsoccerboy17/downloads-organizer/internal/classify"
	"github.com/pqsoccerboy17/downloads-organizer/internal/dates"
	"github.com/pqsoccerboy17/downloads-organizer/internal/deps"
	"github.com/pqsoccerboy17/downloads-organizer/internal/extract"
	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
	"github.com/pqsoccerboy17/downloads-organizer/internal/mover"
)

// RunDocuments organizes PDF documents from the source folders, or audits
// the document archive when the audit option is set. Text extraction being
// globally unavailable halts the run; per-file failures degrade to
// filename-only classification.
func (p *Pipeline) RunDocuments(ctx context.Context) (Summary, error) {
	if err := deps.RequireAll(deps.DocumentRequirements(p.cfg)); err != nil {
		_ = p.notifier.NotifyRunFailed(ctx, intent.Document.String(), err)
		return Summary{}, err
	}

	ctx, log, summary := p.beginRun(ctx, intent.Document.String())

	var (
		files []string
		err   error
	)
	if p.opts.Audit {
		files, err = walkArchive(p.cfg.Paths.TaxDir, intent.Document)
	} else {
		files, err = p.scanSources(intent.Document)
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
		p.processDocument(ctx, log, summary, path)
	}

	p.finishRun(ctx, log, summary)
	return *summary, nil
}

// processDocument runs the full detect-plan-execute sequence for one file.
// Failures are isolated: an error plan is recorded and the loop moves on.
func (p *Pipeline) processDocument(ctx context.Context, log *slog.Logger, summary *Summary, path string) {
	src, err := NewSourceFile(path)
	if err != nil {
		// Vanished between scan and processing, most likely user cleanup.
		log.Debug("skipping vanished file", logging.String("file", filepath.Base(path)))
		return
	}

	content := p.pdf.Extract(ctx, src.Path)
	if content.State == extract.StateError {
		log.Warn("text extraction failed, using filename only",
			logging.String("file", src.Name),
			logging.String("reason", content.Reason))
	}

	result := classify.Document(src.Name, content)
	if result.Category.Class == classify.Unclassified {
		plan := mover.Unresolvable(src.Path, "no document category matched")
		log.Info("left unclassified", logging.String("file", src.Name))
		p.recordPlan(ctx, log, summary, plan, "", 0, "")
		return
	}

	when, provenance := documentDate(result, content, src)

	ideal := p.builder.DocumentDestination(src.Path, result.Category, when)
	plan := p.mover.Execute(p.planFor(src.Path, ideal))

	log.Info("document processed",
		logging.String("file", src.Name),
		logging.String("category", result.Category.Kind),
		logging.Int("confidence", result.Confidence),
		logging.String("disposition", string(plan.Disposition)))
	p.recordPlan(ctx, log, summary, plan, result.Category.Kind, result.Confidence, provenance)
}

// documentDate extracts the statement date from content with the matched
// rule's hint, falling back to the file's modification time.
func documentDate(result classify.Result, content extract.Content, src *SourceFile) (time.Time, string) {
	text := ""
	if content.Usable() {
		text = content.Text
	}
	if when, ok := dates.DocumentDate(result.Category.DateHint, text, src.Name); ok {
		return when, "document_content"
	}
	return src.ModTime, dates.ProvenanceModTime.String()
}

func (p *Pipeline) planFor(src, ideal string) mover.Plan {
	if p.opts.Audit {
		return p.mover.PlanAudit(src, ideal)
	}
	return p.mover.PlanMove(src, ideal)
}
