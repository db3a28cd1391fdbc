// Package mover plans and executes file relocations. Planning is read-only
// and produces a Plan with a disposition; execution performs the
// copy-verify-delete move, or reports what would happen in dry-run mode.
package mover

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pqsoccerboy17/downloads-organizer/internal/fileutil"
	"github.com/pqsoccerboy17/downloads-organizer/internal/logging"
)

// Disposition is the classified outcome of a relocation attempt.
type Disposition string

const (
	// DispositionMoved means the file was relocated and verified.
	DispositionMoved Disposition = "moved"
	// DispositionWouldMove is the dry-run counterpart of moved.
	DispositionWouldMove Disposition = "would_move"
	// DispositionSkipDuplicate means a byte-identical copy already sits at
	// the destination. Neither copy is deleted.
	DispositionSkipDuplicate Disposition = "skip_duplicate"
	// DispositionSkipAlreadyCorrect means source and destination are the
	// same path.
	DispositionSkipAlreadyCorrect Disposition = "skip_already_correct"
	// DispositionSkipUnresolvable means no destination could be computed.
	DispositionSkipUnresolvable Disposition = "skip_unresolvable"
	// DispositionError means planning or execution failed for this file.
	DispositionError Disposition = "error"
)

// Plan is a fully computed relocation for one file.
type Plan struct {
	Source      string
	Destination string
	Disposition Disposition
	Reason      string
}

// Mover plans and executes relocations.
type Mover struct {
	log    *slog.Logger
	dryRun bool
}

func New(log *slog.Logger, dryRun bool) *Mover {
	if log == nil {
		log = logging.NewNop()
	}
	return &Mover{log: log, dryRun: dryRun}
}

// Unresolvable returns a skip plan for a file whose category or date could
// not be determined. The file stays where it is.
func Unresolvable(src, reason string) Plan {
	return Plan{Source: src, Disposition: DispositionSkipUnresolvable, Reason: reason}
}

// PlanMove computes the relocation plan for src into the ideal destination
// path. Nothing on disk is modified: duplicate detection reads both files,
// and collision slots are chosen but not reserved.
func (m *Mover) PlanMove(src, ideal string) Plan {
	return m.plan(src, ideal, false)
}

// PlanAudit is PlanMove for the audit pass. The one difference: when the
// ideal destination is occupied by different content, the file stays where it
// is for human review instead of being shifted to a numbered slot, since the
// audit cannot tell which of the two is the misfiled one.
func (m *Mover) PlanAudit(src, ideal string) Plan {
	return m.plan(src, ideal, true)
}

func (m *Mover) plan(src, ideal string, conservative bool) Plan {
	if src == ideal {
		return Plan{
			Source:      src,
			Destination: ideal,
			Disposition: DispositionSkipAlreadyCorrect,
			Reason:      "already at its computed destination",
		}
	}

	if _, err := os.Stat(ideal); err == nil {
		same, err := fileutil.Identical(src, ideal)
		if err != nil {
			return Plan{
				Source:      src,
				Destination: ideal,
				Disposition: DispositionError,
				Reason:      fmt.Sprintf("compare with existing destination: %v", err),
			}
		}
		if same {
			return Plan{
				Source:      src,
				Destination: ideal,
				Disposition: DispositionSkipDuplicate,
				Reason:      "identical copy already archived",
			}
		}
		if conservative {
			return Plan{
				Source:      src,
				Destination: ideal,
				Disposition: DispositionSkipUnresolvable,
				Reason:      "destination occupied by different content, left in place",
			}
		}
		// Different content wants the same name; shift to a free slot rather
		// than overwrite.
		return Plan{
			Source:      src,
			Destination: fileutil.UniquePath(ideal),
			Disposition: m.moveDisposition(),
			Reason:      "destination name taken by different content",
		}
	}

	return Plan{
		Source:      src,
		Destination: fileutil.UniquePath(ideal),
		Disposition: m.moveDisposition(),
	}
}

func (m *Mover) moveDisposition() Disposition {
	if m.dryRun {
		return DispositionWouldMove
	}
	return DispositionMoved
}

// Execute carries out a plan. Skip and dry-run plans are returned unchanged;
// a move plan performs the verified relocation and is downgraded to an error
// plan if the move fails.
func (m *Mover) Execute(plan Plan) Plan {
	switch plan.Disposition {
	case DispositionMoved:
	case DispositionWouldMove:
		m.log.Info("would move",
			logging.String("from", plan.Source),
			logging.String("to", plan.Destination))
		return plan
	default:
		return plan
	}

	if err := fileutil.SafeMove(plan.Source, plan.Destination); err != nil {
		m.log.Error("move failed",
			logging.String("file", filepath.Base(plan.Source)),
			logging.Error(err))
		plan.Disposition = DispositionError
		plan.Reason = err.Error()
		return plan
	}

	m.log.Info("moved",
		logging.String("from", plan.Source),
		logging.String("to", plan.Destination))
	return plan
}
