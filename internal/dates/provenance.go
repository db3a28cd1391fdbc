package dates

import "time"

// Provenance ranks the sources a resolved timestamp can come from. Lower
// values outrank higher ones; the resolver consults sources strictly in rank
// order and stops at the first success.
type Provenance int

const (
	ProvenanceUnknown Provenance = iota
	// ProvenanceArchiveIndex is a date from the per-run photo-export index
	// lookup table.
	ProvenanceArchiveIndex
	// ProvenanceSidecar is a date from a sibling JSON sidecar file.
	ProvenanceSidecar
	// ProvenanceEmbedded is a date parsed out of embedded metadata tags.
	ProvenanceEmbedded
	// ProvenanceModTime is the filesystem modification time.
	ProvenanceModTime
	// ProvenanceCurrentTime is the wall clock, used only when every other
	// source failed. Callers surface these files for review.
	ProvenanceCurrentTime
)

func (p Provenance) String() string {
	switch p {
	case ProvenanceArchiveIndex:
		return "archive_index"
	case ProvenanceSidecar:
		return "sidecar"
	case ProvenanceEmbedded:
		return "embedded_metadata"
	case ProvenanceModTime:
		return "file_mtime"
	case ProvenanceCurrentTime:
		return "current_time"
	default:
		return "unknown"
	}
}

// Resolution is a resolved timestamp tagged with where it came from.
type Resolution struct {
	Time       time.Time
	Provenance Provenance
}

// LowConfidence reports whether the resolution fell through to the wall-clock
// fallback and should be flagged for review.
func (r Resolution) LowConfidence() bool {
	return r.Provenance == ProvenanceCurrentTime
}
