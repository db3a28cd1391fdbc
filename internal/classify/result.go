package classify

// Class is the top-level category family a file was assigned to.
type Class int

const (
	// Unclassified means no rule met its confidence threshold.
	Unclassified Class = iota
	// Account is an identity-bearing bank or investment document.
	Account
	// Topic is a non-account personal document (tax form, receipt, ...).
	Topic
	// Media is a photo, video, or audio file.
	Media
)

func (c Class) String() string {
	switch c {
	case Account:
		return "account"
	case Topic:
		return "topic"
	case Media:
		return "media"
	default:
		return "unclassified"
	}
}

// MediaKind distinguishes the media families.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

// MatchedBy records which signals produced a classification.
type MatchedBy int

const (
	MatchedNone MatchedBy = iota
	MatchedFilename
	MatchedContent
	MatchedBoth
)

func (m MatchedBy) String() string {
	switch m {
	case MatchedFilename:
		return "filename"
	case MatchedContent:
		return "content"
	case MatchedBoth:
		return "both"
	default:
		return "none"
	}
}

// Category is the tagged classification variant. Exactly one of the
// class-specific fields is meaningful for a given Class.
type Category struct {
	Class Class

	// Kind is the matched rule or topic identifier ("chase_credit",
	// "tax_forms", "photo").
	Kind string

	// CategoryFolder and KindFolder drive document destination paths:
	// CategoryFolder is the grouping ("Bank Statements"), KindFolder the
	// per-account folder ("Chase Credit Card"). Identity, when present, is
	// appended to the kind folder and embedded in the destination filename.
	CategoryFolder string
	KindFolder     string
	Identity       string

	// DateHint is the matched account rule's date-extraction hint.
	DateHint DateHint

	// MediaKind is set for Class == Media.
	MediaKind MediaKind
}

// Result pairs a category with its confidence and provenance. Confidence is
// a hard gate: results below a rule's threshold are reported as Unclassified,
// never down-ranked.
type Result struct {
	Category   Category
	Confidence int
	MatchedBy  MatchedBy
}

// Unresolved is the result for files no rule claimed.
func Unresolved() Result {
	return Result{Category: Category{Class: Unclassified}}
}
