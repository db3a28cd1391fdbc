package extract

// State describes the outcome of a text extraction attempt.
type State int

const (
	// StateText means extraction succeeded and produced text.
	StateText State = iota
	// StateNoText means extraction succeeded but the document has no text layer.
	StateNoText
	// StateError means the extraction tool failed; Reason carries the cause.
	StateError
)

// Content is the result of extracting a file's text or metadata. Callers must
// treat NoText and Error identically for classification purposes: no usable
// content, filename-only signals.
type Content struct {
	Text   string
	State  State
	Reason string
	Tags   map[string]string
}

// Usable reports whether Text can feed content-based classification.
func (c Content) Usable() bool {
	return c.State == StateText && c.Text != ""
}

// NoText is the sentinel for a successful extraction with empty output.
func NoText() Content {
	return Content{State: StateNoText}
}

// Failed is the sentinel for a tool failure.
func Failed(reason string) Content {
	return Content{State: StateError, Reason: reason}
}
