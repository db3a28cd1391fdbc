package extract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// commandContext is swapped in tests to avoid invoking real binaries.
var commandContext = exec.CommandContext

// PDFText extracts document text by invoking pdftotext.
type PDFText struct {
	binary  string
	timeout time.Duration
}

// NewPDFText constructs a pdftotext wrapper. An empty binary falls back to
// the bare command name.
func NewPDFText(binary string, timeout time.Duration) *PDFText {
	if strings.TrimSpace(binary) == "" {
		binary = "pdftotext"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &PDFText{binary: binary, timeout: timeout}
}

// Extract runs pdftotext across all pages and returns the concatenated text.
// Empty output maps to the NoText sentinel; any tool failure, including
// timeout, maps to the Error sentinel so callers degrade to filename-only
// classification instead of crashing.
func (p *PDFText) Extract(ctx context.Context, path string) Content {
	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cmd := commandContext(runCtx, p.binary, "-layout", "-nopgbrk", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		reason := strings.TrimSpace(stderr.String())
		if reason == "" {
			reason = err.Error()
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			reason = "pdftotext timed out after " + p.timeout.String()
		}
		return Failed(reason)
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return NoText()
	}
	return Content{Text: text, State: StateText}
}
