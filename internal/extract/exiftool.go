package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// metadataTags is the fixed tag list requested from exiftool for every media
// file: capture date variants, camera identity, and GPS position.
var metadataTags = []string{
	"DateTimeOriginal",
	"CreateDate",
	"MediaCreateDate",
	"FileModifyDate",
	"Make",
	"Model",
	"GPSLatitude",
	"GPSLongitude",
}

// Exiftool extracts media metadata by invoking exiftool.
type Exiftool struct {
	binary  string
	timeout time.Duration
}

// NewExiftool constructs an exiftool wrapper.
func NewExiftool(binary string, timeout time.Duration) *Exiftool {
	if strings.TrimSpace(binary) == "" {
		binary = "exiftool"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Exiftool{binary: binary, timeout: timeout}
}

// Tags reads the fixed metadata tag set for one media file. Per-file tool
// failure returns an error; callers degrade to metadata-less processing
// rather than aborting the run.
func (e *Exiftool) Tags(ctx context.Context, path string) (map[string]string, error) {
	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	args := make([]string, 0, len(metadataTags)+3)
	args = append(args, "-s", "-S")
	for _, tag := range metadataTags {
		args = append(args, "-"+tag)
	}
	args = append(args, path)

	cmd := commandContext(runCtx, e.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("exiftool timed out after %s", e.timeout)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("exiftool: %s", detail)
	}

	return parseTagOutput(stdout.String()), nil
}

// parseTagOutput converts exiftool's "Tag: value" lines into a map.
// Malformed lines are skipped.
func parseTagOutput(output string) map[string]string {
	tags := make(map[string]string)
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		tags[key] = value
	}
	return tags
}
