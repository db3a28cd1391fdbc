package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pqsoccerboy17/downloads-organizer/internal/config"
)

// Requirement defines an external tool the organizer relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// DocumentRequirements returns the tools needed for document processing.
func DocumentRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "pdftotext",
			Command:     cfg.Tools.PdftotextBinary,
			Description: "Required for PDF text extraction (install poppler-utils)",
		},
	}
}

// MediaRequirements returns the tools needed for media processing.
func MediaRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "ExifTool",
			Command:     cfg.Tools.ExiftoolBinary,
			Description: "Required for media metadata extraction (install exiftool)",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// RequireAll returns an error naming the first missing non-optional tool.
func RequireAll(requirements []Requirement) error {
	for _, status := range CheckBinaries(requirements) {
		if status.Optional || status.Available {
			continue
		}
		return fmt.Errorf("%s unavailable: %s. %s", status.Name, status.Detail, status.Description)
	}
	return nil
}
