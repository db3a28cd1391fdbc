// Package preflight verifies directory access and external tool availability
// before a batch run mutates anything.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/pqsoccerboy17/downloads-organizer/internal/config"
)

// Result captures the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckPaths evaluates every source and destination directory in the config.
func CheckPaths(cfg *config.Config) []Result {
	results := make([]Result, 0, len(cfg.Paths.SourceDirs)+2)
	for _, dir := range cfg.Paths.SourceDirs {
		results = append(results, CheckDirectoryAccess("Source", dir))
	}
	results = append(results, CheckDirectoryAccess("Tax archive", cfg.Paths.TaxDir))
	results = append(results, CheckDirectoryAccess("Media archive", cfg.Paths.MediaDir))
	return results
}
