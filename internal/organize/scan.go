package organize

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pqsoccerboy17/downloads-organizer/internal/intent"
)

// scanSources lists candidate files of the wanted kind across the configured
// source folders. Scanning is non-recursive: downloads land flat, and
// recursing would drag in unrelated folder trees a user keeps under
// Downloads. Unreadable folders are skipped with an error only when no
// folder could be read at all.
func (p *Pipeline) scanSources(want intent.Kind) ([]string, error) {
	var (
		candidates []string
		readable   int
		firstErr   error
	)

	for _, dir := range p.cfg.Paths.SourceDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		readable++

		for _, entry := range entries {
			if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if intent.Detect(path) == want {
				candidates = append(candidates, path)
			}
		}
	}

	if readable == 0 && firstErr != nil {
		return nil, fmt.Errorf("no source folder readable: %w", firstErr)
	}
	sort.Strings(candidates)
	return candidates, nil
}

// walkArchive lists every file of the wanted kind under root, recursively,
// for the audit pass. Sidecar files and hidden entries are skipped.
func walkArchive(root string, want intent.Kind) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if intent.ForPath(path) == want {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}
