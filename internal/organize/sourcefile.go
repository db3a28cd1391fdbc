package organize

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pqsoccerboy17/downloads-organizer/internal/fileutil"
)

// SourceFile is an immutable snapshot of a candidate file, taken at the
// moment the pipeline first reads it. The content hash is computed lazily
// because most files never need one.
type SourceFile struct {
	Path    string
	Name    string
	Ext     string
	Size    int64
	ModTime time.Time

	hashOnce sync.Once
	hash     string
	hashErr  error
}

// NewSourceFile snapshots path. Directories and unreadable paths are errors.
func NewSourceFile(path string) (*SourceFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "snapshot", Path: path, Err: os.ErrInvalid}
	}
	return &SourceFile{
		Path:    path,
		Name:    filepath.Base(path),
		Ext:     strings.ToLower(filepath.Ext(path)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Hash returns the file's SHA256 digest, computing it on first call.
func (f *SourceFile) Hash() (string, error) {
	f.hashOnce.Do(func() {
		f.hash, f.hashErr = fileutil.Checksum(f.Path)
	})
	return f.hash, f.hashErr
}
