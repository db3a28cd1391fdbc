// Package intent decides what the pipeline should do with a newly observed
// file: treat it as a document, as media, or leave it alone. The decision is
// extension-driven with a magic-byte fallback for extension-less downloads.
package intent

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the closed set of file intents consumed by the scheduler.
type Kind int

const (
	Unknown Kind = iota
	Document
	Media
)

func (k Kind) String() string {
	switch k {
	case Document:
		return "documents"
	case Media:
		return "media"
	default:
		return "unknown"
	}
}

// PhotoExtensions covers common camera, phone, and RAW photo formats.
var PhotoExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".tiff": {}, ".tif": {},
	".heic": {}, ".heif": {},
	".raw": {}, ".cr2": {}, ".nef": {}, ".arw": {}, ".orf": {}, ".rw2": {}, ".dng": {},
	".raf": {}, ".srw": {}, ".pef": {}, ".x3f": {}, ".3fr": {}, ".mef": {}, ".mrw": {},
}

// VideoExtensions covers common consumer video containers.
var VideoExtensions = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {}, ".m4v": {}, ".3gp": {}, ".wmv": {},
	".flv": {}, ".webm": {}, ".mts": {}, ".m2ts": {}, ".mpg": {}, ".mpeg": {},
}

// AudioExtensions covers common audio formats.
var AudioExtensions = map[string]struct{}{
	".mp3": {}, ".m4a": {}, ".wav": {}, ".aac": {}, ".flac": {}, ".ogg": {}, ".wma": {},
	".aiff": {}, ".aif": {}, ".m4b": {}, ".opus": {},
}

const documentExtension = ".pdf"

// IsMediaExtension reports whether ext (with leading dot, any case) belongs
// to one of the media sets.
func IsMediaExtension(ext string) bool {
	ext = strings.ToLower(ext)
	if _, ok := PhotoExtensions[ext]; ok {
		return true
	}
	if _, ok := VideoExtensions[ext]; ok {
		return true
	}
	_, ok := AudioExtensions[ext]
	return ok
}

// ForPath classifies a path by extension alone. Files without a recognized
// extension are Unknown; use Detect when the file exists on disk.
func ForPath(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == documentExtension:
		return Document
	case IsMediaExtension(ext):
		return Media
	default:
		return Unknown
	}
}

// Detect classifies a file on disk: extension first, then a short magic-byte
// sniff so extension-less browser downloads still get routed.
func Detect(path string) Kind {
	if kind := ForPath(path); kind != Unknown {
		return kind
	}
	if filepath.Ext(path) != "" {
		// An extension we do not recognize is a deliberate signal to leave
		// the file alone; sniffing is reserved for extension-less names.
		return Unknown
	}
	return sniff(path)
}

var magicSignatures = []struct {
	prefix []byte
	kind   Kind
}{
	{[]byte("%PDF-"), Document},
	{[]byte{0xFF, 0xD8, 0xFF}, Media},                // JPEG
	{[]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A}, Media}, // PNG
	{[]byte{'G', 'I', 'F', '8'}, Media},              // GIF
	{[]byte{'R', 'I', 'F', 'F'}, Media},              // AVI/WAV
	{[]byte{'I', 'D', '3'}, Media},                   // MP3
}

func sniff(path string) Kind {
	f, err := os.Open(path)
	if err != nil {
		return Unknown
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := f.Read(header)
	if err != nil || n < 4 {
		return Unknown
	}
	header = header[:n]

	for _, sig := range magicSignatures {
		if bytes.HasPrefix(header, sig.prefix) {
			return sig.kind
		}
	}
	// ISO base media files (mp4/mov/heic) carry "ftyp" at offset 4.
	if n >= 8 && bytes.Equal(header[4:8], []byte("ftyp")) {
		return Media
	}
	return Unknown
}
