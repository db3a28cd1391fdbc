package intent

import (
	"os"
	"path/filepath"
	"testing"
)

func TestForPath(t *testing.T) {
	cases := []struct {
		path string
		want Kind
	}{
		{"statement.pdf", Document},
		{"Statement.PDF", Document},
		{"IMG_0001.JPG", Media},
		{"clip.mov", Media},
		{"song.flac", Media},
		{"notes.txt", Unknown},
		{"archive.zip", Unknown},
		{"noextension", Unknown},
	}
	for _, tc := range cases {
		if got := ForPath(tc.path); got != tc.want {
			t.Errorf("ForPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestDetectSniffsExtensionless(t *testing.T) {
	dir := t.TempDir()

	pdf := filepath.Join(dir, "download")
	if err := os.WriteFile(pdf, []byte("%PDF-1.7 rest of file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Detect(pdf); got != Document {
		t.Fatalf("expected PDF magic to classify as Document, got %v", got)
	}

	jpg := filepath.Join(dir, "photo")
	if err := os.WriteFile(jpg, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Detect(jpg); got != Media {
		t.Fatalf("expected JPEG magic to classify as Media, got %v", got)
	}

	mp4 := filepath.Join(dir, "clip")
	if err := os.WriteFile(mp4, []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2'}, 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Detect(mp4); got != Media {
		t.Fatalf("expected ftyp box to classify as Media, got %v", got)
	}

	txt := filepath.Join(dir, "plain")
	if err := os.WriteFile(txt, []byte("just some text here"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Detect(txt); got != Unknown {
		t.Fatalf("expected plain text to stay Unknown, got %v", got)
	}
}

func TestDetectIgnoresForeignExtensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.docx")
	if err := os.WriteFile(path, []byte("%PDF-"), 0o644); err != nil {
		t.Fatal(err)
	}
	// A recognized-but-foreign extension wins over the sniff.
	if got := Detect(path); got != Unknown {
		t.Fatalf("expected .docx to stay Unknown, got %v", got)
	}
}
