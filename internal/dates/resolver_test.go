package dates

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSidecarOutranksEmbeddedMetadata(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_001.jpg")
	writeFile(t, media, "jpeg bytes")
	writeFile(t, media+".json", `{"taken_timestamp": 1402700713}`)

	tags := map[string]string{"DateTimeOriginal": "2020:05:05 10:00:00"}

	r := NewResolver("", nil)
	got := r.Resolve(media, tags)
	if got.Provenance != ProvenanceSidecar {
		t.Fatalf("provenance = %v, want sidecar", got.Provenance)
	}
	if !got.Time.Equal(time.Unix(1402700713, 0)) {
		t.Fatalf("time = %v, want sidecar timestamp", got.Time)
	}
}

func TestNestedSidecarTimestamp(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "IMG_002.jpg")
	writeFile(t, media, "jpeg bytes")
	writeFile(t, media+".json",
		`{"media_metadata": {"photo_metadata": {"taken_timestamp": 1500000000}}}`)

	got := NewResolver("", nil).Resolve(media, nil)
	if got.Provenance != ProvenanceSidecar || !got.Time.Equal(time.Unix(1500000000, 0)) {
		t.Fatalf("got %+v, want nested sidecar timestamp", got)
	}
}

func TestZeroMetadataDateFallsThroughToModTime(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "clip.mov")
	writeFile(t, media, "video bytes")

	mtime := time.Date(2022, time.March, 4, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(media, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	tags := map[string]string{"DateTimeOriginal": "0000:00:00 00:00:00"}
	got := NewResolver("", nil).Resolve(media, tags)
	if got.Provenance != ProvenanceModTime {
		t.Fatalf("provenance = %v, want mtime", got.Provenance)
	}
	if !got.Time.Equal(mtime) {
		t.Fatalf("time = %v, want %v", got.Time, mtime)
	}
}

func TestEmbeddedFieldPreferenceOrder(t *testing.T) {
	tags := map[string]string{
		"CreateDate":       "2021:01:01 00:00:00",
		"DateTimeOriginal": "2019:06:13 08:30:00",
	}
	when, ok := embeddedDate(tags)
	if !ok {
		t.Fatal("expected a date")
	}
	want := time.Date(2019, time.June, 13, 8, 30, 0, 0, time.UTC)
	if !when.Equal(want) {
		t.Fatalf("got %v, want DateTimeOriginal value %v", when, want)
	}
}

func TestEmbeddedDateLayouts(t *testing.T) {
	cases := []struct {
		value string
		ok    bool
	}{
		{"2019:06:13 08:30:00", true},
		{"2019-06-13T08:30:00Z", true},
		{"2019-06-13 08:30:00", true},
		{"not a date", false},
		{"", false},
	}
	for _, tc := range cases {
		_, ok := embeddedDate(map[string]string{"CreateDate": tc.value})
		if ok != tc.ok {
			t.Errorf("embeddedDate(%q) ok = %v, want %v", tc.value, ok, tc.ok)
		}
	}
}

func TestCurrentTimeFallbackIsFlagged(t *testing.T) {
	fixed := time.Date(2024, time.July, 1, 9, 0, 0, 0, time.UTC)
	r := NewResolver("", nil)
	r.now = func() time.Time { return fixed }

	got := r.Resolve(filepath.Join(t.TempDir(), "missing.jpg"), nil)
	if got.Provenance != ProvenanceCurrentTime {
		t.Fatalf("provenance = %v, want current-time fallback", got.Provenance)
	}
	if !got.LowConfidence() {
		t.Fatal("current-time resolution must report low confidence")
	}
	if !got.Time.Equal(fixed) {
		t.Fatalf("time = %v, want injected clock", got.Time)
	}
}

func TestArchiveIndexOutranksSidecar(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "photo_123.jpg")
	writeFile(t, media, "jpeg bytes")
	writeFile(t, media+".json", `{"taken_timestamp": 1600000000}`)

	index := filepath.Join(dir, "index.html")
	writeFile(t, index, `<html><body>
<div class="entry"><img src="photos/photo_123.jpg"><p>Friday, June 13, 2014</p></div>
</body></html>`)

	r := NewResolver(index, nil)
	got := r.Resolve(media, nil)
	if got.Provenance != ProvenanceArchiveIndex {
		t.Fatalf("provenance = %v, want archive index", got.Provenance)
	}
	want := time.Date(2014, time.June, 13, 0, 0, 0, 0, time.UTC)
	if !got.Time.Equal(want) {
		t.Fatalf("time = %v, want %v", got.Time, want)
	}
}
