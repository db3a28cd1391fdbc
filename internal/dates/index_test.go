package dates

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArchiveIndex(t *testing.T) {
	page := `<html><body>
<div class="nav"><img src="assets/logo.png"><span>Back to albums</span></div>
<div class="entry">
  <img src="photos/img_001.jpg">
  <div class="caption">Posted on Friday,
  June 13, 2014</div>
</div>
<div class="entry">
  <img src="photos/img_002.jpg">
  <div class="caption">Saturday, December 25, 2010 at the lake</div>
</div>
<div class="entry">
  <img src="photos/broken.jpg">
  <div class="caption">Thursday, sometime last year</div>
</div>
<div class="entry"><img><div class="caption">Monday, March 3, 2014</div></div>
</body></html>`

	path := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	lookup, err := LoadArchiveIndex(path)
	if err != nil {
		t.Fatalf("LoadArchiveIndex: %v", err)
	}

	if len(lookup) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(lookup), lookup)
	}
	if want := time.Date(2014, time.June, 13, 0, 0, 0, 0, time.UTC); !lookup["img_001.jpg"].Equal(want) {
		t.Errorf("img_001.jpg = %v, want %v (caption wrapped across lines)", lookup["img_001.jpg"], want)
	}
	if want := time.Date(2010, time.December, 25, 0, 0, 0, 0, time.UTC); !lookup["img_002.jpg"].Equal(want) {
		t.Errorf("img_002.jpg = %v, want %v", lookup["img_002.jpg"], want)
	}
	if _, ok := lookup["broken.jpg"]; ok {
		t.Error("entry with an unparseable caption must be skipped, not recorded")
	}
	if _, ok := lookup["logo.png"]; ok {
		t.Error("entry without a weekday caption must be skipped")
	}
}

func TestLoadArchiveIndexMissingFile(t *testing.T) {
	if _, err := LoadArchiveIndex(filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Fatal("expected an error for a missing index page")
	}
}
