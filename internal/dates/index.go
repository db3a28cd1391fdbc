package dates

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Photo-export index pages caption each image with a narrative date like
// "Friday, June 13, 2014". Entries whose caption lacks a weekday name are
// navigation chrome, not photos, and are skipped.
var weekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

var narrativeDatePattern = regexp.MustCompile(
	`(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),\s+` +
		`(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+` +
		`\d{1,2},\s+\d{4}`)

const narrativeDateLayout = "Monday, January 2, 2006"

// LoadArchiveIndex parses a photo-export index page and returns a lookup of
// original media filename to capture date. Malformed entries are skipped
// individually; only a missing or unparseable page is an error.
func LoadArchiveIndex(indexPath string) (map[string]time.Time, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("open archive index: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse archive index: %w", err)
	}

	lookup := make(map[string]time.Time)
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}

		caption := img.Parent().Text()
		if !containsWeekday(caption) {
			return
		}

		raw := narrativeDatePattern.FindString(caption)
		if raw == "" {
			return
		}
		when, err := time.Parse(narrativeDateLayout, normalizeSpaces(raw))
		if err != nil {
			return
		}

		lookup[path.Base(src)] = when
	})
	return lookup, nil
}

func containsWeekday(text string) bool {
	for _, day := range weekdayNames {
		if strings.Contains(text, day) {
			return true
		}
	}
	return false
}

// normalizeSpaces collapses runs of whitespace, which export pages often
// introduce via line wrapping inside captions.
func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
