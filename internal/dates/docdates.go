package dates

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pqsoccerboy17/downloads-organizer/internal/classify"
)

var (
	// "01/01/2024 - 01/31/2024", "1/1/24 through 1/31/24"
	statementPeriodPattern = regexp.MustCompile(
		`(?i)\d{1,2}/\d{1,2}/\d{2,4}\s*(?:-|through|to)\s*(\d{1,2}/\d{1,2}/\d{2,4})`)

	// "Tax Year 2023", "for tax year: 2023"
	taxYearPattern = regexp.MustCompile(`(?i)tax\s+year\D{0,5}(20\d{2})`)

	// "Closing Date 01/15/2024", "Statement Date: 1/15/24"
	closingDatePattern = regexp.MustCompile(
		`(?i)(?:closing|statement)\s+date\D{0,5}(\d{1,2}/\d{1,2}/\d{2,4})`)

	usDatePattern      = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	compactDatePattern = regexp.MustCompile(`(20\d{2})(\d{2})(\d{2})`)

	// Underscores are word characters, so \b would miss "_2022_" in a
	// filename; bound the year by non-digits instead.
	filenameYearPattern = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})(?:\D|$)`)
)

// DocumentDate extracts a statement date from an identity-bearing document.
// The matched rule's hint selects a kind-specific pattern tried first; when
// it misses, generic fallbacks run: the first US-format date anywhere in the
// content, then a compact YYYYMMDD token or bare year in the filename.
func DocumentDate(hint classify.DateHint, content, filename string) (time.Time, bool) {
	switch hint {
	case classify.HintStatementPeriod:
		if m := statementPeriodPattern.FindStringSubmatch(content); m != nil {
			if when, ok := parseUSDate(m[1]); ok {
				return when, true
			}
		}
	case classify.HintTaxYear:
		if m := taxYearPattern.FindStringSubmatch(content); m != nil {
			year, _ := strconv.Atoi(m[1])
			return time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local), true
		}
	case classify.HintClosingDate:
		if m := closingDatePattern.FindStringSubmatch(content); m != nil {
			if when, ok := parseUSDate(m[1]); ok {
				return when, true
			}
		}
	}

	if raw := usDatePattern.FindString(content); raw != "" {
		if when, ok := parseUSDate(raw); ok {
			return when, true
		}
	}

	if m := compactDatePattern.FindStringSubmatch(filename); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
		}
	}
	if m := filenameYearPattern.FindStringSubmatch(filename); m != nil {
		year, _ := strconv.Atoi(m[1])
		return time.Date(year, time.December, 31, 0, 0, 0, 0, time.Local), true
	}

	return time.Time{}, false
}

func parseUSDate(raw string) (time.Time, bool) {
	for _, layout := range []string{"1/2/2006", "1/2/06"} {
		if when, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return when, true
		}
	}
	return time.Time{}, false
}
