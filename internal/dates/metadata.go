package dates

import (
	"strings"
	"time"
)

// metadataFieldOrder is the embedded-tag preference order. FileModifyDate is
// last because it reflects the download, not the capture.
var metadataFieldOrder = []string{
	"DateTimeOriginal",
	"CreateDate",
	"MediaCreateDate",
	"FileModifyDate",
}

var metadataLayouts = []string{
	"2006:01:02 15:04:05",
	"2006:01:02 15:04:05-07:00",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// Cameras write this literal when the clock was never set. It must be treated
// as absent, not as year zero.
const zeroMetadataDate = "0000:00:00 00:00:00"

// embeddedDate picks the first parseable date from extracted metadata tags,
// honoring the field-preference order.
func embeddedDate(tags map[string]string) (time.Time, bool) {
	for _, field := range metadataFieldOrder {
		value := strings.TrimSpace(tags[field])
		if value == "" || strings.HasPrefix(value, zeroMetadataDate) {
			continue
		}
		for _, layout := range metadataLayouts {
			if when, err := time.Parse(layout, value); err == nil {
				return when, true
			}
		}
	}
	return time.Time{}, false
}
