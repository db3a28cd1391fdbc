package dates

import (
	"testing"
	"time"

	"github.com/pqsoccerboy17/downloads-organizer/internal/classify"
)

func TestDocumentDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	}

	cases := []struct {
		name     string
		hint     classify.DateHint
		content  string
		filename string
		want     time.Time
		ok       bool
	}{
		{
			name:    "closing date label",
			hint:    classify.HintClosingDate,
			content: "Account activity\nClosing Date 01/15/2024\nNew balance $512.33",
			want:    day(2024, time.January, 15),
			ok:      true,
		},
		{
			name:    "statement date label two-digit year",
			hint:    classify.HintClosingDate,
			content: "Statement Date: 2/3/24",
			want:    day(2024, time.February, 3),
			ok:      true,
		},
		{
			name:    "statement period end date",
			hint:    classify.HintStatementPeriod,
			content: "Owner statement for period 01/01/2024 - 01/31/2024",
			want:    day(2024, time.January, 31),
			ok:      true,
		},
		{
			name:    "tax year defaults to december 31",
			hint:    classify.HintTaxYear,
			content: "Form 1099-DIV\nTax Year 2023\nFidelity Investments",
			want:    day(2023, time.December, 31),
			ok:      true,
		},
		{
			name:    "hint miss falls back to first us date in content",
			hint:    classify.HintClosingDate,
			content: "Payment received 03/07/2024, thank you",
			want:    day(2024, time.March, 7),
			ok:      true,
		},
		{
			name:     "generic content date",
			hint:     classify.HintGeneric,
			content:  "Deposited on 06/30/2023 to your account",
			want:     day(2023, time.June, 30),
			ok:       true,
		},
		{
			name:     "compact filename date",
			hint:     classify.HintGeneric,
			content:  "no dates in here",
			filename: "statement_20240115.pdf",
			want:     day(2024, time.January, 15),
			ok:       true,
		},
		{
			name:     "bare filename year",
			hint:     classify.HintGeneric,
			content:  "no dates in here",
			filename: "fidelity_2022_summary.pdf",
			want:     day(2022, time.December, 31),
			ok:       true,
		},
		{
			name:     "nothing extractable",
			hint:     classify.HintGeneric,
			content:  "no dates in here",
			filename: "scan.pdf",
			ok:       false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DocumentDate(tc.hint, tc.content, tc.filename)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
