package classify

import (
	"regexp"
	"strings"
)

// accountNumberPatterns are tried in order against upper-cased content. Each
// tolerates a different brokerage statement layout; the first capture wins.
var accountNumberPatterns = []*regexp.Regexp{
	// "Account Number: X12-345678" / "Account # Z98-765432"
	regexp.MustCompile(`ACCOUNT\s*(?:NUMBER|#|NO\.?)[:\s]*([A-Z]?\d{2,3}-\d{6})`),
	// "Account Number 123456789"
	regexp.MustCompile(`ACCOUNT\s*(?:NUMBER|#|NO\.?)[:\s]*(\d{6,9})\b`),
	// "For Account X12-345678" (summary page layout)
	regexp.MustCompile(`FOR\s+ACCOUNT\s+([A-Z]?\d{2,3}-\d{6})`),
	// "Account ending in 6789" (redacted layout)
	regexp.MustCompile(`ACCOUNT\s+ENDING\s+(?:IN\s+)?(\d{4})`),
}

const identityWidth = 9

// ExtractAccountIdentity pulls a brokerage account identity token out of
// statement content. Patterns are tried in sequence against the upper-cased
// text; the captured group is normalized by stripping separators and
// zero-padding the digits to a fixed width so folder names sort stably.
func ExtractAccountIdentity(content string) (string, bool) {
	upper := strings.ToUpper(content)
	for _, pattern := range accountNumberPatterns {
		match := pattern.FindStringSubmatch(upper)
		if match == nil {
			continue
		}
		return normalizeIdentity(match[1]), true
	}
	return "", false
}

func normalizeIdentity(raw string) string {
	token := strings.ReplaceAll(strings.TrimSpace(raw), "-", "")
	// Letter-prefixed account formats keep the prefix; only the digit run is
	// padded.
	prefix := ""
	digits := token
	if len(token) > 0 && token[0] >= 'A' && token[0] <= 'Z' {
		prefix = token[:1]
		digits = token[1:]
	}
	for len(prefix)+len(digits) < identityWidth {
		digits = "0" + digits
	}
	return prefix + digits
}
