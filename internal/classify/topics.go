package classify

// globalExclusions veto ALL topic categorization when present in either the
// filename or the content. Work and client documents must never be filed
// into the personal archive, no matter how strong a topic signal looks.
var globalExclusions = []string{
	"proposal",
	"sow",
	"statement of work",
	"contract",
	"agreement",
	"presentation",
	"deck",
	"yourco",
	"consulting",
}

// TopicRule describes one non-account document topic. Keyword matching is
// ANY-of (topics are broad), unlike account rules which require every
// keyword. Rules are evaluated in slice order; first match wins.
type TopicRule struct {
	ID               string
	FilenameKeywords []string
	ContentKeywords  []string

	// Exclusions veto this topic only, on top of the global list.
	Exclusions []string
}

// TopicRules returns the ordered topic rule table.
func TopicRules() []TopicRule {
	return []TopicRule{
		{
			ID:               "tax_forms",
			FilenameKeywords: []string{"1099", "w-2", "w2", "1098", "1040"},
			ContentKeywords:  []string{"form 1099", "form w-2", "form 1098", "form 1040", "internal revenue service"},
		},
		{
			ID:               "receipts",
			FilenameKeywords: []string{"receipt", "invoice", "order confirmation"},
			ContentKeywords:  []string{"receipt", "invoice", "payment confirmation", "amount paid"},
			Exclusions:       []string{"return policy"},
		},
		{
			ID:               "insurance",
			FilenameKeywords: []string{"insurance", "policy"},
			ContentKeywords:  []string{"insurance", "policyholder", "coverage", "claim"},
			Exclusions:       []string{"job posting"},
		},
		{
			ID:               "medical",
			FilenameKeywords: []string{"medical", "lab results", "prescription"},
			ContentKeywords:  []string{"patient", "diagnosis", "explanation of benefits", "prescription"},
		},
		{
			ID:               "legal",
			FilenameKeywords: []string{"court", "summons", "notarized"},
			ContentKeywords:  []string{"court of", "attorney at law", "legal notice", "notary public"},
		},
		{
			ID:               "property",
			FilenameKeywords: []string{"deed", "escrow", "hoa"},
			ContentKeywords:  []string{"property tax", "deed of trust", "escrow", "homeowners association"},
		},
	}
}
