package classify

import "strings"

// DateHint tells the temporal resolver which document-specific date
// extraction to try before the generic fallbacks.
type DateHint int

const (
	// HintGeneric uses only the generic content/filename date fallbacks.
	HintGeneric DateHint = iota
	// HintClosingDate looks for a "Closing Date"/"Statement Date" label.
	HintClosingDate
	// HintStatementPeriod looks for a statement-period end date.
	HintStatementPeriod
	// HintTaxYear looks for an explicit tax year, defaulting to December 31.
	HintTaxYear
)

// AccountRule describes one identity-bearing document kind. Rules are
// evaluated in slice order; the first match wins and later rules are never
// consulted for the same file.
type AccountRule struct {
	ID             string
	Name           string
	CategoryFolder string
	KindFolder     string

	// Identity is the fixed account token for kinds whose identity is known
	// up front. Kinds that extract identity from content leave it empty and
	// set a Validate that produces it.
	Identity string

	// FilenameKeywords and ContentKeywords must ALL be present (lowercase
	// substring match) in their respective signal for that signal to count.
	// A rule matches when either signal matches.
	FilenameKeywords []string
	ContentKeywords  []string

	// Validate runs after a basic match and may veto it or supply the
	// identity token. A nil validator accepts the match with the fixed
	// Identity.
	Validate func(filename, content string) (identity string, ok bool)

	DateHint DateHint
}

var statementDateMarkers = []string{"closing date", "statement date"}

var leaseExclusions = []string{
	"lease agreement",
	"rental agreement",
	"security deposit",
	"landlord and tenant",
	"terms and conditions of tenancy",
}

var rentalOperatorSignals = []string{"vacasa", "property management"}

var rentalIncomeSignals = []string{
	"rental income",
	"owner payout",
	"owner proceeds",
	"gross rent",
}

// requireStatementDate accepts only content carrying a closing/statement date
// marker and, when a fixed token is expected, the literal token itself.
func requireStatementDate(token string) func(string, string) (string, bool) {
	return func(_, content string) (string, bool) {
		if content == "" {
			return "", false
		}
		if !containsAny(content, statementDateMarkers) {
			return "", false
		}
		if token != "" && !strings.Contains(content, token) {
			return "", false
		}
		return token, true
	}
}

// requireAccountToken accepts content that carries the literal account token.
func requireAccountToken(token string) func(string, string) (string, bool) {
	return func(_, content string) (string, bool) {
		if content == "" || !strings.Contains(content, token) {
			return "", false
		}
		return token, true
	}
}

// validateRentalStatement rejects content that reads like a legal agreement
// and demands both an operator-name signal and an income-activity signal, so
// a lease PDF never lands in the income folder.
func validateRentalStatement(_, content string) (string, bool) {
	if content == "" {
		return "", false
	}
	if containsAny(content, leaseExclusions) {
		return "", false
	}
	if !containsAny(content, rentalOperatorSignals) {
		return "", false
	}
	if !containsAny(content, rentalIncomeSignals) {
		return "", false
	}
	return "", true
}

// validateBrokerageIdentity only accepts statements whose account number can
// be extracted; an otherwise-matching document without an identity is not
// routable and must stay unclassified.
func validateBrokerageIdentity(_, content string) (string, bool) {
	if content == "" {
		return "", false
	}
	return ExtractAccountIdentity(content)
}

// AccountRules returns the ordered identity-bearing document rule table.
func AccountRules() []AccountRule {
	return []AccountRule{
		{
			ID:               "fidelity_1099",
			Name:             "Fidelity Tax Forms",
			CategoryFolder:   "Investment Statements",
			KindFolder:       "Fidelity Brokerage",
			FilenameKeywords: []string{"fidelity", "1099"},
			ContentKeywords:  []string{"fidelity", "form 1099"},
			Validate:         validateBrokerageIdentity,
			DateHint:         HintTaxYear,
		},
		{
			ID:               "fidelity_statement",
			Name:             "Fidelity Brokerage",
			CategoryFolder:   "Investment Statements",
			KindFolder:       "Fidelity Brokerage",
			FilenameKeywords: []string{"fidelity", "statement"},
			ContentKeywords:  []string{"fidelity investments"},
			Validate:         validateBrokerageIdentity,
			DateHint:         HintGeneric,
		},
		{
			ID:               "rental_income",
			Name:             "Rental Income",
			CategoryFolder:   "Rental Income",
			KindFolder:       "Owner Statements",
			FilenameKeywords: []string{"owner", "statement"},
			ContentKeywords:  []string{"owner statement"},
			Validate:         validateRentalStatement,
			DateHint:         HintStatementPeriod,
		},
		{
			ID:               "chase_credit",
			Name:             "Chase Credit Card",
			CategoryFolder:   "Bank Statements",
			KindFolder:       "Chase Credit Card",
			FilenameKeywords: []string{"chase", "credit"},
			ContentKeywords:  []string{"chase", "sapphire"},
			Validate:         requireStatementDate(""),
			DateHint:         HintClosingDate,
		},
		{
			ID:               "amex",
			Name:             "American Express",
			CategoryFolder:   "Bank Statements",
			KindFolder:       "American Express",
			FilenameKeywords: []string{"amex"},
			ContentKeywords:  []string{"american express"},
			Validate:         requireStatementDate(""),
			DateHint:         HintClosingDate,
		},
		{
			ID:               "chase_checking",
			Name:             "Chase Checking",
			CategoryFolder:   "Bank Statements",
			KindFolder:       "Chase Checking",
			FilenameKeywords: []string{"chase", "checking"},
			ContentKeywords:  []string{"chase", "checking"},
			DateHint:         HintGeneric,
		},
		{
			ID:               "colonial_checking",
			Name:             "Colonial Checking",
			CategoryFolder:   "Bank Statements",
			KindFolder:       "Colonial Checking",
			Identity:         "0675",
			FilenameKeywords: []string{"colonial", "0675"},
			ContentKeywords:  []string{"colonial"},
			Validate:         requireAccountToken("0675"),
			DateHint:         HintGeneric,
		},
		{
			ID:               "colonial_savings",
			Name:             "Colonial Savings",
			CategoryFolder:   "Bank Statements",
			KindFolder:       "Colonial Savings",
			Identity:         "5934",
			FilenameKeywords: []string{"colonial", "5934"},
			ContentKeywords:  []string{"colonial"},
			Validate:         requireAccountToken("5934"),
			DateHint:         HintGeneric,
		},
	}
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func containsAll(haystack string, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}
