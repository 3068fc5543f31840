// Package extractor turns free-form applicant messages into typed intake
// fields. Extraction is stateless: every rule runs against a lower-cased
// copy of the input and the rules do not short-circuit each other, so a
// single message can populate several fields at once.
package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// Accepted bounds for numeric fields. Values outside these ranges are
// treated as noise and left absent.
const (
	MinLoanAmount = 10_000
	MaxLoanAmount = 10_000_000
	MinIncome     = 5_000
	MaxIncome     = 1_000_000
)

var (
	lakhRe     = regexp.MustCompile(`(\d+)\s*(?:lakh|lac)`)
	amountRe   = regexp.MustCompile(`\d[\d,]{4,}`)
	incomeRe   = regexp.MustCompile(`\d[\d,]{3,}`)
	bareNumRe  = regexp.MustCompile(`\d{4,}`)
	durationRe = regexp.MustCompile(`(\d+)\s*(?:year|yr)`)
)

// incomeCues hint that a number in the message is a monthly income rather
// than a loan amount.
var incomeCues = []string{"income", "salary", "earn", "make", "paid"}

// Extract runs every extraction rule over msg and returns whatever fields
// could be recognised. Fields no rule matched stay at their zero value.
func Extract(msg string) Fields {
	text := strings.ToLower(msg)

	return Fields{
		LoanAmount:         extractAmount(text),
		Income:             extractIncome(text),
		EmploymentType:     extractEmploymentType(text),
		EmploymentDuration: extractDuration(text),
	}
}

// extractAmount recognises "5 lakh"/"5 lac" shorthand first, then the first
// long digit run with thousands separators stripped. Only the digit-run
// form is bounds-checked.
func extractAmount(text string) int {
	if m := lakhRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n * 100_000
		}
	}
	if m := amountRe.FindString(text); m != "" {
		n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
		if err == nil && n >= MinLoanAmount && n <= MaxLoanAmount {
			return n
		}
	}
	return 0
}

// extractIncome prefers a number next to an income cue. The bare-number
// fallback exists so a plain numeric reply to the income question is
// understood; it also means a lone long number can fill both income and
// loan amount in the same turn, which the merge policy resolves by keeping
// whichever value was collected first.
func extractIncome(text string) int {
	if containsAny(text, incomeCues) {
		if m := incomeRe.FindString(text); m != "" {
			n, err := strconv.Atoi(strings.ReplaceAll(m, ",", ""))
			if err == nil && n >= MinIncome && n <= MaxIncome {
				return n
			}
		}
	}

	if m := bareNumRe.FindString(text); m != "" {
		if n, err := strconv.Atoi(m); err == nil && n >= MinIncome && n <= MaxIncome {
			return n
		}
	}
	return 0
}

func extractEmploymentType(text string) EmploymentType {
	if strings.Contains(text, "salari") {
		return Salaried
	}
	if containsAny(text, []string{"self", "business", "entrepreneur"}) {
		return SelfEmployed
	}
	return ""
}

func extractDuration(text string) int {
	if m := durationRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 0
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
