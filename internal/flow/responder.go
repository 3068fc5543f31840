package flow

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/loanpilot/loanpilot/internal/extractor"
)

// rupees renders amounts with thousands separators for prompts.
var rupees = message.NewPrinter(language.English)

// promptRule is one entry in the ranked prompt table. Rules are evaluated
// top to bottom and the first match wins, so each turn produces exactly one
// prompt.
type promptRule struct {
	matches func(missing map[string]bool) bool
	render  func(f *Flow) string
}

var promptRules = []promptRule{
	{
		matches: func(missing map[string]bool) bool { return len(missing) == 0 },
		render: func(*Flow) string {
			return "Perfect! I have all the information. Let me analyze your eligibility..."
		},
	},
	{
		matches: func(missing map[string]bool) bool { return missing[extractor.FieldLoanAmount] },
		render: func(*Flow) string {
			return "I'd be happy to help! How much would you like to borrow?"
		},
	},
	{
		matches: func(missing map[string]bool) bool { return missing[extractor.FieldIncome] },
		render: func(f *Flow) string {
			return rupees.Sprintf("Got it, ₹%d. What's your monthly income?", f.Collected.LoanAmount)
		},
	},
	{
		matches: func(missing map[string]bool) bool {
			return missing[extractor.FieldEmploymentType] || missing[extractor.FieldEmploymentDuration]
		},
		render: func(*Flow) string {
			return "Thanks! Are you salaried or self-employed? And how many years have you been working?"
		},
	},
}

// fallbackPrompt is unreachable while the required-field set is fixed, but
// the table keeps a terminal prompt anyway.
const fallbackPrompt = "I need a bit more information to proceed."

// Respond picks the next prompt for the session from the ranked rule table.
func (f *Flow) Respond() string {
	missing := make(map[string]bool, len(requiredFields))
	for _, name := range f.MissingFields() {
		missing[name] = true
	}

	for _, rule := range promptRules {
		if rule.matches(missing) {
			return rule.render(f)
		}
	}
	return fallbackPrompt
}
