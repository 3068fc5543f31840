// Package decision combines an eligibility verdict with the verified
// document count into a final application status.
package decision

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/loanpilot/loanpilot/internal/eligibility"
)

// Status is the final state of a loan application.
type Status string

const (
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusPending      Status = "pending"
	StatusManualReview Status = "manual_review"
)

// MinDocuments is how many verification records must be on file before an
// eligible application can move past pending.
const MinDocuments = 3

// Decision is the terminal result returned to the applicant. The
// processing-time labels are illustrative, not measured.
type Decision struct {
	Status          Status `json:"status"`
	Decision        string `json:"decision"`
	Message         string `json:"message,omitempty"`
	ProcessingTime  string `json:"processing_time"`
	TraditionalTime string `json:"traditional_time,omitempty"`
}

var rupees = message.NewPrinter(language.English)

// decisionRule is one entry in the ranked decision table, evaluated top to
// bottom; the first matching guard produces the decision.
type decisionRule struct {
	guard func(elig eligibility.Result, docCount int) bool
	build func(elig eligibility.Result) Decision
}

var decisionRules = []decisionRule{
	{
		guard: func(elig eligibility.Result, _ int) bool { return !elig.Eligible },
		build: func(eligibility.Result) Decision {
			return Decision{
				Status:         StatusRejected,
				Decision:       "Application needs review for alternative options.",
				ProcessingTime: "2.5 minutes",
			}
		},
	},
	{
		guard: func(_ eligibility.Result, docCount int) bool { return docCount < MinDocuments },
		build: func(eligibility.Result) Decision {
			return Decision{
				Status:         StatusPending,
				Decision:       "Awaiting document verification",
				ProcessingTime: "1.8 minutes",
			}
		},
	},
	{
		guard: func(elig eligibility.Result, _ int) bool { return elig.RiskScore < 60 },
		build: func(elig eligibility.Result) Decision {
			return Decision{
				Status: StatusApproved,
				Decision: rupees.Sprintf("Congratulations! Your loan of ₹%d at %v%% has been APPROVED! Download your sanction letter below.",
					elig.ApprovedAmount, elig.InterestRate),
				Message: rupees.Sprintf("Loan approved for ₹%d at %v%% interest.",
					elig.ApprovedAmount, elig.InterestRate),
				ProcessingTime:  "3.2 minutes",
				TraditionalTime: "5-7 days",
			}
		},
	},
	{
		guard: func(eligibility.Result, int) bool { return true },
		build: func(eligibility.Result) Decision {
			return Decision{
				Status:         StatusManualReview,
				Decision:       "Your application requires manual review. You will hear back within 24 hours.",
				ProcessingTime: "2.8 minutes",
			}
		},
	},
}

// Compose walks the ranked rules and returns the first matching decision.
func Compose(elig eligibility.Result, docCount int) Decision {
	for _, rule := range decisionRules {
		if rule.guard(elig, docCount) {
			return rule.build(elig)
		}
	}
	// Unreachable: the last guard always matches.
	return Decision{}
}
