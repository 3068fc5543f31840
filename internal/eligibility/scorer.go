// Package eligibility scores a completed intake against the lending rules.
// Calculate is a pure function of the collected fields; a fresh Result is
// produced on every call and replaces any previously stored one.
package eligibility

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanpilot/loanpilot/internal/extractor"
)

// emiFactor approximates the monthly installment as a share of principal.
const emiFactor = 0.022

// Factor is one line of the eligibility explanation shown to the applicant.
type Factor struct {
	Icon     string `json:"icon"`
	Title    string `json:"title"`
	Detail   string `json:"detail"`
	Positive bool   `json:"positive"`
}

// Result is the eligibility verdict for one set of collected fields.
type Result struct {
	Eligible       bool     `json:"eligible"`
	ApprovedAmount int      `json:"approved_amount"`
	InterestRate   float64  `json:"interest_rate"`
	MaxEligible    int      `json:"max_eligible"`
	RiskScore      int      `json:"risk_score"`
	Explanation    []Factor `json:"explanation"`
}

// Calculate scores the collected fields: lending multiplier and base rate
// from the employment profile, a risk score clamped to [0,100], a
// risk-banded interest rate, and the eligibility predicate
// loan_amount <= max_eligible && risk < 70.
func Calculate(f extractor.Fields) Result {
	multiplier, baseRate := rateTable(f.EmploymentType, f.EmploymentDuration)
	maxEligible := f.Income * multiplier
	risk := riskScore(f)

	eligible := f.LoanAmount <= maxEligible && risk < 70
	approved := 0
	if eligible {
		approved = min(f.LoanAmount, maxEligible)
	}

	return Result{
		Eligible:       eligible,
		ApprovedAmount: approved,
		InterestRate:   interestRate(baseRate, risk),
		MaxEligible:    maxEligible,
		RiskScore:      risk,
		Explanation:    explain(f, risk),
	}
}

// rateTable returns the income multiplier and annual base rate for the
// employment profile.
func rateTable(empType extractor.EmploymentType, years int) (multiplier int, baseRate float64) {
	if empType == extractor.Salaried {
		if years >= 3 {
			return 60, 10.5
		}
		return 50, 10.5
	}
	if years >= 2 {
		return 48, 11.5
	}
	return 40, 11.5
}

// riskScore starts every applicant at 50 and adjusts for employment
// stability and debt-to-income. The DTI adjustment only applies when both
// income and loan amount are known.
func riskScore(f extractor.Fields) int {
	score := 50

	if f.EmploymentType == extractor.Salaried {
		score -= 10
	}

	switch {
	case f.EmploymentDuration >= 3:
		score -= 15
	case f.EmploymentDuration >= 2:
		score -= 10
	}

	if f.Income > 0 && f.LoanAmount > 0 {
		dti := float64(f.LoanAmount) * emiFactor / float64(f.Income)
		switch {
		case dti < 0.3:
			score -= 20
		case dti < 0.4:
			score -= 10
		default:
			score += 15
		}
	}

	return clamp(score)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// interestRate prices the base rate by risk band, rounded to two decimals.
func interestRate(baseRate float64, risk int) float64 {
	base := decimal.NewFromFloat(baseRate)

	var rate decimal.Decimal
	switch {
	case risk < 30:
		rate = base.Sub(decimal.NewFromFloat(0.5))
	case risk < 60:
		rate = base
	default:
		rate = base.Add(decimal.NewFromFloat(1.0))
	}

	out, _ := rate.Round(2).Float64()
	return out
}

// explain builds the ordered factor list: risk band first, then EMI
// affordability, then employment stability.
func explain(f extractor.Fields, risk int) []Factor {
	var factors []Factor

	switch {
	case risk < 30:
		factors = append(factors, Factor{
			Icon:     "✓",
			Title:    "Excellent Risk Profile",
			Detail:   fmt.Sprintf("Risk Score: %d%% (Very Low)", risk),
			Positive: true,
		})
	case risk < 60:
		factors = append(factors, Factor{
			Icon:     "✓",
			Title:    "Good Risk Profile",
			Detail:   fmt.Sprintf("Risk Score: %d%% (Acceptable)", risk),
			Positive: true,
		})
	default:
		factors = append(factors, Factor{
			Icon:     "⚠",
			Title:    "Higher Risk",
			Detail:   fmt.Sprintf("Risk Score: %d%%", risk),
			Positive: false,
		})
	}

	if f.Income > 0 && f.LoanAmount > 0 {
		emi := float64(f.LoanAmount) * emiFactor
		ratio := emi / float64(f.Income) * 100

		if ratio < 40 {
			factors = append(factors, Factor{
				Icon:     "✓",
				Title:    "Affordable EMI",
				Detail:   fmt.Sprintf("EMI is %.1f%% of income", ratio),
				Positive: true,
			})
		} else {
			factors = append(factors, Factor{
				Icon:     "⚠",
				Title:    "High EMI Burden",
				Detail:   fmt.Sprintf("EMI would be %.1f%% of income", ratio),
				Positive: false,
			})
		}
	}

	if f.EmploymentDuration >= 2 {
		factors = append(factors, Factor{
			Icon:     "✓",
			Title:    "Stable Employment",
			Detail:   fmt.Sprintf("%d years - Good track record", f.EmploymentDuration),
			Positive: true,
		})
	}

	return factors
}
