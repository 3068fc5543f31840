// Package flow drives the intake conversation: which fields are still
// missing, what stage the session is in, and what to ask next.
package flow

import "github.com/loanpilot/loanpilot/internal/extractor"

// Stage is a named phase of the intake conversation, derived from which
// fields have been collected.
type Stage string

const (
	StageGreeting    Stage = "greeting"
	StageAmount      Stage = "amount"
	StageIncome      Stage = "income"
	StageEmployment  Stage = "employment"
	StageEligibility Stage = "eligibility"
	StageDocuments   Stage = "documents"
	StageDecision    Stage = "decision"
	StageComplete    Stage = "complete"
)

// MergePolicy controls what happens when an extracted field collides with
// one that is already collected.
type MergePolicy int

const (
	// PreserveExisting ignores extractor output for already-collected
	// fields. This is the turn-loop default: a later mention never clobbers
	// an answer the applicant already gave.
	PreserveExisting MergePolicy = iota
	// OverwriteExisting replaces collected values. Reserved for explicit
	// update requests; the turn loop never uses it.
	OverwriteExisting
)

// requiredFields is the fixed collection order reported to callers.
var requiredFields = []string{
	extractor.FieldLoanAmount,
	extractor.FieldIncome,
	extractor.FieldEmploymentType,
	extractor.FieldEmploymentDuration,
}

// Flow tracks the collected fields and current stage for one session. The
// stage is always recomputed from the fields after a merge; nothing else
// writes it.
type Flow struct {
	Collected extractor.Fields
	Stage     Stage
}

func New() *Flow {
	return &Flow{Stage: StageGreeting}
}

// Merge folds extracted fields into the collected set under the given
// policy, then recomputes the stage.
func (f *Flow) Merge(extracted extractor.Fields, policy MergePolicy) {
	overwrite := policy == OverwriteExisting

	if extracted.LoanAmount != 0 && (overwrite || f.Collected.LoanAmount == 0) {
		f.Collected.LoanAmount = extracted.LoanAmount
	}
	if extracted.Income != 0 && (overwrite || f.Collected.Income == 0) {
		f.Collected.Income = extracted.Income
	}
	if extracted.EmploymentType != "" && (overwrite || f.Collected.EmploymentType == "") {
		f.Collected.EmploymentType = extracted.EmploymentType
	}
	if extracted.EmploymentDuration != 0 && (overwrite || f.Collected.EmploymentDuration == 0) {
		f.Collected.EmploymentDuration = extracted.EmploymentDuration
	}

	f.Stage = f.NextStage()
}

// NextStage derives the stage from the collected fields alone. It never
// returns StageGreeting, and never advances past StageEligibility: the
// document and decision stages are driven by separate requests, not by the
// turn loop.
func (f *Flow) NextStage() Stage {
	switch {
	case f.Collected.LoanAmount == 0:
		return StageAmount
	case f.Collected.Income == 0:
		return StageIncome
	case f.Collected.EmploymentType == "" || f.Collected.EmploymentDuration == 0:
		return StageEmployment
	default:
		return StageEligibility
	}
}

// MissingFields returns the not-yet-collected required fields in collection
// order.
func (f *Flow) MissingFields() []string {
	var missing []string
	for _, name := range requiredFields {
		if !f.Collected.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
