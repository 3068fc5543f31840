package extractor

// EmploymentType is the applicant's declared employment category.
type EmploymentType string

const (
	Salaried     EmploymentType = "salaried"
	SelfEmployed EmploymentType = "self-employed"
)

// Field names as they appear on the wire and in prompts.
const (
	FieldLoanAmount         = "loan_amount"
	FieldIncome             = "income"
	FieldEmploymentType     = "employment_type"
	FieldEmploymentDuration = "employment_duration"
)

// Fields holds the structured slots collected over the conversation.
// The zero value of each field means "not collected yet".
type Fields struct {
	LoanAmount         int            `json:"loan_amount,omitempty"`
	Income             int            `json:"income,omitempty"`
	EmploymentType     EmploymentType `json:"employment_type,omitempty"`
	EmploymentDuration int            `json:"employment_duration,omitempty"`
}

// Has reports whether the named field has been collected.
func (f Fields) Has(name string) bool {
	switch name {
	case FieldLoanAmount:
		return f.LoanAmount != 0
	case FieldIncome:
		return f.Income != 0
	case FieldEmploymentType:
		return f.EmploymentType != ""
	case FieldEmploymentDuration:
		return f.EmploymentDuration != 0
	}
	return false
}
