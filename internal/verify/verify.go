// Package verify models the document verification step. The default
// implementation is a stub that accepts every known document type; real
// verification sits behind the Verifier interface so the decision pipeline
// never depends on the stub's behaviour.
package verify

import (
	"context"
	"time"
)

// Known document types.
const (
	TypeAadhaar = "aadhaar"
	TypePAN     = "pan"
	TypeSalary  = "salary"
)

// Record is the outcome of verifying one uploaded document. Records are
// append-only on the session and never mutated.
type Record struct {
	Type     string `json:"type,omitempty"`
	Verified bool   `json:"verified"`
	Message  string `json:"message"`
}

// Verifier checks a single uploaded document. Implementations must return
// a deterministic not-verified Record for unknown types rather than an
// error.
type Verifier interface {
	Verify(ctx context.Context, filename, docType string) Record
}

// Stub approves every known document type after a fixed artificial delay.
type Stub struct {
	delay time.Duration
}

func NewStub(delay time.Duration) *Stub {
	return &Stub{delay: delay}
}

var knownTypes = map[string]Record{
	TypeAadhaar: {Type: TypeAadhaar, Verified: true, Message: "Aadhaar Card verified successfully"},
	TypePAN:     {Type: TypePAN, Verified: true, Message: "PAN Card verified successfully"},
	TypeSalary:  {Type: TypeSalary, Verified: true, Message: "Salary Slip verified successfully"},
}

// Verify returns the canned verification for docType. The delay is fixed
// and not cancellable; callers apply their own timeouts.
func (s *Stub) Verify(ctx context.Context, filename, docType string) Record {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	if rec, ok := knownTypes[docType]; ok {
		return rec
	}
	return Record{Verified: false, Message: "Unknown document type"}
}
