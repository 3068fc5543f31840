// Package audit appends eligibility snapshots and final decisions to a
// durable trail. The Postgres recorder is optional; without DATABASE_URL
// the service runs with the no-op recorder and discards the trail.
package audit

import (
	"context"

	"github.com/loanpilot/loanpilot/internal/decision"
	"github.com/loanpilot/loanpilot/internal/eligibility"
)

// Recorder receives audit events. Recording failures must never fail the
// request being audited; callers log and continue.
type Recorder interface {
	RecordEligibility(ctx context.Context, sessionID string, res eligibility.Result) error
	RecordDecision(ctx context.Context, sessionID string, dec decision.Decision) error
	Close()
}

// Noop discards all audit events.
type Noop struct{}

func (Noop) RecordEligibility(context.Context, string, eligibility.Result) error { return nil }
func (Noop) RecordDecision(context.Context, string, decision.Decision) error     { return nil }
func (Noop) Close()                                                              {}
