package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loanpilot/loanpilot/internal/decision"
	"github.com/loanpilot/loanpilot/internal/eligibility"
)

// Pg writes the audit trail to Postgres. Tables:
//
//	eligibility_audit(id uuid, session_id text, eligible bool,
//	    approved_amount bigint, interest_rate numeric(5,2),
//	    max_eligible bigint, risk_score int, created_at timestamptz)
//	decision_audit(id uuid, session_id text, status text,
//	    decision text, processing_time text, created_at timestamptz)
type Pg struct {
	pool *pgxpool.Pool
}

func NewPg(ctx context.Context, databaseURL string) (*Pg, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Pg{pool: pool}, nil
}

func (p *Pg) Close() {
	p.pool.Close()
}

func (p *Pg) RecordEligibility(ctx context.Context, sessionID string, res eligibility.Result) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO eligibility_audit
			(id, session_id, eligible, approved_amount, interest_rate, max_eligible, risk_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		uuid.New(), sessionID, res.Eligible, res.ApprovedAmount, res.InterestRate, res.MaxEligible, res.RiskScore,
	)
	if err != nil {
		return fmt.Errorf("insert eligibility audit: %w", err)
	}
	return nil
}

func (p *Pg) RecordDecision(ctx context.Context, sessionID string, dec decision.Decision) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO decision_audit
			(id, session_id, status, decision, processing_time, created_at)
		VALUES ($1, $2, $3, $4, $5, now())`,
		uuid.New(), sessionID, string(dec.Status), dec.Decision, dec.ProcessingTime,
	)
	if err != nil {
		return fmt.Errorf("insert decision audit: %w", err)
	}
	return nil
}
