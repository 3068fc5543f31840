// Package processor orchestrates the intake pipeline: chat turns,
// eligibility checks, document uploads and the final decision.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/loanpilot/loanpilot/internal/audit"
	"github.com/loanpilot/loanpilot/internal/cache"
	"github.com/loanpilot/loanpilot/internal/decision"
	"github.com/loanpilot/loanpilot/internal/eligibility"
	"github.com/loanpilot/loanpilot/internal/events"
	"github.com/loanpilot/loanpilot/internal/extractor"
	"github.com/loanpilot/loanpilot/internal/flow"
	"github.com/loanpilot/loanpilot/internal/session"
	"github.com/loanpilot/loanpilot/internal/verify"
)

// Latency is the fixed artificial delay applied to the eligibility and
// decision requests. There is no cancellation; callers apply their own
// timeouts.
type Latency struct {
	Eligibility time.Duration
	Decision    time.Duration
}

// Processor wires the intake components together. One Processor serves all
// sessions; per-session serialization happens on the session locks.
type Processor struct {
	store    session.Store
	verifier verify.Verifier
	cache    cache.Cache
	recorder audit.Recorder
	events   *events.Publisher
	latency  Latency
	logger   *slog.Logger
}

func New(store session.Store, verifier verify.Verifier, c cache.Cache, rec audit.Recorder, pub *events.Publisher, latency Latency, logger *slog.Logger) *Processor {
	return &Processor{
		store:    store,
		verifier: verifier,
		cache:    c,
		recorder: rec,
		events:   pub,
		latency:  latency,
		logger:   logger,
	}
}

// TurnResult is what one chat turn returns to the transport layer.
type TurnResult struct {
	SessionID string           `json:"session_id"`
	Message   string           `json:"message"`
	Stage     flow.Stage       `json:"stage"`
	Collected extractor.Fields `json:"collected_fields"`
}

// ProcessMessage runs one turn: extract candidate fields, merge them
// without overwriting collected answers, recompute the stage and pick the
// next prompt. Chat is a write path: unknown sessions are created.
func (p *Processor) ProcessMessage(ctx context.Context, sessionID, message string) (TurnResult, error) {
	sess := p.store.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	sess.Messages = append(sess.Messages, session.Message{Role: "user", Content: message})

	extracted := extractor.Extract(message)
	sess.Flow.Merge(extracted, flow.PreserveExisting)

	reply := sess.Flow.Respond()
	sess.Messages = append(sess.Messages, session.Message{Role: "assistant", Content: reply})

	p.logger.Info("turn processed",
		"session_id", sessionID,
		"stage", sess.Flow.Stage,
		"missing", sess.Flow.MissingFields(),
	)

	return TurnResult{
		SessionID: sessionID,
		Message:   reply,
		Stage:     sess.Flow.Stage,
		Collected: sess.Flow.Collected,
	}, nil
}

// CheckEligibility scores the session's collected fields and stores the
// result on the session, replacing any previous one. Identical field sets
// always score identically, so results are memoised by field fingerprint.
func (p *Processor) CheckEligibility(ctx context.Context, sessionID string) (eligibility.Result, error) {
	sess, err := p.store.Get(sessionID)
	if err != nil {
		return eligibility.Result{}, err
	}
	sess.Lock()
	defer sess.Unlock()

	if p.latency.Eligibility > 0 {
		time.Sleep(p.latency.Eligibility)
	}

	res, ok := p.cachedResult(sess.Flow.Collected)
	if !ok {
		res = eligibility.Calculate(sess.Flow.Collected)
		p.cacheResult(sess.Flow.Collected, res)
	}
	sess.Eligibility = &res

	if err := p.recorder.RecordEligibility(ctx, sessionID, res); err != nil {
		p.logger.Error("eligibility audit failed", "session_id", sessionID, "error", err)
	}
	if err := p.events.Publish(events.SubjectEligibilityComputed, map[string]any{
		"session_id": sessionID,
		"eligible":   res.Eligible,
		"risk_score": res.RiskScore,
	}); err != nil {
		p.logger.Warn("publish eligibility event failed", "error", err)
	}

	p.logger.Info("eligibility computed",
		"session_id", sessionID,
		"eligible", res.Eligible,
		"risk_score", res.RiskScore,
	)
	return res, nil
}

// UploadDocument verifies one uploaded document and appends the record to
// the session. Upload is a write path: unknown sessions are created.
func (p *Processor) UploadDocument(ctx context.Context, sessionID, filename, docType string) (verify.Record, error) {
	sess := p.store.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	rec := p.verifier.Verify(ctx, filename, docType)
	sess.Documents = append(sess.Documents, rec)

	if err := p.events.Publish(events.SubjectDocumentVerified, map[string]any{
		"session_id": sessionID,
		"type":       rec.Type,
		"verified":   rec.Verified,
	}); err != nil {
		p.logger.Warn("publish document event failed", "error", err)
	}

	p.logger.Info("document processed",
		"session_id", sessionID,
		"type", docType,
		"verified", rec.Verified,
	)
	return rec, nil
}

// Decide composes the final decision from the stored eligibility result and
// the session's document count. A session that never ran an eligibility
// check decides against the zero result, which rejects.
func (p *Processor) Decide(ctx context.Context, sessionID string) (decision.Decision, error) {
	sess, err := p.store.Get(sessionID)
	if err != nil {
		return decision.Decision{}, err
	}
	sess.Lock()
	defer sess.Unlock()

	if p.latency.Decision > 0 {
		time.Sleep(p.latency.Decision)
	}

	var elig eligibility.Result
	if sess.Eligibility != nil {
		elig = *sess.Eligibility
	}
	dec := decision.Compose(elig, len(sess.Documents))

	if err := p.recorder.RecordDecision(ctx, sessionID, dec); err != nil {
		p.logger.Error("decision audit failed", "session_id", sessionID, "error", err)
	}
	if err := p.events.Publish(events.SubjectDecisionMade, map[string]any{
		"session_id": sessionID,
		"status":     string(dec.Status),
	}); err != nil {
		p.logger.Warn("publish decision event failed", "error", err)
	}

	p.logger.Info("decision composed",
		"session_id", sessionID,
		"status", dec.Status,
		"documents", len(sess.Documents),
	)
	return dec, nil
}

func (p *Processor) cachedResult(f extractor.Fields) (eligibility.Result, bool) {
	raw, ok := p.cache.Get(cacheKey(f))
	if !ok {
		return eligibility.Result{}, false
	}
	var res eligibility.Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		return eligibility.Result{}, false
	}
	return res, true
}

func (p *Processor) cacheResult(f extractor.Fields, res eligibility.Result) {
	raw, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := p.cache.Set(cacheKey(f), string(raw)); err != nil {
		p.logger.Warn("eligibility cache write failed", "error", err)
	}
}

// cacheKey fingerprints the scored fields.
func cacheKey(f extractor.Fields) string {
	return fmt.Sprintf("eligibility:%d:%d:%s:%d", f.LoanAmount, f.Income, f.EmploymentType, f.EmploymentDuration)
}
