// Package session holds per-conversation state and the store abstraction
// that owns it.
package session

import (
	"sync"

	"github.com/loanpilot/loanpilot/internal/eligibility"
	"github.com/loanpilot/loanpilot/internal/flow"
	"github.com/loanpilot/loanpilot/internal/verify"
)

// Message is one exchanged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the full state of one intake conversation. All access must be
// bracketed by Lock/Unlock: work on a session is serialized, while
// different sessions proceed in parallel.
type Session struct {
	mu sync.Mutex

	ID          string
	Flow        *flow.Flow
	Messages    []Message
	Documents   []verify.Record
	Eligibility *eligibility.Result
}

func newSession(id string) *Session {
	return &Session{ID: id, Flow: flow.New()}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }
