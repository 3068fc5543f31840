package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/loanpilot/loanpilot/internal/audit"
	"github.com/loanpilot/loanpilot/internal/cache"
	"github.com/loanpilot/loanpilot/internal/processor"
	"github.com/loanpilot/loanpilot/internal/session"
	"github.com/loanpilot/loanpilot/internal/verify"
)

func newTestServer() *Server {
	proc := processor.New(
		session.NewMemoryStore(),
		verify.NewStub(0),
		cache.NewMemory(),
		audit.Noop{},
		nil,
		processor.Latency{},
		slog.Default(),
	)
	return NewServer(8650, proc, []string{"*"})
}

func postJSON(t *testing.T, srv *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/intake/status", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["service"] != "loanpilot" {
		t.Errorf("expected service loanpilot, got %q", body["service"])
	}
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/chat", map[string]string{
		"session_id": "s1",
		"message":    "I want to borrow 5 lakhs",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Message   string `json:"message"`
		Stage     string `json:"stage"`
		Collected struct {
			LoanAmount int `json:"loan_amount"`
		} `json:"collected_fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Collected.LoanAmount != 500_000 {
		t.Errorf("loan_amount = %d, want 500000", body.Collected.LoanAmount)
	}
	if body.Stage != "income" {
		t.Errorf("stage = %q, want income", body.Stage)
	}
	if !strings.Contains(body.Message, "income") {
		t.Errorf("message = %q, want the income prompt", body.Message)
	}
}

func TestChatEndpoint_GeneratesSessionID(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/chat", map[string]string{"message": "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.SessionID == "" {
		t.Error("expected a generated session_id in the response")
	}
}

func TestChatEndpoint_RequiresMessage(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/chat", map[string]string{"session_id": "s1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var body struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error.Kind != KindValidation {
		t.Errorf("error kind = %q, want %q", body.Error.Kind, KindValidation)
	}
}

func TestEligibilityEndpoint_UnknownSession(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/eligibility", map[string]string{"session_id": "ghost"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var body struct {
		Error struct {
			Kind string `json:"kind"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error.Kind != KindSessionNotFound {
		t.Errorf("error kind = %q, want %q", body.Error.Kind, KindSessionNotFound)
	}
}

func TestUploadEndpoint(t *testing.T) {
	srv := newTestServer()

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "aadhaar.pdf")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("%PDF-1.4 fake"))
	mw.WriteField("type", "aadhaar")
	mw.WriteField("session_id", "s1")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rec struct {
		Type     string `json:"type"`
		Verified bool   `json:"verified"`
	}
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !rec.Verified || rec.Type != "aadhaar" {
		t.Errorf("record = %+v, want verified aadhaar", rec)
	}
}

func TestUploadEndpoint_UnknownTypeStillOK(t *testing.T) {
	srv := newTestServer()

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, _ := mw.CreateFormFile("file", "passport.pdf")
	fw.Write([]byte("data"))
	mw.WriteField("type", "passport")
	mw.WriteField("session_id", "s1")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown document type, got %d", w.Code)
	}

	var rec struct {
		Verified bool `json:"verified"`
	}
	if err := json.NewDecoder(w.Body).Decode(&rec); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if rec.Verified {
		t.Error("unknown document type must not verify")
	}
}

func TestUploadEndpoint_MissingFile(t *testing.T) {
	srv := newTestServer()

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	mw.WriteField("type", "aadhaar")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a file, got %d", w.Code)
	}
}

func TestDecisionEndpoint_FullFlow(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/chat", map[string]string{
		"session_id": "s1",
		"message":    "5 lakh, salary 50,000, salaried 4 years",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("chat failed: %d", w.Code)
	}

	if w := postJSON(t, srv, "/api/eligibility", map[string]string{"session_id": "s1"}); w.Code != http.StatusOK {
		t.Fatalf("eligibility failed: %d %s", w.Code, w.Body.String())
	}

	w = postJSON(t, srv, "/api/decision", map[string]string{"session_id": "s1"})
	if w.Code != http.StatusOK {
		t.Fatalf("decision failed: %d", w.Code)
	}

	var dec struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(w.Body).Decode(&dec); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Eligible but no documents uploaded yet.
	if dec.Status != "pending" {
		t.Errorf("status = %q, want pending", dec.Status)
	}
}

func TestGenerateLetterEndpoint(t *testing.T) {
	srv := newTestServer()

	w := postJSON(t, srv, "/api/generate-letter", map[string]any{
		"approved_amount": 500_000,
		"interest_rate":   10.5,
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q, want application/pdf", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("response body is not a PDF")
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
