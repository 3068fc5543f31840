package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/loanpilot/loanpilot/internal/letter"
	"github.com/loanpilot/loanpilot/internal/session"
)

// maxUploadBytes bounds the multipart form kept in memory per upload.
const maxUploadBytes = 10 << 20

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, KindValidation, "message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	result, err := s.proc.ProcessMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		writeError(w, http.StatusInternalServerError, KindInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) eligibility(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSessionRequest(w, r)
	if !ok {
		return
	}

	res, err := s.proc.CheckEligibility(r.Context(), req.SessionID)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "no file uploaded")
		return
	}
	file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, KindValidation, "no file selected")
		return
	}

	docType := r.FormValue("type")
	if docType == "" {
		docType = "unknown"
	}
	sessionID := r.FormValue("session_id")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	rec, err := s.proc.UploadDocument(r.Context(), sessionID, header.Filename, docType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, KindInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) decide(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSessionRequest(w, r)
	if !ok {
		return
	}

	dec, err := s.proc.Decide(r.Context(), req.SessionID)
	if err != nil {
		writeLookupError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dec)
}

func (s *Server) generateLetter(w http.ResponseWriter, r *http.Request) {
	var d letter.Details
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "invalid request body")
		return
	}

	var buf bytes.Buffer
	if err := letter.Render(&buf, d, time.Now()); err != nil {
		writeError(w, http.StatusInternalServerError, KindInternal, "failed to render letter")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="sanction_letter.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func decodeSessionRequest(w http.ResponseWriter, r *http.Request) (sessionRequest, bool) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "invalid request body")
		return req, false
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, KindValidation, "session_id is required")
		return req, false
	}
	return req, true
}

// writeLookupError maps read-path failures onto the error envelope.
func writeLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, KindSessionNotFound, "session not found")
		return
	}
	writeError(w, http.StatusInternalServerError, KindInternal, err.Error())
}
