package api

import (
	"encoding/json"
	"net/http"
)

// Error kinds reported in the error envelope. UnsupportedDocumentType is
// informational: uploads of unknown types still return a not-verified
// record rather than this error.
const (
	KindValidation      = "validation_error"
	KindSessionNotFound = "session_not_found"
	KindUnsupportedDoc  = "unsupported_document_type"
	KindInternal        = "internal_error"
)

type apiError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error apiError `json:"error"`
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: apiError{Kind: kind, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
