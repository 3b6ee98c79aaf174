package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Andrna09/B2B-CHECK-IN/internal/domain"
)

// errorResponse is the JSON body for every non-2xx response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps a service-layer error onto the HTTP status and error
// code the API contract promises:
//
//	ErrNotFound       404 not_found       (missing and ineligible look alike)
//	ErrValidation     422 validation_error
//	ErrMissingReason  422 missing_reason
//	ErrPlateMismatch  422 plate_mismatch  (rejected before any commit)
//	ErrStaleState     409 stale_state     (another officer decided first)
//
// Anything else is an internal failure: 500 with a generic body, the real
// error stays in the server log.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{errorDetail{Code: "not_found", Message: "driver not found"}})
	case errors.Is(err, domain.ErrMissingReason):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "missing_reason", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrPlateMismatch):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "plate_mismatch", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
	case errors.Is(err, domain.ErrStaleState):
		writeJSON(w, http.StatusConflict, errorResponse{errorDetail{Code: "stale_state", Message: unwrapMessage(err)}})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{errorDetail{Code: "internal", Message: "internal server error"}})
	}
}

// requestError writes a 422 for a request rejected before reaching the
// service layer (missing or malformed body, bad path parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{errorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error. Services wrap as "service.Type.Method: <sentinel>[: detail]";
// only the part after the last call-site prefix is useful to a client.
// e.g. "service.GateService.Reject: validation error: officer is required"
// → "validation error: officer is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "service."); i >= 0 {
		if j := strings.Index(msg[i:], ": "); j >= 0 {
			return msg[i+j+2:]
		}
	}
	return msg
}
