package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpggio/burstguard/internal/domain/activity"
)

// Error codes.
const (
	CodeRateLimited   = "RATE_LIMITED"
	CodeStorageFailed = "STORAGE_FAILED"
	CodeInternal      = "INTERNAL"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// RecordResponse is returned by POST /activity/{identity}.
type RecordResponse struct {
	Outcome   activity.Outcome   `json:"outcome"`
	Identity  string             `json:"identity"`
	Timestamp activity.Timestamp `json:"timestamp,omitempty"`
}

// HistoryResponse is returned by GET /activity/{identity}.
type HistoryResponse struct {
	Identity   string               `json:"identity"`
	Timestamps []activity.Timestamp `json:"timestamps"`
	Suspicious bool                 `json:"suspicious"`
}

// WriteError writes err with the status its domain error maps to.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := http.StatusInternalServerError, CodeInternal
	switch {
	case errors.Is(err, activity.ErrRateLimitExceeded):
		status, code = http.StatusTooManyRequests, CodeRateLimited
	case activity.IsStorageError(err):
		status, code = http.StatusServiceUnavailable, CodeStorageFailed
	}
	requestID, _ := RequestIDFromContext(r.Context())
	writeJSON(w, status, ErrorResponse{Code: code, Message: err.Error(), RequestID: requestID})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
