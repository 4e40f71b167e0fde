package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/burstguard/internal/domain/activity"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, activity.ErrRateLimitExceeded):
		return &APIError{Code: "RATE_LIMITED", Message: err.Error(), RecoveryHint: "Wait before retrying", cause: err}
	case activity.IsStorageError(err):
		return &APIError{Code: "STORAGE_FAILED", Message: err.Error(), RecoveryHint: "Check the activity store", cause: err}
	default:
		return nil
	}
}
