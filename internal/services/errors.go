package services

import "fmt"

// Error types returned by ColabService.Generate; each maps to its own
// client-facing status in the handlers.

type NotConfiguredError struct{ Message string }

func (e *NotConfiguredError) Error() string { return e.Message }

type UnreachableError struct{ Message string }

func (e *UnreachableError) Error() string { return e.Message }

type TimeoutError struct{ Message string }

func (e *TimeoutError) Error() string { return e.Message }

// UpstreamError carries the model server's own status code through unchanged.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}
