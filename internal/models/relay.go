package models

import "encoding/json"

// PromptRequest is the body of POST /api/generate.
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status             string `json:"status"`
	ColabURLConfigured bool   `json:"colab_url_configured"`
}

// StatusResult reports whether the Colab model server is reachable.
// Detail carries the upstream /health payload verbatim when online;
// Reason describes the failure when offline.
type StatusResult struct {
	Online bool            `json:"online"`
	Detail json.RawMessage `json:"detail,omitempty"`
	Reason string          `json:"reason,omitempty"`
}

// API Error response
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
