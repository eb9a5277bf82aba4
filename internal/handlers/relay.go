package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"agentproxy-backend/internal/models"
	"agentproxy-backend/internal/services"
)

// colabService is what the relay handlers need from the Colab service.
type colabService interface {
	Configured() bool
	Generate(ctx context.Context, prompt string) (json.RawMessage, error)
	CheckStatus(ctx context.Context) models.StatusResult
}

type RelayHandler struct {
	colab colabService
}

func NewRelayHandler(colab colabService) *RelayHandler {
	return &RelayHandler{colab: colab}
}

// Health reports process liveness and whether an upstream URL is configured.
func (h *RelayHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:             "ok",
		ColabURLConfigured: h.colab.Configured(),
	})
}

// Generate forwards the prompt to the model server and returns its JSON
// response unmodified. The prompt itself is not validated here; the model
// server owns prompt semantics.
func (h *RelayHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	result, err := h.colab.Generate(r.Context(), req.Prompt)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// Pass the upstream body through verbatim.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}

// ColabStatus returns the reachability probe result. Always 200: an offline
// upstream is a normal answer for this endpoint, not an error.
func (h *RelayHandler) ColabStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.colab.CheckStatus(r.Context()))
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.NotConfiguredError:
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NOT_CONFIGURED", e.Message, r))
	case *services.UnreachableError:
		writeJSON(w, http.StatusServiceUnavailable, errorResp("UPSTREAM_UNREACHABLE", e.Message, r))
	case *services.TimeoutError:
		writeJSON(w, http.StatusGatewayTimeout, errorResp("UPSTREAM_TIMEOUT", e.Message, r))
	case *services.UpstreamError:
		writeJSON(w, e.StatusCode, errorResp("UPSTREAM_ERROR", e.Message, r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
