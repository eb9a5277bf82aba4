package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agentproxy-backend/internal/models"
	"agentproxy-backend/internal/services"
)

// stubColab lets handler tests script the service's answers.
type stubColab struct {
	configured bool
	result     json.RawMessage
	err        error
	status     models.StatusResult
}

func (s *stubColab) Configured() bool { return s.configured }

func (s *stubColab) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	return s.result, s.err
}

func (s *stubColab) CheckStatus(ctx context.Context) models.StatusResult {
	return s.status
}

// ─── Health Tests ───

func TestHealth_ReportsConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configured bool
	}{
		{"configured", true},
		{"unconfigured", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRelayHandler(&stubColab{configured: tc.configured})

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rr := httptest.NewRecorder()
			h.Health(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", rr.Code)
			}

			var resp models.HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Status != "ok" {
				t.Errorf("Expected status 'ok', got %q", resp.Status)
			}
			if resp.ColabURLConfigured != tc.configured {
				t.Errorf("Expected colab_url_configured=%v, got %v", tc.configured, resp.ColabURLConfigured)
			}
		})
	}
}

// ─── Generate Tests ───

func TestGenerate_InvalidBody(t *testing.T) {
	h := NewRelayHandler(&stubColab{configured: true})

	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestGenerate_Success(t *testing.T) {
	upstream := json.RawMessage(`{"text":"hello from colab"}`)
	h := NewRelayHandler(&stubColab{configured: true, result: upstream})

	body, _ := json.Marshal(models.PromptRequest{Prompt: "hi"})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Generate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if !bytes.Equal(rr.Body.Bytes(), upstream) {
		t.Errorf("Expected upstream body verbatim, got %s", rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			"not configured",
			&services.NotConfiguredError{Message: "COLAB_API_URL not set"},
			http.StatusServiceUnavailable,
			"NOT_CONFIGURED",
		},
		{
			"unreachable",
			&services.UnreachableError{Message: "Cannot connect to Colab model server"},
			http.StatusServiceUnavailable,
			"UPSTREAM_UNREACHABLE",
		},
		{
			"timeout",
			&services.TimeoutError{Message: "Model server timed out"},
			http.StatusGatewayTimeout,
			"UPSTREAM_TIMEOUT",
		},
		{
			"upstream 500 passed through",
			&services.UpstreamError{StatusCode: http.StatusInternalServerError, Message: "model crashed"},
			http.StatusInternalServerError,
			"UPSTREAM_ERROR",
		},
		{
			"upstream 422 passed through",
			&services.UpstreamError{StatusCode: http.StatusUnprocessableEntity, Message: "prompt rejected"},
			http.StatusUnprocessableEntity,
			"UPSTREAM_ERROR",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRelayHandler(&stubColab{configured: true, err: tc.err})

			body, _ := json.Marshal(models.PromptRequest{Prompt: "hi"})
			req := httptest.NewRequest(http.MethodPost, "/api/generate", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			h.Generate(rr, req)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
			if resp.Error.Message == "" {
				t.Error("Expected a non-empty message")
			}
		})
	}
}

// ─── ColabStatus Tests ───

func TestColabStatus_Always200(t *testing.T) {
	tests := []struct {
		name   string
		status models.StatusResult
	}{
		{"online", models.StatusResult{Online: true, Detail: json.RawMessage(`{"status":"ok"}`)}},
		{"offline", models.StatusResult{Online: false, Reason: "connection refused"}},
		{"not configured", models.StatusResult{Online: false, Reason: "COLAB_API_URL not configured"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewRelayHandler(&stubColab{status: tc.status})

			req := httptest.NewRequest(http.MethodGet, "/api/colab-status", nil)
			rr := httptest.NewRecorder()
			h.ColabStatus(rr, req)

			if rr.Code != http.StatusOK {
				t.Fatalf("Expected status 200 regardless of reachability, got %d", rr.Code)
			}

			var resp models.StatusResult
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Online != tc.status.Online {
				t.Errorf("Expected online=%v, got %v", tc.status.Online, resp.Online)
			}
			if !tc.status.Online && resp.Reason == "" {
				t.Error("Expected a non-empty reason when offline")
			}
		})
	}
}

// ─── Error Envelope Tests ───

func TestErrorResp_CarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("UPSTREAM_ERROR", "boom", req)
	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request_id 'req-123', got %q", resp.Error.RequestID)
	}
}
