package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"agentproxy-backend/internal/models"
)

// ColabService relays generation requests to the Colab-hosted model server
// and probes its reachability. The base URL is fixed at construction; an
// empty value means the upstream was never configured and every call
// degrades without touching the network.
type ColabService struct {
	baseURL         string
	generateTimeout time.Duration
	statusTimeout   time.Duration
}

func NewColabService(baseURL string, generateTimeout, statusTimeout time.Duration) *ColabService {
	return &ColabService{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		generateTimeout: generateTimeout,
		statusTimeout:   statusTimeout,
	}
}

// Configured reports whether an upstream base address was supplied.
func (s *ColabService) Configured() bool {
	return s.baseURL != ""
}

// Generate forwards the prompt to the model server and returns its response
// body verbatim. Generation can legitimately take minutes, so the timeout is
// long. Exactly one attempt is made; there are no retries.
func (s *ColabService) Generate(ctx context.Context, prompt string) (json.RawMessage, error) {
	if s.baseURL == "" {
		return nil, &NotConfiguredError{Message: "COLAB_API_URL not set. Please add it to your .env file."}
	}

	payload, err := json.Marshal(models.PromptRequest{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.generateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, &UnreachableError{Message: fmt.Sprintf("invalid Colab model server URL: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	// One scoped client per call so every exchange opens, uses, and releases
	// its own connection regardless of how the call exits.
	client := &http.Client{Timeout: s.generateTimeout}
	defer client.CloseIdleConnections()

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("model server returned status %d: %s", resp.StatusCode, excerpt(body)),
		}
	}

	return json.RawMessage(body), nil
}

// CheckStatus probes the model server's health endpoint. It never returns an
// error: every failure mode is folded into an offline result with a reason,
// because the frontend polls this and a failed poll must not abort anything.
func (s *ColabService) CheckStatus(ctx context.Context) models.StatusResult {
	if s.baseURL == "" {
		return models.StatusResult{Online: false, Reason: "COLAB_API_URL not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.statusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/health", nil)
	if err != nil {
		return models.StatusResult{Online: false, Reason: err.Error()}
	}

	client := &http.Client{Timeout: s.statusTimeout}
	defer client.CloseIdleConnections()

	resp, err := client.Do(req)
	if err != nil {
		return models.StatusResult{Online: false, Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.StatusResult{Online: false, Reason: err.Error()}
	}

	if !json.Valid(body) {
		return models.StatusResult{Online: false, Reason: fmt.Sprintf("malformed health response: %s", excerpt(body))}
	}

	return models.StatusResult{Online: true, Detail: body}
}

// classifyTransportError splits a failed round trip into the two cases the
// frontend cares about: the server took too long versus it cannot be reached
// at all (notebook not running, tunnel URL stale).
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "Model server timed out. Generation can take 1-3 minutes, please try again."}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Message: "Model server timed out. Generation can take 1-3 minutes, please try again."}
	}
	return &UnreachableError{Message: "Cannot connect to Colab model server. Make sure the Colab notebook is running."}
}

func excerpt(body []byte) string {
	const maxLen = 200
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
