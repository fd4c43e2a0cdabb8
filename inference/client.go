package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"tweet-server/confs"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 1 << 20

var (
	// ErrMisconfigured means a required credential is missing. Not retryable.
	ErrMisconfigured = errors.New("inference client misconfigured")
	// ErrUpstream wraps transport failures and non-2xx answers.
	ErrUpstream = errors.New("inference upstream failure")
)

// StatusError carries a non-2xx upstream answer.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference api status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrUpstream }

// ChatRequest is the body expected by the agent chat endpoint.
type ChatRequest struct {
	UserID    string `json:"user_id"`
	AgentID   string `json:"agent_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatResponse is a successful upstream answer.
type ChatResponse struct {
	StatusCode int
	Body       []byte
}

// Client talks to the external inference API.
type Client struct {
	cfg    confs.InferenceConfig
	client *http.Client
}

// NewClient builds a client; a nil httpClient gets one with cfg.Timeout.
func NewClient(cfg confs.InferenceConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if cfg.URL == "" {
		cfg.URL = confs.DefaultInferenceURL
	}
	return &Client{cfg: cfg, client: httpClient}
}

// Validate reports missing credentials as ErrMisconfigured.
func (c *Client) Validate() error {
	if missing := c.cfg.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrMisconfigured, missing)
	}
	return nil
}

// Chat sends one message and returns the raw 2xx answer. No retries.
func (c *Client) Chat(ctx context.Context, message string) (*ChatResponse, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reqBody, err := json.Marshal(ChatRequest{
		UserID:    c.cfg.UserID,
		AgentID:   c.cfg.AgentID,
		SessionID: c.cfg.SessionID,
		Message:   message,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrUpstream, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.cfg.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &ChatResponse{StatusCode: resp.StatusCode, Body: body}, nil
}
