package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultModel is the completion model used when a request names none
	DefaultModel = "mistral-small"

	// DefaultMaxTokens bounds the output of a generation call
	DefaultMaxTokens = 300

	// DefaultTemperature is the sampling temperature used when unset
	DefaultTemperature = 0.3

	// DefaultTimeout bounds each completion call
	DefaultTimeout = 60 * time.Second
)

// Config holds everything a Client needs. It is constructed once at
// process start and passed in explicitly; there is no global registry of
// clients keyed by model name.
type Config struct {
	Endpoint string // base URL, e.g. https://api.mistral.ai
	APIKey   string
	Model    string        // default model id
	Timeout  time.Duration // per-call budget when the context carries none
}

// GenerationRequest describes a single completion call
type GenerationRequest struct {
	Prompt      string
	Model       string // empty means the client default
	MaxTokens   int
	Temperature float64
}

// Client is a stateless wrapper around a remote chat-completion endpoint.
// It maps transport and auth failures to the typed errors in this package
// and performs no retries or caching of its own.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a generation client from a resolved configuration
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Model returns the client's default model id
func (c *Client) Model() string {
	return c.cfg.Model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate submits a prompt and returns the completion text. The call
// blocks until the provider answers, the context is done, or the client
// timeout fires; timeouts surface as *TransportError.
func (c *Client) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}

	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	body, err := json.Marshal(chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: req.Prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.cfg.Endpoint, "/") + "/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", ErrAuthentication
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %q", ErrModelNotFound, model)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &TransportError{Err: fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(payload))}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
