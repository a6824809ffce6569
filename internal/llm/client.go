// Package llm provides a client for OpenAI-compatible chat completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/sony/gobreaker"
)

// Breaker states reported by Client.State.
const (
	StateClosed   = "closed"
	StateOpen     = "open"
	StateHalfOpen = "half_open"
)

// Completer answers a single system+user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
	State() string
}

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	// ConsecutiveFailures trips the breaker. Defaults to 5.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again. Defaults to 30s.
	OpenTimeout time.Duration
}

// Client calls the /chat/completions endpoint behind a circuit breaker.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClient creates a new chat completion client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	threshold := cfg.ConsecutiveFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// a caller giving up says nothing about the upstream's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
	}
}

var _ Completer = (*Client)(nil)

// State reports the breaker state.
func (c *Client) State() string {
	switch c.breaker.State() {
	case gobreaker.StateOpen:
		return StateOpen
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	default:
		return StateClosed
	}
}

// Complete sends a system and a user message and returns the first choice's content.
// Transport and API failures are returned as upstream errors; a rejected call while the
// breaker is open is returned as an unavailable error.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.do(ctx, system, user)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", apperrors.NewAppError(apperrors.ErrUnavailable, apperrors.KindServiceUnavailable,
				"language model is temporarily unavailable", err)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *Client) do(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", upstream("language model request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", upstream("failed to read language model response", err)
	}

	var parsed chatResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decodeErr == nil && parsed.Error != nil && parsed.Error.Message != "" {
			msg = fmt.Sprintf("%s: %s", resp.Status, parsed.Error.Message)
		}
		return "", upstream("language model returned an error", errors.New(msg))
	}
	if decodeErr != nil {
		return "", upstream("failed to decode language model response", decodeErr)
	}
	if len(parsed.Choices) == 0 {
		return "", upstream("language model returned no choices", nil)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func upstream(reason string, err error) error {
	return apperrors.NewAppError(apperrors.ErrUpstream, apperrors.KindUpstream, reason, err)
}
