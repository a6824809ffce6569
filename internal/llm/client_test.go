package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteSendsPromptAndReturnsFirstChoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		assert.Equal(t, "user", body.Messages[1].Role)
		assert.Equal(t, "hello", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  hi there \n"}}]}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{BaseURL: server.URL + "/", APIKey: "test-key", Model: "gpt-4"})
	out, err := client.Complete(context.Background(), "be brief", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
	assert.Equal(t, llm.StateClosed, client.State())
}

func TestCompleteMapsAPIErrorToUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key"}}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{BaseURL: server.URL, APIKey: "bad", Model: "gpt-4"})
	_, err := client.Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{BaseURL: server.URL, APIKey: "k", Model: "m"})
	_, err := client.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, apperrors.ErrUpstream)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{
		BaseURL:             server.URL,
		APIKey:              "k",
		Model:               "m",
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	})

	for i := 0; i < 2; i++ {
		_, err := client.Complete(context.Background(), "s", "u")
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	}
	assert.Equal(t, llm.StateOpen, client.State())

	_, err := client.Complete(context.Background(), "s", "u")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "open breaker must not reach the server")
}

func TestBreakerIgnoresCanceledCalls(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{
		BaseURL:             server.URL,
		APIKey:              "k",
		Model:               "m",
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, err := client.Complete(ctx, "s", "u")
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, apperrors.ErrUpstream)
	}
	assert.Equal(t, llm.StateClosed, client.State())

	out, err := client.Complete(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
