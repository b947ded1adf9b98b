package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	t.Parallel()

	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello from the model"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient(5 * time.Second)
	content, err := client.Complete(context.Background(), ChatConfig{
		BaseURL:     server.URL,
		APIKey:      "test-key",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   500,
	}, []ChatMessage{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	require.Equal(t, "hello from the model", content)
	require.Equal(t, "gpt-4o-mini", gotBody["model"])
	require.Equal(t, 0.7, gotBody["temperature"])
	require.Equal(t, float64(500), gotBody["max_tokens"])
}

func TestCompleteUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream broken"))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient(5 * time.Second)
	_, err := client.Complete(context.Background(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "k",
		Model:   "m",
	}, []ChatMessage{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestCompleteEmptyChoices(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAICompatibleClient(5 * time.Second)
	_, err := client.Complete(context.Background(), ChatConfig{
		BaseURL: server.URL,
		APIKey:  "k",
		Model:   "m",
	}, nil)

	require.Error(t, err)
}

func TestCompleteContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server detects the client disconnect and
		// cancels the request context; otherwise Close deadlocks.
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewOpenAICompatibleClient(5 * time.Second)
	_, err := client.Complete(ctx, ChatConfig{BaseURL: server.URL, APIKey: "k", Model: "m"}, nil)
	require.Error(t, err)
}
