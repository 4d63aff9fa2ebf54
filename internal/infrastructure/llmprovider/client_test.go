package llmprovider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personachat/server/internal/domain/llm"
)

func TestGenerateReply(t *testing.T) {
	var captured llm.ChatCompletionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{
			Choices: []llm.ChatCompletionChoice{
				{Message: llm.ChatMessage{Role: "assistant", Content: "haanji, bilkul"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "gemini-2.5-flash-lite",
		Timeout: 5 * time.Second,
	})

	reply, err := client.GenerateReply(context.Background(), "you are hitesh", []llm.ChatMessage{
		{Role: "user", Content: "chai?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "haanji, bilkul", reply)

	assert.Equal(t, "gemini-2.5-flash-lite", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "you are hitesh", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestGenerateReply_NoSystemPrompt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req llm.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{
			Choices: []llm.ChatCompletionChoice{
				{Message: llm.ChatMessage{Role: "assistant", Content: "ok"}},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"})

	_, err := client.GenerateReply(context.Background(), "", []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
}

func TestGenerateReply_UpstreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"})

	_, err := client.GenerateReply(context.Background(), "sys", []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGenerateReply_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(llm.ChatCompletionResponse{})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "m"})

	_, err := client.GenerateReply(context.Background(), "sys", []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerateReply_ConnectionRefused(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Model: "m", Timeout: time.Second})

	_, err := client.GenerateReply(context.Background(), "sys", []llm.ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
}
