package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/openai-status/internal/domain/probes"
)

func chatRequest(endpoint, model string) probes.ChatRequest {
	return probes.ChatRequest{
		Endpoint:   endpoint,
		Key:        "secret-key",
		Deployment: "chat-gpt4",
		Model:      model,
		Messages:   probes.DefaultConversation().Messages(),
		Params:     probes.DefaultParams(),
	}
}

func TestCompleteCallsAzureDeployment(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/openai/deployments/chat-gpt4/chat/completions", r.URL.Path)
		assert.Equal(t, "2024-02-01", r.URL.Query().Get("api-version"))
		assert.Equal(t, "secret-key", r.Header.Get("api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"I'm doing well."}}]}`))
	}))
	defer srv.Close()

	c := NewClient("2024-02-01", srv.Client())
	out, err := c.Complete(context.Background(), chatRequest(srv.URL+"/", "gpt-4"))
	require.NoError(t, err)
	assert.Equal(t, "I'm doing well.", out)

	assert.EqualValues(t, 800, body["max_tokens"])
	assert.InDelta(t, 0.7, body["temperature"], 0.0001)
	assert.InDelta(t, 0.95, body["top_p"], 0.0001)
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 2)
}

func TestCompleteReasoningModelUsesMaxCompletionTokens(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	_, err := NewClient("", srv.Client()).Complete(context.Background(), chatRequest(srv.URL, "o3-mini"))
	require.NoError(t, err)
	assert.EqualValues(t, 800, body["max_completion_tokens"])
	assert.NotContains(t, body, "max_tokens")
	assert.NotContains(t, body, "temperature")
}

func TestCompleteQuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":"429","message":"Requests to the ChatCompletions_Create Operation have exceeded call rate limit"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("", srv.Client()).Complete(context.Background(), chatRequest(srv.URL, "gpt-4"))
	assert.ErrorIs(t, err, probes.ErrQuotaExceeded)
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer srv.Close()

	_, err := NewClient("", srv.Client()).Complete(context.Background(), chatRequest(srv.URL, "gpt-4"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, probes.ErrQuotaExceeded)
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient("", srv.Client()).Complete(context.Background(), chatRequest(srv.URL, "gpt-4"))
	assert.EqualError(t, err, "chat completion returned no choices")
}

func TestNewClientDefaultVersion(t *testing.T) {
	assert.Equal(t, DefaultAPIVersion, NewClient("", nil).APIVersion)
}
