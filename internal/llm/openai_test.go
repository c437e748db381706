package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAI_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"options\":[]}"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAI("test-key", server.URL, 0)
	text, err := client.Complete(context.Background(), CompletionRequest{
		Model: "gpt-4o",
		Messages: []Message{
			{Role: RoleSystem, Content: "sys"},
			{Role: RoleUser, Content: "hi"},
		},
		JSONResponse: true,
		Temperature:  0.7,
	})
	require.NoError(t, err)

	assert.Equal(t, `{"options":[]}`, text)
	assert.Equal(t, "gpt-4o", got.Model)
	assert.Equal(t, 0.7, got.Temperature)
	assert.Equal(t, map[string]string{"type": "json_object"}, got.ResponseFormat)
	assert.Len(t, got.Messages, 2)
	assert.Zero(t, got.MaxTokens)
}

func TestOpenAI_PlainText(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		w.Write([]byte(`{"choices":[{"message":{"content":"summary"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAI("k", server.URL, 0)
	text, err := client.Complete(context.Background(), CompletionRequest{Model: "mini", MaxTokens: 500})
	require.NoError(t, err)

	assert.Equal(t, "summary", text)
	assert.NotContains(t, raw, "response_format")
	assert.Equal(t, float64(500), raw["max_tokens"])
}

func TestOpenAI_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	text, err := NewOpenAI("k", server.URL, 0).Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestOpenAI_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	_, err := NewOpenAI("k", server.URL, 0).Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "502")
}

func TestOpenAI_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewOpenAI("k", server.URL, 0).Complete(ctx, CompletionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, classify(ctx, nil))
	assert.ErrorIs(t, classify(ctx, context.DeadlineExceeded), ErrTimeout)
	assert.ErrorIs(t, classify(ctx, errors.New("connection refused")), ErrUnavailable)

	wrapped := classify(ctx, ErrTimeout)
	assert.Equal(t, ErrTimeout, wrapped)
}

func TestSplit(t *testing.T) {
	system, turns := split([]Message{
		{Role: RoleSystem, Content: "a"},
		{Role: RoleUser, Content: "u"},
		{Role: RoleSystem, Content: "b"},
	})

	assert.Equal(t, "a\n\nb", system)
	assert.Equal(t, []Message{{Role: RoleUser, Content: "u"}}, turns)
}
