package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIGenerate_Success(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq openAIRequest

	srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"commit_type\":\"feat\"}"},"finish_reason":"stop"}]}`))
	})

	p := NewOpenAIProvider("test-key", "gpt-4o", srv.URL, 2000)
	resp, err := p.Generate(context.Background(), "the prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"commit_type":"feat"}`, resp.Content)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	assert.Equal(t, 2000, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "the prompt", gotReq.Messages[1].Content)
	require.NotNil(t, gotReq.ResponseFormat)
	assert.Equal(t, "json_object", gotReq.ResponseFormat.Type)
}

func TestOpenAIGenerate_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		kind   ErrorKind
	}{
		{http.StatusUnauthorized, ErrAuthRejected},
		{http.StatusForbidden, ErrAuthRejected},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrTransport},
		{http.StatusBadGateway, ErrTransport},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			p := NewOpenAIProvider("key", "gpt-4o", srv.URL, 2000)
			resp, err := p.Generate(context.Background(), "prompt")

			assert.Nil(t, resp)
			var provErr *ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, tt.kind, provErr.Kind)
			assert.Equal(t, tt.status, provErr.StatusCode)
			assert.Equal(t, "openai", provErr.Provider)
		})
	}
}

func TestOpenAIGenerate_MalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"no choices", `{"choices":[]}`},
		{"null content", `{"choices":[{"message":{"content":null},"finish_reason":"stop"}]}`},
		{"content filter", `{"choices":[{"message":{"content":"blocked"},"finish_reason":"content_filter"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			p := NewOpenAIProvider("key", "gpt-4o", srv.URL, 2000)
			resp, err := p.Generate(context.Background(), "prompt")

			assert.Nil(t, resp)
			var provErr *ProviderError
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, ErrMalformedEnvelope, provErr.Kind)
		})
	}
}

func TestOpenAIGenerate_SSEFallback(t *testing.T) {
	body := "data: {\"choices\":[{\"delta\":{\"content\":\"{\\\"commit\"}}]}\n\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"_type\\\":\\\"feat\\\"}\"}}]}\n\n" +
		"data: [DONE]\n"

	srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte(body))
	})

	p := NewOpenAIProvider("key", "gpt-4o", srv.URL, 2000)
	resp, err := p.Generate(context.Background(), "prompt")

	require.NoError(t, err)
	assert.Equal(t, `{"commit_type":"feat"}`, resp.Content)
}

func TestOpenAIGenerate_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := NewOpenAIProvider("key", "gpt-4o", url, 2000)
	resp, err := p.Generate(context.Background(), "prompt")

	assert.Nil(t, resp)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, ErrTransport, provErr.Kind)
}

func TestOpenAIGenerate_ContextCancelled(t *testing.T) {
	srv := openAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewOpenAIProvider("key", "gpt-4o", srv.URL, 2000)
	resp, err := p.Generate(ctx, "prompt")

	assert.Nil(t, resp)
	var provErr *ProviderError
	require.ErrorAs(t, err, &provErr)
}

func TestParseSSEContent(t *testing.T) {
	t.Run("plain json is not sse", func(t *testing.T) {
		_, ok := parseSSEContent(`{"choices":[]}`)
		assert.False(t, ok)
	})

	t.Run("sse without content", func(t *testing.T) {
		_, ok := parseSSEContent("data: [DONE]\n")
		assert.False(t, ok)
	})

	t.Run("chunks are concatenated in order", func(t *testing.T) {
		body := "data: {\"choices\":[{\"delta\":{\"content\":\"ab\"}}]}\n" +
			"data: {\"choices\":[{\"delta\":{\"content\":\"cd\"}}]}\n" +
			"data: [DONE]\n"
		got, ok := parseSSEContent(body)
		require.True(t, ok)
		assert.Equal(t, "abcd", got)
	})
}
