package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nealxu/bicommit/internal/log"
)

const (
	// OpenAIDefaultBaseURL is the default API base URL for OpenAI
	OpenAIDefaultBaseURL = "https://api.openai.com/v1"
)

// OpenAIProvider implements Provider over the OpenAI chat completions API.
// Any OpenAI-compatible endpoint (proxies, local gateways) works through
// the base URL override.
type OpenAIProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey, model, baseURL string, maxTokens int) *OpenAIProvider {
	if baseURL == "" {
		baseURL = OpenAIDefaultBaseURL
	}
	return &OpenAIProvider{
		apiKey:    apiKey,
		model:     model,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxTokens: maxTokens,
		client:    &http.Client{},
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

type openAIRequest struct {
	Model          string          `json:"model"`
	Messages       []openAIMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
}

type openAIChoice struct {
	Message      openAIResponseMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

type openAIResponseMessage struct {
	Content *string `json:"content"`
}

const openAISystemPrompt = "You are a helpful assistant that generates git commit messages in JSON format. Reply with exactly one valid, minified JSON object."

// Generate sends the prompt to the chat completions endpoint and returns
// the raw message content.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (*RawResponse, error) {
	reqBody := openAIRequest{
		Model: p.model,
		Messages: []openAIMessage{
			{Role: "system", Content: openAISystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.7,
		MaxTokens:      p.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ProviderError{Kind: ErrTransport, Provider: p.Name(), Err: err}
	}

	url := p.baseURL + "/chat/completions"
	log.DebugRequest(http.MethodPost, url, reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Kind: ErrTransport, Provider: p.Name(), Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, transportError(p.Name(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(p.Name(), err)
	}

	log.DebugResponse(resp.StatusCode)
	log.DebugRaw("openai raw response", string(body))

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(p.Name(), resp.StatusCode)
	}

	// Some OpenAI-compatible proxies stream SSE chunks even for
	// non-streaming requests. Detect and reassemble before falling back
	// to the standard envelope.
	if content, ok := parseSSEContent(string(body)); ok {
		return &RawResponse{Content: content, StatusCode: resp.StatusCode}, nil
	}

	var envelope openAIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProviderError{Kind: ErrMalformedEnvelope, Provider: p.Name(), StatusCode: resp.StatusCode, Err: err}
	}
	if len(envelope.Choices) == 0 {
		return nil, &ProviderError{Kind: ErrMalformedEnvelope, Provider: p.Name(), StatusCode: resp.StatusCode,
			Err: fmt.Errorf("response contains no choices")}
	}

	choice := envelope.Choices[0]
	if choice.Message.Content == nil {
		return nil, &ProviderError{Kind: ErrMalformedEnvelope, Provider: p.Name(), StatusCode: resp.StatusCode,
			Err: fmt.Errorf("response content is null")}
	}
	if choice.FinishReason == "content_filter" {
		return nil, &ProviderError{Kind: ErrMalformedEnvelope, Provider: p.Name(), StatusCode: resp.StatusCode,
			Err: fmt.Errorf("response blocked by the provider's content filter")}
	}

	return &RawResponse{Content: *choice.Message.Content, StatusCode: resp.StatusCode}, nil
}

type sseChunk struct {
	Choices []struct {
		Delta struct {
			Content *string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// parseSSEContent reassembles content from an SSE-formatted response body.
// Returns false when the body is not SSE or carries no content.
func parseSSEContent(body string) (string, bool) {
	var content strings.Builder
	isStreaming := false

	scanner := bufio.NewScanner(strings.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		data, found := strings.CutPrefix(line, "data: ")
		if !found {
			continue
		}
		isStreaming = true
		if data == "[DONE]" {
			continue
		}

		var chunk sseChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			continue
		}
		for _, choice := range chunk.Choices {
			if choice.Delta.Content != nil {
				content.WriteString(*choice.Delta.Content)
			}
		}
	}

	if !isStreaming || content.Len() == 0 {
		return "", false
	}
	return content.String(), true
}
