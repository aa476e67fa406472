package llm

import (
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
	// AnthropicDefaultBaseURL is the default API base URL for Anthropic
	AnthropicDefaultBaseURL = "https://api.anthropic.com"

	// anthropicVersion is the API version header required by the messages endpoint
	anthropicVersion = "2023-06-01"
)

// AnthropicProvider implements Provider over the Anthropic messages API
type AnthropicProvider struct {
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey, model, baseURL string, maxTokens int) *AnthropicProvider {
	if baseURL == "" {
		baseURL = AnthropicDefaultBaseURL
	}
	return &AnthropicProvider{
		apiKey:    apiKey,
		model:     model,
		baseURL:   strings.TrimRight(baseURL, "/"),
		maxTokens: maxTokens,
		client:    &http.Client{},
	}
}

// Name returns the provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Text string `json:"text"`
}

// Generate sends the prompt to the messages endpoint and returns the raw
// text of the first content block.
func (p *AnthropicProvider) Generate(ctx context.Context, prompt string) (*RawResponse, error) {
	reqBody := anthropicRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []anthropicMessage{
			{
				Role:    "user",
				Content: prompt + "\n\nPlease respond with only the JSON object, no other text.",
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ProviderError{Kind: ErrTransport, Provider: p.Name(), Err: err}
	}

	url := p.baseURL + "/v1/messages"
	log.DebugRequest(http.MethodPost, url, reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Kind: ErrTransport, Provider: p.Name(), Err: err}
	}
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
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
	log.DebugRaw("anthropic raw response", string(body))

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(p.Name(), resp.StatusCode)
	}

	var envelope anthropicResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProviderError{Kind: ErrMalformedEnvelope, Provider: p.Name(), StatusCode: resp.StatusCode, Err: err}
	}
	if len(envelope.Content) == 0 {
		return nil, &ProviderError{Kind: ErrMalformedEnvelope, Provider: p.Name(), StatusCode: resp.StatusCode,
			Err: fmt.Errorf("response contains no content blocks")}
	}

	return &RawResponse{Content: envelope.Content[0].Text, StatusCode: resp.StatusCode}, nil
}
