package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// RawResponse is the unparsed textual payload returned by a provider call.
// Content is the model's message text; the caller owns normalization.
type RawResponse struct {
	Content    string
	StatusCode int
}

// Provider defines the interface for AI text-generation providers.
// Each implementation speaks its own vendor wire protocol but exposes
// the same contract: one prompt in, one raw textual payload out.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends the prompt and returns the raw response payload.
	// Failures are reported as *ProviderError; no automatic retry.
	Generate(ctx context.Context, prompt string) (*RawResponse, error)
}

// ErrorKind classifies provider failures
type ErrorKind string

const (
	// ErrAuthRejected covers 401/403 responses
	ErrAuthRejected ErrorKind = "auth_rejected"
	// ErrRateLimited covers 429 responses
	ErrRateLimited ErrorKind = "rate_limited"
	// ErrTransport covers network failures and 5xx responses
	ErrTransport ErrorKind = "transport"
	// ErrMalformedEnvelope means the vendor response envelope could not be decoded
	ErrMalformedEnvelope ErrorKind = "malformed_envelope"
	// ErrTimeout covers network-level timeouts
	ErrTimeout ErrorKind = "timeout"
)

// ProviderError describes a failed provider call
type ProviderError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Provider, e.message())
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) message() string {
	switch e.Kind {
	case ErrAuthRejected:
		return "authentication failed, check your API key"
	case ErrRateLimited:
		return "rate limit exceeded, try again later"
	case ErrTimeout:
		return "request timed out"
	case ErrMalformedEnvelope:
		return "unexpected response envelope"
	default:
		return "request failed"
	}
}

// statusError classifies a non-2xx HTTP status into a ProviderError
func statusError(provider string, statusCode int) *ProviderError {
	kind := ErrTransport
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		kind = ErrAuthRejected
	case statusCode == http.StatusTooManyRequests:
		kind = ErrRateLimited
	}
	return &ProviderError{Kind: kind, Provider: provider, StatusCode: statusCode}
}

// transportError classifies a request-level failure into a ProviderError
func transportError(provider string, err error) *ProviderError {
	kind := ErrTransport
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = ErrTimeout
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrTimeout
	}
	return &ProviderError{Kind: kind, Provider: provider, Err: err}
}
