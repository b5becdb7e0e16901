package provider

import (
	"fmt"
	"net/http"
)

// ProviderError represents a failure reported by (or while talking to) an external provider
type ProviderError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Provider   string `json:"provider"`
	StatusCode int    `json:"status_code,omitempty"`
	Retryable  bool   `json:"retryable"`
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// IsRetryable lets the retry helper decide without string matching
func (e *ProviderError) IsRetryable() bool {
	return e.Retryable
}

// NewHTTPError classifies a non-2xx provider response; 429 and 5xx are retryable
func NewHTTPError(provider string, status int, body string) *ProviderError {
	if len(body) > 512 {
		body = body[:512]
	}
	return &ProviderError{
		Code:       "api_error",
		Message:    fmt.Sprintf("API returned status %d: %s", status, body),
		Provider:   provider,
		StatusCode: status,
		Retryable:  status == http.StatusTooManyRequests || status >= 500,
	}
}

// NewRequestError wraps a transport failure; these are always retryable
func NewRequestError(provider string, err error) *ProviderError {
	return &ProviderError{
		Code:      "request_failed",
		Message:   fmt.Sprintf("HTTP request failed: %v", err),
		Provider:  provider,
		Retryable: true,
	}
}

// NewResponseError reports an unusable response body
func NewResponseError(provider string, err error) *ProviderError {
	return &ProviderError{
		Code:     "response_parse_failed",
		Message:  fmt.Sprintf("failed to parse response: %v", err),
		Provider: provider,
	}
}
