// Package assemblyai talks to the AssemblyAI-compatible asynchronous transcription REST API.
package assemblyai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/retry"
)

const (
	providerName   = "assemblyai"
	DefaultBaseURL = "https://api.assemblyai.com"
	transcriptPath = "/v2/transcript"
)

// Config for the AssemblyAI client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Retry   retry.Options
}

// Client implements provider.Transcriber
type Client struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

type submitBody struct {
	AudioURL               string `json:"audio_url"`
	SpeakerLabels          bool   `json:"speaker_labels"`
	LanguageDetection      bool   `json:"language_detection"`
	SentimentAnalysis      bool   `json:"sentiment_analysis"`
	WebhookURL             string `json:"webhook_url,omitempty"`
	WebhookAuthHeaderName  string `json:"webhook_auth_header_name,omitempty"`
	WebhookAuthHeaderValue string `json:"webhook_auth_header_value,omitempty"`
}

// NewClient creates a client; an empty BaseURL uses the public endpoint
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger.Named(providerName),
	}
}

// Name identifies the provider in metrics and logs
func (c *Client) Name() string {
	return providerName
}

// Submit queues a transcription job for a remotely reachable audio URL
func (c *Client) Submit(ctx context.Context, req provider.SubmitRequest) (*provider.Transcript, error) {
	if req.AudioURL == "" {
		return nil, &provider.ProviderError{Code: "invalid_input", Message: "audio URL is required", Provider: providerName}
	}

	body, err := json.Marshal(submitBody{
		AudioURL:               req.AudioURL,
		SpeakerLabels:          req.SpeakerLabels,
		LanguageDetection:      req.LanguageDetection,
		SentimentAnalysis:      req.SentimentAnalysis,
		WebhookURL:             req.WebhookURL,
		WebhookAuthHeaderName:  req.WebhookAuthHeader,
		WebhookAuthHeaderValue: req.WebhookAuthValue,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript request: %w", err)
	}

	return retry.DoValue(ctx, func(ctx context.Context) (*provider.Transcript, error) {
		return c.do(ctx, http.MethodPost, transcriptPath, body)
	}, c.retryOptions("submit"))
}

// Get fetches the current state of a job
func (c *Client) Get(ctx context.Context, transcriptID string) (*provider.Transcript, error) {
	if transcriptID == "" {
		return nil, &provider.ProviderError{Code: "invalid_input", Message: "transcript id is required", Provider: providerName}
	}

	return retry.DoValue(ctx, func(ctx context.Context) (*provider.Transcript, error) {
		return c.do(ctx, http.MethodGet, transcriptPath+"/"+transcriptID, nil)
	}, c.retryOptions("get"))
}

func (c *Client) retryOptions(op string) retry.Options {
	opts := c.config.Retry
	opts.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("retrying provider call",
			zap.String("operation", op),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	}
	return opts
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*provider.Transcript, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Authorization", c.config.APIKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, provider.NewRequestError(providerName, err)
	}
	defer resp.Body.Close()

	responseData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, provider.NewRequestError(providerName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, provider.NewHTTPError(providerName, resp.StatusCode, string(responseData))
	}

	var transcript provider.Transcript
	if err := json.Unmarshal(responseData, &transcript); err != nil {
		return nil, provider.NewResponseError(providerName, err)
	}
	if transcript.ID == "" {
		return nil, provider.NewResponseError(providerName, fmt.Errorf("response has no transcript id"))
	}
	return &transcript, nil
}

var _ provider.Transcriber = (*Client)(nil)
