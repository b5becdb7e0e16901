// Package gemini summarizes and translates meetings with Google Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/retry"
)

const providerName = "gemini"

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Config for the Gemini language model
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Retry   retry.Options
}

// Client implements provider.LanguageModel
type Client struct {
	client *genai.Client
	model  string
	retry  retry.Options
	logger *zap.Logger
}

// NewClient creates a Gemini API client
func NewClient(ctx context.Context, config Config, logger *zap.Logger) (*Client, error) {
	if config.Model == "" {
		config.Model = DefaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  config.Model,
		retry:  config.Retry,
		logger: logger.Named(providerName),
	}, nil
}

// Name identifies the provider in metrics and logs
func (c *Client) Name() string {
	return providerName
}

// Summarize extracts the summary and action items from a transcript
func (c *Client) Summarize(ctx context.Context, transcript string) (*provider.SummaryResult, error) {
	raw, err := c.generate(ctx, provider.SummarySystemPrompt, provider.SummaryUserPrompt(transcript))
	if err != nil {
		return nil, err
	}
	return provider.ParseSummary(raw)
}

// Translate renders the summary and action items in language
func (c *Client) Translate(ctx context.Context, language string, summary *model.Summary, items []model.ActionItem) (*provider.SummaryResult, error) {
	prompt, err := provider.TranslateUserPrompt(language, summary, items)
	if err != nil {
		return nil, err
	}
	raw, err := c.generate(ctx, provider.TranslateSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	result, err := provider.ParseSummary(raw)
	if err != nil {
		return nil, err
	}
	result.ActionItems = provider.MergeCompletion(items, result.ActionItems)
	return result, nil
}

func (c *Client) generate(ctx context.Context, system, user string) (string, error) {
	temperature := float32(0.2)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       &temperature,
	}

	opts := c.retry
	opts.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("retrying content generation", zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
	}

	resp, err := retry.DoValue(ctx, func(ctx context.Context) (*genai.GenerateContentResponse, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), cfg)
		if err != nil {
			return nil, classify(err)
		}
		return resp, nil
	}, opts)
	if err != nil {
		return "", err
	}

	text := resp.Text()
	if text == "" {
		return "", &provider.ProviderError{Code: "empty_response", Message: "no text in response", Provider: providerName}
	}
	return text, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return provider.NewHTTPError(providerName, apiErr.Code, apiErr.Message)
	}
	return provider.NewRequestError(providerName, err)
}

var _ provider.LanguageModel = (*Client)(nil)
