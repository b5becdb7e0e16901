// Package openai summarizes and translates meetings with the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/retry"
)

const providerName = "openai"

// DefaultModel is used when no model is configured
const DefaultModel = openai.GPT4oMini

// Config for the OpenAI language model
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Retry   retry.Options
}

// Client implements provider.LanguageModel
type Client struct {
	client *openai.Client
	model  string
	retry  retry.Options
	logger *zap.Logger
}

// NewClient creates the chat client; BaseURL allows compatible gateways
func NewClient(config Config, logger *zap.Logger) *Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  config.Model,
		retry:  config.Retry,
		logger: logger.Named(providerName),
	}
}

// Name identifies the provider in metrics and logs
func (c *Client) Name() string {
	return providerName
}

// Summarize extracts the summary and action items from a transcript
func (c *Client) Summarize(ctx context.Context, transcript string) (*provider.SummaryResult, error) {
	raw, err := c.complete(ctx, provider.SummarySystemPrompt, provider.SummaryUserPrompt(transcript))
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
	raw, err := c.complete(ctx, provider.TranslateSystemPrompt, prompt)
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

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	opts := c.retry
	opts.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("retrying chat completion", zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
	}

	resp, err := retry.DoValue(ctx, func(ctx context.Context) (openai.ChatCompletionResponse, error) {
		resp, err := c.client.CreateChatCompletion(ctx, request)
		if err != nil {
			return resp, classify(err)
		}
		return resp, nil
	}, opts)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", &provider.ProviderError{Code: "empty_response", Message: "no choices in response", Provider: providerName}
	}
	return resp.Choices[0].Message.Content, nil
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return provider.NewHTTPError(providerName, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return provider.NewHTTPError(providerName, reqErr.HTTPStatusCode, fmt.Sprint(reqErr.Err))
	}
	return provider.NewRequestError(providerName, err)
}

var _ provider.LanguageModel = (*Client)(nil)
