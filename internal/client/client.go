// Package client is a Go client for the MeetingMind HTTP and realtime API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	apierrors "meetingmind/internal/api/errors"
	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/app/jobtracker"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/notes"
	"meetingmind/internal/app/retry"
)

const apiPrefix = "/api/v1"

// Config for the API client
type Config struct {
	BaseURL  string
	UserID   string
	UserName string
	Timeout  time.Duration
	Retry    retry.Options
}

// Client calls the v1 REST API as one user
type Client struct {
	config Config
	http   *http.Client
	logger *zap.Logger
}

// Error is a non-2xx response decoded from the standard error body
type Error struct {
	apierrors.APIError
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

// IsRetryable marks throttling and server-side failures as worth another attempt
func (e *Error) IsRetryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= http.StatusInternalServerError
}

// New creates a client; a zero Timeout means 30s
func New(config Config, logger *zap.Logger) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
		logger: logger.Named("client"),
	}
}

// ListMeetings fetches one page of the caller's meetings
func (c *Client) ListMeetings(ctx context.Context, page, limit int, search string) (*dto.MeetingListResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	var out dto.MeetingListResponse
	if err := c.call(ctx, http.MethodGet, "/meetings?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMeeting fetches one meeting
func (c *Client) GetMeeting(ctx context.Context, meetingID string) (*model.Meeting, error) {
	var out model.Meeting
	if err := c.call(ctx, http.MethodGet, "/meetings/"+url.PathEscape(meetingID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInsights fetches the analytics of one meeting
func (c *Client) GetInsights(ctx context.Context, meetingID string) (*model.Insights, error) {
	var out model.Insights
	if err := c.call(ctx, http.MethodGet, "/meetings/"+url.PathEscape(meetingID)+"/insights", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartTranscription submits the meeting's audio for transcription
func (c *Client) StartTranscription(ctx context.Context, meetingID string) (*jobtracker.Status, error) {
	var out dto.TranscriptionStatusResponse
	if err := c.call(ctx, http.MethodPost, "/meetings/"+url.PathEscape(meetingID)+"/transcribe", nil, &out); err != nil {
		return nil, err
	}
	return &jobtracker.Status{Status: out.Status, Error: out.Error}, nil
}

// TranscriptionStatus reconciles and returns the current job state
func (c *Client) TranscriptionStatus(ctx context.Context, meetingID string) (*jobtracker.Status, error) {
	var out dto.TranscriptionStatusResponse
	if err := c.call(ctx, http.MethodGet, "/meetings/"+url.PathEscape(meetingID)+"/transcription", nil, &out); err != nil {
		return nil, err
	}
	return &jobtracker.Status{Status: out.Status, Error: out.Error}, nil
}

// GetNotes reads the shared notes of a share token
func (c *Client) GetNotes(ctx context.Context, token string) (*model.Notes, error) {
	var out model.Notes
	if err := c.call(ctx, http.MethodGet, "/public/notes?token="+url.QueryEscape(token), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNotes overwrites the shared notes of a share token
func (c *Client) UpdateNotes(ctx context.Context, token, content, editedBy, editorColor string) (*model.Notes, error) {
	var out model.Notes
	req := dto.UpdateNotesRequest{Token: token, Content: content, EditedBy: editedBy, EditorColor: editorColor}
	if err := c.call(ctx, http.MethodPost, "/public/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	opts := c.config.Retry
	opts.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("retrying API call",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	}

	return retry.Do(ctx, func(ctx context.Context) error {
		return c.do(ctx, method, path, payload, out)
	}, opts)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}
	c.authorize(req.Header)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{}
		if err := json.Unmarshal(data, &apiErr.APIError); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		apiErr.Status = resp.StatusCode
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(h http.Header) {
	if c.config.UserID != "" {
		h.Set(middleware.HeaderUserID, c.config.UserID)
	}
	if c.config.UserName != "" {
		h.Set(middleware.HeaderUserName, c.config.UserName)
	}
}

var (
	_ jobtracker.API = (*Client)(nil)
	_ notes.API      = (*Client)(nil)
)
