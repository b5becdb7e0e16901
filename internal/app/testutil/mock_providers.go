package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"meetingmind/internal/app/api/provider"
	"meetingmind/internal/app/model"
)

// MockTranscriber is a testify mock of provider.Transcriber
type MockTranscriber struct {
	mock.Mock
}

// NewMockTranscriber creates a MockTranscriber bound to t
func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	return m
}

// Name implements provider.Transcriber
func (m *MockTranscriber) Name() string {
	return "mock-transcriber"
}

// Submit implements provider.Transcriber
func (m *MockTranscriber) Submit(ctx context.Context, req provider.SubmitRequest) (*provider.Transcript, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Transcript), args.Error(1)
}

// Get implements provider.Transcriber
func (m *MockTranscriber) Get(ctx context.Context, transcriptID string) (*provider.Transcript, error) {
	args := m.Called(ctx, transcriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Transcript), args.Error(1)
}

// MockLanguageModel is a testify mock of provider.LanguageModel
type MockLanguageModel struct {
	mock.Mock
}

// NewMockLanguageModel creates a MockLanguageModel bound to t
func NewMockLanguageModel(t *testing.T) *MockLanguageModel {
	m := &MockLanguageModel{}
	m.Test(t)
	return m
}

// Name implements provider.LanguageModel
func (m *MockLanguageModel) Name() string {
	return "mock-llm"
}

// Summarize implements provider.LanguageModel
func (m *MockLanguageModel) Summarize(ctx context.Context, transcript string) (*provider.SummaryResult, error) {
	args := m.Called(ctx, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SummaryResult), args.Error(1)
}

// Translate implements provider.LanguageModel
func (m *MockLanguageModel) Translate(ctx context.Context, language string, summary *model.Summary, items []model.ActionItem) (*provider.SummaryResult, error) {
	args := m.Called(ctx, language, summary, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.SummaryResult), args.Error(1)
}
