package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/services"
	"meetingmind/internal/app/export"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/template"
)

// MockServices contains all mock services for handler tests
type MockServices struct {
	MeetingService       *MockMeetingService
	TranscriptionService *MockTranscriptionService
	SummaryService       *MockSummaryService
	TranslationService   *MockTranslationService
	CommentService       *MockCommentService
	ShareService         *MockShareService
	NotesService         *MockNotesService
	TemplateService      *MockTemplateService
	InsightsService      *MockInsightsService
	ExportService        *MockExportService
	ConfigService        *MockConfigService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	ms := &MockServices{
		MeetingService:       &MockMeetingService{},
		TranscriptionService: &MockTranscriptionService{},
		SummaryService:       &MockSummaryService{},
		TranslationService:   &MockTranslationService{},
		CommentService:       &MockCommentService{},
		ShareService:         &MockShareService{},
		NotesService:         &MockNotesService{},
		TemplateService:      &MockTemplateService{},
		InsightsService:      &MockInsightsService{},
		ExportService:        &MockExportService{},
		ConfigService:        &MockConfigService{},
	}
	for _, m := range []interface{ Test(mock.TestingT) }{
		ms.MeetingService, ms.TranscriptionService, ms.SummaryService, ms.TranslationService,
		ms.CommentService, ms.ShareService, ms.NotesService, ms.TemplateService,
		ms.InsightsService, ms.ExportService, ms.ConfigService,
	} {
		m.Test(t)
	}
	return ms
}

// AssertExpectations checks every mock's expectations
func (ms *MockServices) AssertExpectations(t *testing.T) {
	ms.MeetingService.AssertExpectations(t)
	ms.TranscriptionService.AssertExpectations(t)
	ms.SummaryService.AssertExpectations(t)
	ms.TranslationService.AssertExpectations(t)
	ms.CommentService.AssertExpectations(t)
	ms.ShareService.AssertExpectations(t)
	ms.NotesService.AssertExpectations(t)
	ms.TemplateService.AssertExpectations(t)
	ms.InsightsService.AssertExpectations(t)
	ms.ExportService.AssertExpectations(t)
	ms.ConfigService.AssertExpectations(t)
}

func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

// MockMeetingService is a mock implementation of MeetingService
type MockMeetingService struct {
	mock.Mock
}

var _ services.MeetingService = (*MockMeetingService)(nil)

func (m *MockMeetingService) Upload(ctx context.Context, userID string, file services.UploadFile, form *dto.UploadForm) (*dto.UploadResponse, error) {
	return result[*dto.UploadResponse](m.Called(ctx, userID, file, form))
}

func (m *MockMeetingService) ListMeetings(ctx context.Context, userID string, query dto.ListMeetingsQuery) (*dto.MeetingListResponse, error) {
	return result[*dto.MeetingListResponse](m.Called(ctx, userID, query))
}

func (m *MockMeetingService) GetMeeting(ctx context.Context, userID, meetingID string) (*model.Meeting, error) {
	return result[*model.Meeting](m.Called(ctx, userID, meetingID))
}

func (m *MockMeetingService) UpdateMeeting(ctx context.Context, userID, meetingID string, req *dto.UpdateMeetingRequest) (*model.Meeting, error) {
	return result[*model.Meeting](m.Called(ctx, userID, meetingID, req))
}

func (m *MockMeetingService) DeleteMeeting(ctx context.Context, userID, meetingID string) error {
	return m.Called(ctx, userID, meetingID).Error(0)
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

var _ services.TranscriptionService = (*MockTranscriptionService)(nil)

func (m *MockTranscriptionService) StartTranscription(ctx context.Context, userID, meetingID string) (*dto.TranscriptionStatusResponse, error) {
	return result[*dto.TranscriptionStatusResponse](m.Called(ctx, userID, meetingID))
}

func (m *MockTranscriptionService) CheckStatus(ctx context.Context, userID, meetingID string) (*dto.TranscriptionStatusResponse, error) {
	return result[*dto.TranscriptionStatusResponse](m.Called(ctx, userID, meetingID))
}

func (m *MockTranscriptionService) ResetTranscription(ctx context.Context, userID, meetingID string) error {
	return m.Called(ctx, userID, meetingID).Error(0)
}

func (m *MockTranscriptionService) HandleWebhook(ctx context.Context, meetingID, secret string, payload *dto.WebhookPayload) error {
	return m.Called(ctx, meetingID, secret, payload).Error(0)
}

// MockSummaryService is a mock implementation of SummaryService
type MockSummaryService struct {
	mock.Mock
}

var _ services.SummaryService = (*MockSummaryService)(nil)

func (m *MockSummaryService) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockSummaryService) Summarize(ctx context.Context, userID, meetingID string) (*model.Meeting, error) {
	return result[*model.Meeting](m.Called(ctx, userID, meetingID))
}

func (m *MockSummaryService) SummarizeMeeting(ctx context.Context, meetingID string) error {
	return m.Called(ctx, meetingID).Error(0)
}

// MockTranslationService is a mock implementation of TranslationService
type MockTranslationService struct {
	mock.Mock
}

var _ services.TranslationService = (*MockTranslationService)(nil)

func (m *MockTranslationService) GetTranslation(ctx context.Context, userID, meetingID, language string) (*dto.TranslationResponse, error) {
	return result[*dto.TranslationResponse](m.Called(ctx, userID, meetingID, language))
}

func (m *MockTranslationService) Translate(ctx context.Context, userID, meetingID string, req *dto.TranslateRequest) (*dto.TranslationResponse, error) {
	return result[*dto.TranslationResponse](m.Called(ctx, userID, meetingID, req))
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	mock.Mock
}

var _ services.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) ListComments(ctx context.Context, userID, meetingID string) ([]model.Comment, error) {
	return result[[]model.Comment](m.Called(ctx, userID, meetingID))
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID, userName, meetingID string, req *dto.CreateCommentRequest) (*model.Comment, error) {
	return result[*model.Comment](m.Called(ctx, userID, userName, meetingID, req))
}

func (m *MockCommentService) UpdateComment(ctx context.Context, userID, commentID string, req *dto.UpdateCommentRequest) (*model.Comment, error) {
	return result[*model.Comment](m.Called(ctx, userID, commentID, req))
}

func (m *MockCommentService) DeleteComment(ctx context.Context, userID, commentID string) error {
	return m.Called(ctx, userID, commentID).Error(0)
}

func (m *MockCommentService) ListPublicComments(ctx context.Context, token string) ([]model.Comment, error) {
	return result[[]model.Comment](m.Called(ctx, token))
}

func (m *MockCommentService) CreatePublicComment(ctx context.Context, req *dto.PublicCommentRequest) (*model.Comment, error) {
	return result[*model.Comment](m.Called(ctx, req))
}

// MockShareService is a mock implementation of ShareService
type MockShareService struct {
	mock.Mock
}

var _ services.ShareService = (*MockShareService)(nil)

func (m *MockShareService) CreateShare(ctx context.Context, userID, meetingID string, req *dto.CreateShareRequest) (*dto.ShareResponse, error) {
	return result[*dto.ShareResponse](m.Called(ctx, userID, meetingID, req))
}

func (m *MockShareService) ListShares(ctx context.Context, userID, meetingID string) ([]dto.ShareResponse, error) {
	return result[[]dto.ShareResponse](m.Called(ctx, userID, meetingID))
}

func (m *MockShareService) GetSharedMeeting(ctx context.Context, token string) (*dto.SharedMeetingResponse, error) {
	return result[*dto.SharedMeetingResponse](m.Called(ctx, token))
}

func (m *MockShareService) DeleteShare(ctx context.Context, userID, token string) error {
	return m.Called(ctx, userID, token).Error(0)
}

// MockNotesService is a mock implementation of NotesService
type MockNotesService struct {
	mock.Mock
}

var _ services.NotesService = (*MockNotesService)(nil)

func (m *MockNotesService) GetNotes(ctx context.Context, token string) (*model.Notes, error) {
	return result[*model.Notes](m.Called(ctx, token))
}

func (m *MockNotesService) UpdateNotes(ctx context.Context, req *dto.UpdateNotesRequest) (*model.Notes, error) {
	return result[*model.Notes](m.Called(ctx, req))
}

// MockTemplateService is a mock implementation of TemplateService
type MockTemplateService struct {
	mock.Mock
}

var _ services.TemplateService = (*MockTemplateService)(nil)

func (m *MockTemplateService) ListTemplates(ctx context.Context, userID string) ([]model.Template, error) {
	return result[[]model.Template](m.Called(ctx, userID))
}

func (m *MockTemplateService) GetTemplate(ctx context.Context, userID, templateID string) (*model.Template, error) {
	return result[*model.Template](m.Called(ctx, userID, templateID))
}

func (m *MockTemplateService) CreateTemplate(ctx context.Context, userID string, req *dto.CreateTemplateRequest) (*model.Template, error) {
	return result[*model.Template](m.Called(ctx, userID, req))
}

func (m *MockTemplateService) UpdateTemplate(ctx context.Context, userID, templateID string, req *dto.UpdateTemplateRequest) (*model.Template, error) {
	return result[*model.Template](m.Called(ctx, userID, templateID, req))
}

func (m *MockTemplateService) DeleteTemplate(ctx context.Context, userID, templateID string) error {
	return m.Called(ctx, userID, templateID).Error(0)
}

func (m *MockTemplateService) RenderTemplate(ctx context.Context, userID, templateID string, req *dto.RenderTemplateRequest) (*template.Rendered, error) {
	return result[*template.Rendered](m.Called(ctx, userID, templateID, req))
}

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	mock.Mock
}

var _ services.InsightsService = (*MockInsightsService)(nil)

func (m *MockInsightsService) GetInsights(ctx context.Context, userID, meetingID string) (*model.Insights, error) {
	return result[*model.Insights](m.Called(ctx, userID, meetingID))
}

// MockExportService is a mock implementation of ExportService
type MockExportService struct {
	mock.Mock
}

var _ services.ExportService = (*MockExportService)(nil)

func (m *MockExportService) ExportMeeting(ctx context.Context, userID, meetingID string, req *dto.ExportRequest) (*export.Document, error) {
	return result[*export.Document](m.Called(ctx, userID, meetingID, req))
}

// MockConfigService is a mock implementation of ConfigService
type MockConfigService struct {
	mock.Mock
}

var _ services.ConfigService = (*MockConfigService)(nil)

func (m *MockConfigService) GetConfig(ctx context.Context) *dto.ConfigResponse {
	return m.Called(ctx).Get(0).(*dto.ConfigResponse)
}

func (m *MockConfigService) GetProviderStats(ctx context.Context) *dto.ProviderStatsResponse {
	return m.Called(ctx).Get(0).(*dto.ProviderStatsResponse)
}
