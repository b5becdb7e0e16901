package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/middleware"
	"meetingmind/internal/api/v1/dto"
	"meetingmind/internal/api/v1/routes"
	"meetingmind/internal/api/v1/services"
	"meetingmind/internal/app/export"
	"meetingmind/internal/app/model"
	"meetingmind/internal/app/ratelimit"
	"meetingmind/internal/app/template"
	"meetingmind/internal/app/testutil"
	"meetingmind/internal/config"
)

const meetingID = "3f2b8c1e-9a4d-4c6b-8e2f-1a2b3c4d5e6f"

func setupTestRouter(t *testing.T, limits *ratelimit.Registry) (*gin.Engine, *testutil.MockServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.UseJSONFieldNames()

	ms := testutil.NewMockServices(t)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler(zap.NewNop()))
	routes.RegisterRoutes(router.Group("/api/v1"), &routes.ServiceContainer{
		MeetingService:       ms.MeetingService,
		TranscriptionService: ms.TranscriptionService,
		SummaryService:       ms.SummaryService,
		TranslationService:   ms.TranslationService,
		CommentService:       ms.CommentService,
		ShareService:         ms.ShareService,
		NotesService:         ms.NotesService,
		TemplateService:      ms.TemplateService,
		InsightsService:      ms.InsightsService,
		ExportService:        ms.ExportService,
		ConfigService:        ms.ConfigService,
		RateLimits:           limits,
	})
	return router, ms
}

func do(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func asUser(id string) map[string]string {
	return map[string]string{middleware.HeaderUserID: id, middleware.HeaderUserName: "Ana"}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticatedRoutesRequireUser(t *testing.T) {
	router, ms := setupTestRouter(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/meetings"},
		{http.MethodPost, "/api/v1/upload"},
		{http.MethodPost, "/api/v1/meetings/" + meetingID + "/transcribe"},
		{http.MethodGet, "/api/v1/templates"},
		{http.MethodDelete, "/api/v1/shares/abcdef0123456789"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(router, tc.method, tc.path, nil, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, errors.CodeAuthRequired, decode(t, rec)["code"])
		})
	}
	ms.AssertExpectations(t)
}

func uploadRequest(t *testing.T, filename, contentType string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(middleware.HeaderUserID, testutil.TestUserID)
	return req
}

func TestMeetingHandler_Upload(t *testing.T) {
	tests := []struct {
		name           string
		request        func(t *testing.T) *http.Request
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name: "successful upload",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "standup.mp3", "audio/mpeg", []byte("ID3 audio"), map[string]string{"title": "Standup"})
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("Upload", mock.Anything, testutil.TestUserID,
					mock.MatchedBy(func(f services.UploadFile) bool {
						return f.Filename == "standup.mp3" && f.ContentType == "audio/mpeg" && f.Size == 9
					}),
					mock.MatchedBy(func(f *dto.UploadForm) bool { return f.Title == "Standup" }),
				).Return(&dto.UploadResponse{
					Meeting:   &model.Meeting{ID: meetingID, Title: "Standup"},
					SignedURL: "http://objects.test/audio/key?expires=3600",
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "http://objects.test/audio/key?expires=3600", body["signed_url"])
				assert.Equal(t, meetingID, body["meeting"].(map[string]interface{})["id"])
			},
		},
		{
			name: "missing file",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "", "", nil, map[string]string{"title": "Standup"})
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, errors.CodeValidation, body["code"])
				assert.Contains(t, body["details"], "file")
			},
		},
		{
			name: "invalid template id",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "a.mp3", "audio/mpeg", []byte("x"), map[string]string{"template_id": "nope"})
			},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Contains(t, body["details"], "template_id")
			},
		},
		{
			name: "service rejects file",
			request: func(t *testing.T) *http.Request {
				return uploadRequest(t, "notes.pdf", "application/pdf", []byte("%PDF"), nil)
			},
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("Upload", mock.Anything, testutil.TestUserID, mock.Anything, mock.Anything).
					Return(nil, errors.NewValidationError("Validation failed", map[string]string{"file": "must be an audio or video file"}))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "must be an audio or video file", body["details"].(map[string]interface{})["file"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t, nil)
			tt.setupMocks(ms)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, tt.request(t))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			tt.validateBody(t, decode(t, rec))
			ms.AssertExpectations(t)
		})
	}
}

func TestMeetingHandler_List(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.MeetingService.On("ListMeetings", mock.Anything, testutil.TestUserID,
		dto.ListMeetingsQuery{Page: 2, Limit: 20, Search: "sync"}).
		Return(&dto.MeetingListResponse{
			Meetings:   []model.Meeting{{ID: meetingID, Title: "Weekly sync"}},
			Pagination: dto.NewPagination(2, 20, 21),
		}, nil)

	rec := do(router, http.MethodGet, "/api/v1/meetings?page=2&search=sync", nil, asUser(testutil.TestUserID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "21", rec.Header().Get("X-Total-Count"))
	body := decode(t, rec)
	assert.Equal(t, float64(2), body["pagination"].(map[string]interface{})["total_pages"])
	ms.AssertExpectations(t)
}

func TestMeetingHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "found",
			path: "/api/v1/meetings/" + meetingID,
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("GetMeeting", mock.Anything, testutil.TestUserID, meetingID).
					Return(&model.Meeting{ID: meetingID, Title: "Weekly sync"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed id",
			path:           "/api/v1/meetings/42",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errors.CodeValidation,
		},
		{
			name: "not found",
			path: "/api/v1/meetings/" + meetingID,
			setupMocks: func(ms *testutil.MockServices) {
				ms.MeetingService.On("GetMeeting", mock.Anything, testutil.TestUserID, meetingID).
					Return(nil, errors.NewNotFoundError("meeting"))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   errors.CodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t, nil)
			tt.setupMocks(ms)

			rec := do(router, http.MethodGet, tt.path, nil, asUser(testutil.TestUserID))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, decode(t, rec)["code"])
			}
			ms.AssertExpectations(t)
		})
	}
}

func TestMeetingHandler_UpdateRequiresAField(t *testing.T) {
	router, ms := setupTestRouter(t, nil)

	rec := do(router, http.MethodPatch, "/api/v1/meetings/"+meetingID, map[string]interface{}{}, asUser(testutil.TestUserID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no fields to update", decode(t, rec)["details"].(map[string]interface{})["request"])
	ms.AssertExpectations(t)
}

func TestMeetingHandler_DeleteReturnsNoContent(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.MeetingService.On("DeleteMeeting", mock.Anything, testutil.TestUserID, meetingID).Return(nil)

	rec := do(router, http.MethodDelete, "/api/v1/meetings/"+meetingID, nil, asUser(testutil.TestUserID))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	ms.AssertExpectations(t)
}

func TestMeetingHandler_Export(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.ExportService.On("ExportMeeting", mock.Anything, testutil.TestUserID, meetingID,
		&dto.ExportRequest{Format: "md", Sections: []string{"summary"}}).
		Return(&export.Document{
			Filename:    "Weekly-sync-2025-03-14.md",
			ContentType: "text/markdown; charset=utf-8",
			Data:        []byte("# Weekly sync\n"),
		}, nil)

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/export",
		map[string]interface{}{"format": "md", "sections": []string{"summary"}}, asUser(testutil.TestUserID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="Weekly-sync-2025-03-14.md"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "# Weekly sync\n", rec.Body.String())
	ms.AssertExpectations(t)
}

func TestMeetingHandler_ExportRejectsUnknownFormat(t *testing.T) {
	router, ms := setupTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/export",
		map[string]interface{}{"format": "pdf"}, asUser(testutil.TestUserID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "must be one of: txt md json xlsx", decode(t, rec)["details"].(map[string]interface{})["format"])
	ms.AssertExpectations(t)
}

func TestTranscriptionHandler_Start(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{name: "accepted", expectedStatus: http.StatusAccepted},
		{
			name:           "already transcribing",
			err:            errors.NewConflictError(errors.CodeAlreadyTranscribing, "Transcription already in progress"),
			expectedStatus: http.StatusConflict,
			expectedCode:   errors.CodeAlreadyTranscribing,
		},
		{
			name:           "no audio",
			err:            errors.NewBadRequestError(errors.CodeNoAudio, "Meeting has no audio"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   errors.CodeNoAudio,
		},
		{
			name:           "not configured",
			err:            errors.NewServiceUnavailableError("Transcription is not configured"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   errors.CodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t, nil)
			var resp *dto.TranscriptionStatusResponse
			if tt.err == nil {
				id := "tr_123"
				resp = &dto.TranscriptionStatusResponse{Status: model.StatusQueued, TranscriptID: &id}
			}
			ms.TranscriptionService.On("StartTranscription", mock.Anything, testutil.TestUserID, meetingID).Return(resp, tt.err)

			rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/transcribe", nil, asUser(testutil.TestUserID))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			body := decode(t, rec)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
			} else {
				assert.Equal(t, "queued", body["status"])
				assert.Equal(t, "tr_123", body["transcript_id"])
			}
			ms.AssertExpectations(t)
		})
	}
}

func TestTranscriptionHandler_StatusAndReset(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.TranscriptionService.On("CheckStatus", mock.Anything, testutil.TestUserID, meetingID).
		Return(&dto.TranscriptionStatusResponse{Status: model.StatusError, Error: "audio too short"}, nil)
	ms.TranscriptionService.On("ResetTranscription", mock.Anything, testutil.TestUserID, meetingID).Return(nil)

	rec := do(router, http.MethodGet, "/api/v1/meetings/"+meetingID+"/transcription", nil, asUser(testutil.TestUserID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"error","error":"audio too short"}`, rec.Body.String())

	rec = do(router, http.MethodDelete, "/api/v1/meetings/"+meetingID+"/transcription", nil, asUser(testutil.TestUserID))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	ms.AssertExpectations(t)
}

func TestTranscriptionHandler_Webhook(t *testing.T) {
	payload := map[string]interface{}{"transcript_id": "tr_123", "status": "completed"}

	tests := []struct {
		name           string
		path           string
		body           interface{}
		headers        map[string]string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
	}{
		{
			name:    "acknowledged",
			path:    "/api/v1/webhooks/assemblyai?meeting_id=" + meetingID,
			body:    payload,
			headers: map[string]string{services.WebhookSecretHeader: "s3cret"},
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("HandleWebhook", mock.Anything, meetingID, "s3cret",
					&dto.WebhookPayload{TranscriptID: "tr_123", Status: "completed"}).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "meeting id from header",
			path:    "/api/v1/webhooks/assemblyai",
			body:    payload,
			headers: map[string]string{services.WebhookMeetingHeader: meetingID},
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("HandleWebhook", mock.Anything, meetingID, "",
					&dto.WebhookPayload{TranscriptID: "tr_123", Status: "completed"}).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:    "query wins over header",
			path:    "/api/v1/webhooks/assemblyai?meeting_id=" + meetingID,
			body:    payload,
			headers: map[string]string{services.WebhookMeetingHeader: "00000000-0000-0000-0000-000000000000"},
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("HandleWebhook", mock.Anything, meetingID, "", mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing meeting id",
			path:           "/api/v1/webhooks/assemblyai",
			body:           payload,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing transcript id",
			path:           "/api/v1/webhooks/assemblyai?meeting_id=" + meetingID,
			body:           map[string]interface{}{"status": "completed"},
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "secret mismatch",
			path: "/api/v1/webhooks/assemblyai?meeting_id=" + meetingID,
			body: payload,
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("HandleWebhook", mock.Anything, meetingID, "", mock.Anything).
					Return(errors.NewForbiddenError("Invalid webhook secret"))
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ms := setupTestRouter(t, nil)
			tt.setupMocks(ms)

			rec := do(router, http.MethodPost, tt.path, tt.body, tt.headers)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"received":true}`, rec.Body.String())
			}
			ms.AssertExpectations(t)
		})
	}
}

func TestSummaryHandler_Translate(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	translatedAt := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	ms.TranslationService.On("Translate", mock.Anything, testutil.TestUserID, meetingID,
		&dto.TranslateRequest{Language: "es", Force: true}).
		Return(&dto.TranslationResponse{
			Language:     "es",
			Summary:      &model.Summary{Overview: "Resumen"},
			ActionItems:  []model.ActionItem{},
			TranslatedAt: translatedAt,
		}, nil)
	ms.TranslationService.On("GetTranslation", mock.Anything, testutil.TestUserID, meetingID, "fr").
		Return(nil, errors.NewNotFoundError("translation"))

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/translate",
		map[string]interface{}{"language": "es", "force": true}, asUser(testutil.TestUserID))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Resumen", decode(t, rec)["summary"].(map[string]interface{})["overview"])

	rec = do(router, http.MethodGet, "/api/v1/meetings/"+meetingID+"/translate?lang=fr", nil, asUser(testutil.TestUserID))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(router, http.MethodGet, "/api/v1/meetings/"+meetingID+"/translate", nil, asUser(testutil.TestUserID))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["details"], "lang")
	ms.AssertExpectations(t)
}

func TestSummaryHandler_SummarizeWithoutTranscript(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.SummaryService.On("Summarize", mock.Anything, testutil.TestUserID, meetingID).
		Return(nil, errors.NewBadRequestError(errors.CodeNoTranscript, "Meeting has no transcript to summarize"))

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/summarize", nil, asUser(testutil.TestUserID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors.CodeNoTranscript, decode(t, rec)["code"])
	ms.AssertExpectations(t)
}

func TestCommentHandler_CreatePassesAuthor(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.CommentService.On("CreateComment", mock.Anything, testutil.TestUserID, "Ana", meetingID,
		mock.MatchedBy(func(r *dto.CreateCommentRequest) bool {
			return r.Content == "Nice" && r.Selection.EndOffset == 4
		})).
		Return(&model.Comment{ID: "c-1", MeetingID: meetingID, Content: "Nice", AuthorName: "Ana"}, nil)

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/comments", map[string]interface{}{
		"content":   "Nice",
		"selection": map[string]interface{}{"paragraph_index": 0, "start_offset": 0, "end_offset": 4, "selected_text": "Ship"},
	}, asUser(testutil.TestUserID))

	assert.Equal(t, http.StatusCreated, rec.Code)
	ms.AssertExpectations(t)
}

func TestCommentHandler_SelectionMustBeOrdered(t *testing.T) {
	router, ms := setupTestRouter(t, nil)

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/comments", map[string]interface{}{
		"content":   "Backwards",
		"selection": map[string]interface{}{"start_offset": 9, "end_offset": 2},
	}, asUser(testutil.TestUserID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["details"], "end_offset")
	ms.AssertExpectations(t)
}

func TestShareHandler_PublicExpiry(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	token := strings.Repeat("a", 32)
	ms.ShareService.On("GetSharedMeeting", mock.Anything, token).Return(nil, errors.NewShareExpiredError())
	ms.NotesService.On("GetNotes", mock.Anything, token).Return(nil, errors.NewShareExpiredError())

	rec := do(router, http.MethodGet, "/api/v1/public/shares/"+token, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, errors.CodeShareExpired, decode(t, rec)["code"])

	rec = do(router, http.MethodGet, "/api/v1/public/notes?token="+token, nil, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	ms.AssertExpectations(t)
}

func TestShareHandler_CreateWithoutBody(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.ShareService.On("CreateShare", mock.Anything, testutil.TestUserID, meetingID, &dto.CreateShareRequest{}).
		Return(&dto.ShareResponse{
			Share: model.Share{Token: strings.Repeat("b", 32), MeetingID: meetingID, UserID: testutil.TestUserID},
			URL:   "https://app.example.com/shared/" + strings.Repeat("b", 32),
		}, nil)

	rec := do(router, http.MethodPost, "/api/v1/meetings/"+meetingID+"/shares", nil, asUser(testutil.TestUserID))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "https://app.example.com/shared/"+strings.Repeat("b", 32), decode(t, rec)["url"])
	ms.AssertExpectations(t)
}

func TestPublicNotes_RateLimited(t *testing.T) {
	limits := ratelimit.NewRegistry(config.RateLimitConfig{
		config.TierPublicNotes: {Limit: 2, Window: time.Minute},
	}, nil, zap.NewNop())
	router, ms := setupTestRouter(t, limits)
	token := strings.Repeat("c", 32)
	ms.NotesService.On("UpdateNotes", mock.Anything, mock.Anything).
		Return(&model.Notes{ShareToken: token, Content: "x", Version: 1}, nil).Twice()

	body := map[string]interface{}{"token": token, "content": "x", "edited_by": "Guest"}
	for i := 0; i < 2; i++ {
		rec := do(router, http.MethodPost, "/api/v1/public/notes", body, map[string]string{"X-Share-Token": token})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(router, http.MethodPost, "/api/v1/public/notes", body, map[string]string{"X-Share-Token": token})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Equal(t, errors.CodeRateLimit, decode(t, rec)["code"])
	ms.AssertExpectations(t)
}

func TestTemplateHandler_Render(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	templateID := "8d3a3c8e-7f35-4f5b-9a55-3f0b1c1e2d10"
	ms.TemplateService.On("RenderTemplate", mock.Anything, testutil.TestUserID, templateID,
		&dto.RenderTemplateRequest{Project: "Apollo", Topic: "Kickoff"}).
		Return(&template.Rendered{Title: "Apollo - Kickoff"}, nil)

	rec := do(router, http.MethodPost, "/api/v1/templates/"+templateID+"/render",
		map[string]interface{}{"project": "Apollo", "topic": "Kickoff"}, asUser(testutil.TestUserID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"Apollo - Kickoff"}`, rec.Body.String())
	ms.AssertExpectations(t)
}

func TestConfigHandler(t *testing.T) {
	router, ms := setupTestRouter(t, nil)
	ms.ConfigService.On("GetConfig", mock.Anything).Return(&dto.ConfigResponse{
		TranscriptionEnabled: true,
		MaxUploadMB:          500,
	})

	rec := do(router, http.MethodGet, "/api/v1/config", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transcription_enabled":true,"summarization_enabled":false,"max_upload_mb":500,"realtime_enabled":false}`, rec.Body.String())
	ms.AssertExpectations(t)
}
