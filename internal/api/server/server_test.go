package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/api/v1/handlers"
	v1routes "meetingmind/internal/api/v1/routes"
	"meetingmind/internal/app/metrics"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/testutil"
	"meetingmind/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, db HealthChecker, broker realtime.Broker) *Server {
	t.Helper()
	ms := testutil.NewMockServices(t)
	container := &v1routes.ServiceContainer{
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
		Metrics:              metrics.New(),
	}
	if broker != nil {
		container.Realtime = handlers.NewRealtimeHandler(broker, time.Hour, nil, zap.NewNop())
	}
	return NewServer(config.ServerConfig{Host: "127.0.0.1", Port: "0", Environment: "test"}, container, db, zap.NewNop())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name           string
		db             HealthChecker
		expectedStatus int
		expectedBody   map[string]interface{}
	}{
		{
			name:           "no database probe",
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"status": "healthy"},
		},
		{
			name:           "database reachable",
			db:             pinger{},
			expectedStatus: http.StatusOK,
			expectedBody:   map[string]interface{}{"status": "healthy", "database": "ok"},
		},
		{
			name:           "database down",
			db:             pinger{err: errors.New("connection refused")},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   map[string]interface{}{"status": "unhealthy", "database": "connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.db, nil)
			rec := httptest.NewRecorder()
			srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			for k, v := range tt.expectedBody {
				assert.Equal(t, v, body[k], k)
			}
			assert.Contains(t, body, "timestamp")
		})
	}
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meetings", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "meetingmind_http_request_duration_seconds")
}

func TestRealtimeStreamDeliversOwnEvents(t *testing.T) {
	broker := realtime.NewMemoryBroker()
	srv := newTestServer(t, nil, broker)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	header := http.Header{}
	header.Set("X-User-ID", testutil.TestUserID)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/api/v1/realtime", header)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return broker.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	other, err := realtime.NewEvent(realtime.TableMeetings, realtime.EventDelete, testutil.OtherUserID, "m-other", nil, nil)
	require.NoError(t, err)
	own, err := realtime.NewEvent(realtime.TableMeetings, realtime.EventDelete, testutil.TestUserID, "m-own", nil, nil)
	require.NoError(t, err)
	require.NoError(t, broker.Publish(context.Background(), other))
	require.NoError(t, broker.Publish(context.Background(), own))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got realtime.Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "m-own", got.RecordID)

	conn.Close()
	require.Eventually(t, func() bool { return broker.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestRealtimeRequiresUser(t *testing.T) {
	srv := newTestServer(t, nil, realtime.NewMemoryBroker())
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/realtime", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
