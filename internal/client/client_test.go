package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/app/model"
	"meetingmind/internal/app/realtime"
	"meetingmind/internal/app/retry"
)

func newTestClient(url string) *Client {
	return New(Config{
		BaseURL:  url + "/",
		UserID:   "user-1",
		UserName: "Ana",
		Timeout:  2 * time.Second,
		Retry: retry.Options{
			MaxRetries:   2,
			InitialDelay: time.Millisecond,
			MaxDelay:     time.Millisecond,
		},
	}, zap.NewNop())
}

func TestTranscriptionStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/meetings/m-1/transcription", r.URL.Path)
		assert.Equal(t, "user-1", r.Header.Get("X-User-ID"))
		assert.Equal(t, "Ana", r.Header.Get("X-User-Name"))
		w.Write([]byte(`{"status":"error","error":"audio too short"}`))
	}))
	defer srv.Close()

	st, err := newTestClient(srv.URL).TranscriptionStatus(context.Background(), "m-1")

	require.NoError(t, err)
	assert.Equal(t, model.StatusError, st.Status)
	assert.Equal(t, "audio too short", st.Error)
}

func TestErrorBodyIsDecoded(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Transcription already in progress","status":409,"code":"ALREADY_TRANSCRIBING"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).StartTranscription(context.Background(), "m-1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "ALREADY_TRANSCRIBING", apiErr.Code)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.False(t, apiErr.IsRetryable())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("upstream down"))
			return
		}
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-12345678", body["token"])
		w.Write([]byte(`{"share_token":"tok-12345678","content":"hello","version":4,"edited_by":"Ana"}`))
	}))
	defer srv.Close()

	n, err := newTestClient(srv.URL).UpdateNotes(context.Background(), "tok-12345678", "hello", "Ana", "")

	require.NoError(t, err)
	assert.Equal(t, 4, n.Version)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRealtimeURL(t *testing.T) {
	assert.Equal(t, "wss://api.example.com/api/v1/realtime", New(Config{BaseURL: "https://api.example.com"}, nil).RealtimeURL())
	assert.Equal(t, "ws://localhost:8081/api/v1/realtime", New(Config{BaseURL: "http://localhost:8081/"}, nil).RealtimeURL())
}

func TestDialerDeliversEventsAndReportsDrop(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan realtime.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-1", r.Header.Get("X-User-ID"))
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		require.NoError(t, conn.WriteJSON(realtime.Event{Table: realtime.TableMeetings, Type: realtime.EventDelete, RecordID: "m-9"}))
		var ping realtime.Event
		require.NoError(t, conn.ReadJSON(&ping))
		received <- ping
	}))
	defer srv.Close()

	events := make(chan realtime.Event, 1)
	dial := newTestClient(srv.URL).Dialer(func(e realtime.Event) { events <- e })

	ch, err := dial(context.Background())
	require.NoError(t, err)
	defer ch.Close()

	select {
	case e := <-events:
		assert.Equal(t, "m-9", e.RecordID)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}

	require.NoError(t, ch.Send(context.Background(), realtime.Ping()))
	select {
	case e := <-received:
		assert.Equal(t, realtime.EventPing, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("ping not received")
	}

	select {
	case <-ch.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("drop not reported")
	}
}
