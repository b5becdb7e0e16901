package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/app/model"
	"meetingmind/internal/app/retry"
)

func geminiServer(t *testing.T, text string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":` + text + `}]}}]}`))
	}))
}

func TestSummarize(t *testing.T) {
	server := geminiServer(t, `"{\"overview\":\"Design sync\",\"key_points\":[],\"decisions\":[\"Use Go\"],\"next_steps\":[],\"action_items\":[{\"task\":\"Write doc\",\"priority\":\"low\"}]}"`)
	defer server.Close()

	client, err := NewClient(context.Background(), Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Retry:   retry.Options{MaxRetries: 0, InitialDelay: time.Millisecond},
	}, zap.NewNop())
	require.NoError(t, err)

	res, err := client.Summarize(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, "Design sync", res.Summary.Overview)
	assert.Equal(t, []string{"Use Go"}, res.Summary.Decisions)
	require.Len(t, res.ActionItems, 1)
	assert.Equal(t, model.PriorityLow, res.ActionItems[0].Priority)
}

func TestName(t *testing.T) {
	client, err := NewClient(context.Background(), Config{APIKey: "k"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Name())
	assert.Equal(t, DefaultModel, client.model)
}
