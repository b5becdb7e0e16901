package provider

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingmind/internal/app/model"
	"meetingmind/internal/app/retry"
)

func TestParseSummary(t *testing.T) {
	raw := "```json\n" + `{
		"overview": " Quarterly planning ",
		"key_points": ["Budget approved"],
		"decisions": null,
		"next_steps": ["Send recap"],
		"action_items": [
			{"task": "Draft roadmap", "assignee": "Ana", "due_date": "", "priority": "URGENT"},
			{"task": "  ", "priority": "low"},
			{"task": "Book venue", "assignee": null, "priority": "whenever"}
		]
	}` + "\n```"

	res, err := ParseSummary(raw)
	require.NoError(t, err)

	assert.Equal(t, "Quarterly planning", res.Summary.Overview)
	assert.Equal(t, []string{}, res.Summary.Decisions)
	require.Len(t, res.ActionItems, 2)
	assert.Equal(t, model.PriorityHigh, res.ActionItems[0].Priority)
	assert.Equal(t, "Ana", *res.ActionItems[0].Assignee)
	assert.Nil(t, res.ActionItems[0].DueDate)
	assert.Equal(t, model.PriorityMedium, res.ActionItems[1].Priority)
}

func TestParseSummaryErrors(t *testing.T) {
	_, err := ParseSummary("  ")
	assert.Error(t, err)

	_, err = ParseSummary("not json")
	assert.Error(t, err)
}

func TestTranslateUserPrompt(t *testing.T) {
	prompt, err := TranslateUserPrompt("es", &model.Summary{Overview: "Hello"}, []model.ActionItem{{Task: "Ship", Priority: model.PriorityLow}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(prompt, "Target language: es"))
	assert.Contains(t, prompt, `"overview":"Hello"`)
	assert.Contains(t, prompt, `"priority":"low"`)
}

func TestMergeCompletion(t *testing.T) {
	source := []model.ActionItem{{Task: "a", Completed: true}, {Task: "b"}}
	translated := []model.ActionItem{{Task: "x"}, {Task: "y"}, {Task: "z"}}

	merged := MergeCompletion(source, translated)
	assert.True(t, merged[0].Completed)
	assert.False(t, merged[1].Completed)
	assert.False(t, merged[2].Completed)
}

func TestHTTPErrorRetryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
		{http.StatusTooManyRequests, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		err := NewHTTPError("assemblyai", tt.status, "boom")
		assert.Equal(t, tt.retryable, retry.IsTransient(err), "status %d", tt.status)
	}

	assert.True(t, retry.IsTransient(NewRequestError("openai", errors.New("dial tcp"))))
}

func TestTranscriptHelpers(t *testing.T) {
	d := 61.6
	tr := &Transcript{AudioDuration: &d}
	assert.Equal(t, 62, tr.DurationSeconds())
	assert.Equal(t, "", tr.TextOrEmpty())
	assert.Equal(t, "Transcription failed", tr.ErrorOrDefault())
}
