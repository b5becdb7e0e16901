package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meetingmind/internal/app/errors"
)

func TestErrorStatusAndCode(t *testing.T) {
	testCases := []struct {
		name   string
		err    *APIError
		status int
		code   string
	}{
		{"auth", NewAuthRequiredError("login required"), http.StatusUnauthorized, CodeAuthRequired},
		{"forbidden", NewForbiddenError("not yours"), http.StatusForbidden, CodeForbidden},
		{"not found", NewNotFoundError("Meeting"), http.StatusNotFound, CodeNotFound},
		{"validation", NewValidationError("bad", map[string]string{"title": "is required"}), http.StatusBadRequest, CodeValidation},
		{"rate limit", NewRateLimitError(30 * time.Second), http.StatusTooManyRequests, CodeRateLimit},
		{"unavailable", NewServiceUnavailableError("no key"), http.StatusServiceUnavailable, CodeServiceUnavailable},
		{"already transcribing", NewConflictError(CodeAlreadyTranscribing, "busy"), http.StatusConflict, CodeAlreadyTranscribing},
		{"no audio", NewBadRequestError(CodeNoAudio, "no audio"), http.StatusBadRequest, CodeNoAudio},
		{"share expired", NewShareExpiredError(), http.StatusForbidden, CodeShareExpired},
		{"processing", NewProcessingError(CodeTranscriptionError, "provider down"), http.StatusInternalServerError, CodeTranscriptionError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.HTTPStatus())
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestErrorBodyShape(t *testing.T) {
	apiErr := NewValidationError("Validation failed", map[string]string{"content": "is required"})
	apiErr.RequestID = "req-1"

	data, err := json.Marshal(apiErr)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, float64(400), body["status"])
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, map[string]interface{}{"content": "is required"}, body["details"])
	assert.NotContains(t, body, "request_id")

	data, err = json.Marshal(NewNotFoundError("Meeting"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "details")
}

func TestRateLimitRetryAfter(t *testing.T) {
	assert.Equal(t, "42", NewRateLimitError(42 * time.Second).Details["retry_after"])
	assert.Equal(t, "1", NewRateLimitError(10 * time.Millisecond).Details["retry_after"])
}

func TestFromStore(t *testing.T) {
	assert.Nil(t, FromStore(nil, "Meeting"))

	err := FromStore(apperrors.NotFound("meeting", "m-1"), "Meeting")
	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, apiErr.Code)

	err = FromStore(fmt.Errorf("connection refused"), "Meeting")
	apiErr, ok = err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, CodeDatabaseError, apiErr.Code)

	original := NewForbiddenError("nope")
	assert.Same(t, original, FromStore(original, "Meeting"))
}
