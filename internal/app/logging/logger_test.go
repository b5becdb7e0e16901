package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	for _, development := range []bool{true, false} {
		logger, err := NewLogger(development)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}
}

func TestFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	logger.Info("transcript stored", MeetingField("m-1"), UserField("u-1"))

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "m-1", ctx["meeting_id"])
	assert.Equal(t, "u-1", ctx["user_id"])
}
