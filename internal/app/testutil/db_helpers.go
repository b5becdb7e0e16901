package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/app/model"
	"meetingmind/internal/app/repository"
	"meetingmind/internal/app/repository/migrate"
	"meetingmind/internal/app/repository/sqlite"
)

// NewTestStore opens a migrated SQLite store that is closed when the test ends
func NewTestStore(t *testing.T) *repository.SQLStore {
	t.Helper()

	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "meetingmind_test.db"))
	require.NoError(t, err, "failed to open test store")

	_, err = migrate.Up(context.Background(), store.DB(), repository.SQLite, zap.NewNop())
	require.NoError(t, err, "failed to migrate test store")

	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedMeeting inserts m, then writes any job or transcript it carries the way the services would
func SeedMeeting(t *testing.T, store repository.Store, m *model.Meeting) *model.Meeting {
	t.Helper()
	ctx := context.Background()

	transcriptID := m.TranscriptID
	transcript := m.Transcript
	summary := m.Summary
	m.TranscriptID, m.Transcript, m.Summary = nil, nil, nil

	require.NoError(t, store.CreateMeeting(ctx, m))

	if transcript != nil {
		_, err := store.CompleteTranscription(ctx, m.ID, model.TranscriptionCompletion{
			Transcript:   *transcript,
			Participants: m.Participants,
			Language:     m.Language,
			Duration:     m.Duration,
		})
		require.NoError(t, err)
	} else if transcriptID != nil {
		claimed, err := store.ClaimTranscriptJob(ctx, m.ID, *transcriptID)
		require.NoError(t, err)
		require.True(t, claimed)
	}
	if summary != nil {
		require.NoError(t, store.SaveSummary(ctx, m.ID, summary, m.ActionItems))
	}

	saved, err := store.GetMeeting(ctx, m.ID)
	require.NoError(t, err)
	return saved
}

// SeedShare inserts a share link
func SeedShare(t *testing.T, store repository.Store, share *model.Share) *model.Share {
	t.Helper()
	require.NoError(t, store.CreateShare(context.Background(), share))
	return share
}
