package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "meetingmind/internal/app/errors"
	"meetingmind/internal/app/model"
)

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := NewSQLStore(db, Postgres, WithClock(func() time.Time { return fixedNow }))
	return store, mock
}

var meetingColumnNames = []string{
	"id", "user_id", "title", "description", "audio_url", "transcript", "transcript_id", "summary",
	"action_items", "participants", "duration", "language", "translations", "recorded_at", "created_at", "updated_at",
}

func TestRebind(t *testing.T) {
	pgStore := NewSQLStore(nil, Postgres)
	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2", pgStore.rebind("SELECT * FROM t WHERE a = ? AND b = ?"))

	sqliteStore := NewSQLStore(nil, SQLite)
	assert.Equal(t, "SELECT * FROM t WHERE a = ?", sqliteStore.rebind("SELECT * FROM t WHERE a = ?"))
}

func TestCreateMeeting(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meetings (")).
		WithArgs("m-1", "u-1", "Weekly sync", nil, "audio/u-1/m-1.mp3", nil, nil, nil,
			"[]", "[]", 0, nil, "{}", nil, fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := &model.Meeting{ID: "m-1", UserID: "u-1", Title: "Weekly sync", AudioURL: "audio/u-1/m-1.mp3"}
	require.NoError(t, store.CreateMeeting(context.Background(), m))
	assert.Equal(t, fixedNow, m.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMeetingDecodesJSONColumns(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows(meetingColumnNames).AddRow(
		"m-1", "u-1", "Weekly sync", nil, "audio/key", "hello world", nil,
		`{"overview":"ok","key_points":["a"],"decisions":[],"next_steps":[]}`,
		`[{"task":"ship","priority":"high","completed":false}]`,
		`["Speaker A","Speaker B"]`, 120, "en", `{}`, nil, fixedNow, fixedNow,
	)
	mock.ExpectQuery(regexp.QuoteMeta("FROM meetings WHERE id = $1")).WithArgs("m-1").WillReturnRows(rows)

	m, err := store.GetMeeting(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Equal(t, "hello world", *m.Transcript)
	assert.Nil(t, m.TranscriptID)
	require.NotNil(t, m.Summary)
	assert.Equal(t, "ok", m.Summary.Overview)
	assert.Equal(t, []string{"Speaker A", "Speaker B"}, m.Participants)
	require.Len(t, m.ActionItems, 1)
	assert.Equal(t, model.PriorityHigh, m.ActionItems[0].Priority)
	assert.Equal(t, "en", *m.Language)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMeetingNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM meetings WHERE id = $1")).
		WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := store.GetMeeting(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClaimTranscriptJob(t *testing.T) {
	testCases := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"first caller wins", 1, true},
		{"job already recorded", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			mock.ExpectExec("(?s)"+regexp.QuoteMeta("UPDATE meetings SET transcript_id = $1, updated_at = $2")+
				".*"+regexp.QuoteMeta("transcript_id IS NULL")).
				WithArgs("tx-1", fixedNow, "m-1").
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			claimed, err := store.ClaimTranscriptJob(context.Background(), "m-1", "tx-1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, claimed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCompleteTranscriptionIsConditional(t *testing.T) {
	store, mock := newMockStore(t)
	lang := "en"

	mock.ExpectExec("(?s)"+regexp.QuoteMeta("transcript_id = NULL")+".*"+regexp.QuoteMeta("(transcript IS NULL OR transcript = '')")).
		WithArgs("text", `["Speaker A"]`, "en", 90, 90, fixedNow, "m-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("transcript_id = NULL")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	completion := model.TranscriptionCompletion{
		Transcript: "text", Participants: []string{"Speaker A"}, Language: &lang, Duration: 90,
	}
	wrote, err := store.CompleteTranscription(context.Background(), "m-1", completion)
	require.NoError(t, err)
	assert.True(t, wrote)

	wrote, err = store.CompleteTranscription(context.Background(), "m-1", completion)
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateMeetingBuildsPartialSet(t *testing.T) {
	store, mock := newMockStore(t)
	title := "Renamed"

	mock.ExpectExec(regexp.QuoteMeta("UPDATE meetings SET updated_at = $1, title = $2 WHERE id = $3")).
		WithArgs(fixedNow, "Renamed", "m-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := store.UpdateMeeting(context.Background(), "m-1", model.MeetingPatch{Title: &title})
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveTranslationMergesLanguages(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT translations FROM meetings WHERE id = $1 FOR UPDATE")).
		WithArgs("m-1").
		WillReturnRows(sqlmock.NewRows([]string{"translations"}).AddRow(`{"fr":{"action_items":[],"translated_at":"2024-01-01T00:00:00Z"}}`))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE meetings SET translations = $1")).
		WithArgs(sqlmock.AnyArg(), fixedNow, "m-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.SaveTranslation(context.Background(), "m-1", "de", model.Translation{
		Summary:      &model.Summary{Overview: "Überblick"},
		ActionItems:  []model.ActionItem{},
		TranslatedAt: fixedNow,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertNotesReturnsIncrementedVersion(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("version = meeting_notes.version + 1")).
		WithArgs("m-1", "tok", "second draft", "Bob", "#ff0000", fixedNow).
		WillReturnRows(sqlmock.NewRows([]string{"meeting_id", "share_token", "content", "version", "edited_by", "editor_color", "updated_at"}).
			AddRow("m-1", "tok", "second draft", 2, "Bob", "#ff0000", fixedNow))

	notes, err := store.UpsertNotes(context.Background(), &model.Notes{
		MeetingID: "m-1", ShareToken: "tok", Content: "second draft", EditedBy: "Bob", EditorColor: "#ff0000",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, notes.Version)
	assert.Equal(t, "second draft", notes.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDefaultTemplateClearsPrevious(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE meeting_templates SET is_default = $1")).
		WithArgs(false, fixedNow, "u-1", true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meeting_templates")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.CreateTemplate(context.Background(), &model.Template{
		ID: "t-1", UserID: "u-1", Name: "Standup", TitlePattern: "{date} standup", IsDefault: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTemplateRollsBackOnFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO meeting_templates")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.CreateTemplate(context.Background(), &model.Template{ID: "t-1", UserID: "u-1", Name: "x", TitlePattern: "x"})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueViolationMapsToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	duplicate := errors.New("duplicate key")
	store := NewSQLStore(db, Postgres, WithUniqueViolation(func(err error) bool { return errors.Is(err, duplicate) }))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO shared_meetings")).WillReturnError(duplicate)

	err = store.CreateShare(context.Background(), &model.Share{Token: "tok", MeetingID: "m-1", UserID: "u-1"})
	assert.True(t, apperrors.IsConflict(err))
}

func TestDeleteMeetingNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM meetings WHERE id = $1")).
		WithArgs("m-404").WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteMeeting(context.Background(), "m-404")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestPingWrapsConnectionError(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	store := NewSQLStore(db, Postgres)

	err = store.Ping(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrDatabaseConnection))
}
