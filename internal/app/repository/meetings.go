package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"meetingmind/internal/app/model"
)

const meetingColumns = `id, user_id, title, description, audio_url, transcript, transcript_id, summary,
	action_items, participants, duration, language, translations, recorded_at, created_at, updated_at`

// CreateMeeting inserts a new meeting; CreatedAt and UpdatedAt are set when zero
func (s *SQLStore) CreateMeeting(ctx context.Context, m *model.Meeting) error {
	now := s.now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if m.ActionItems == nil {
		m.ActionItems = []model.ActionItem{}
	}
	if m.Participants == nil {
		m.Participants = []string{}
	}
	if m.Translations == nil {
		m.Translations = map[string]model.Translation{}
	}

	summary, err := encodeSummary(m.Summary)
	if err != nil {
		return err
	}
	items, err := encodeJSON(m.ActionItems)
	if err != nil {
		return err
	}
	participants, err := encodeJSON(m.Participants)
	if err != nil {
		return err
	}
	translations, err := encodeJSON(m.Translations)
	if err != nil {
		return err
	}

	query := s.rebind(`INSERT INTO meetings (` + meetingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.Title, nullString(m.Description), m.AudioURL,
		nullString(m.Transcript), nullString(m.TranscriptID), summary,
		items, participants, m.Duration, nullString(m.Language), translations,
		nullTime(m.RecordedAt), m.CreatedAt, m.UpdatedAt,
	)
	return s.mapError(err, "meeting", m.ID)
}

// GetMeeting loads one meeting by id
func (s *SQLStore) GetMeeting(ctx context.Context, id string) (*model.Meeting, error) {
	return s.getMeeting(ctx, s.db, id, "")
}

func (s *SQLStore) getMeeting(ctx context.Context, q queryer, id, suffix string) (*model.Meeting, error) {
	query := s.rebind(`SELECT ` + meetingColumns + ` FROM meetings WHERE id = ?` + suffix)
	m, err := scanMeeting(q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err, "meeting", id)
	}
	return m, nil
}

// ListMeetings returns one page of a user's meetings, newest first, with the total count
func (s *SQLStore) ListMeetings(ctx context.Context, filter model.MeetingFilter) ([]model.Meeting, int, error) {
	where := "user_id = ?"
	args := []interface{}{filter.UserID}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where += " AND LOWER(title) LIKE ?"
		args = append(args, "%"+strings.ToLower(search)+"%")
	}

	var total int
	countQuery := s.rebind("SELECT COUNT(*) FROM meetings WHERE " + where)
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count meetings: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query := s.rebind(`SELECT ` + meetingColumns + ` FROM meetings WHERE ` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`)
	rows, err := s.db.QueryContext(ctx, query, append(args, limit, filter.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := []model.Meeting{}
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}
	return meetings, total, nil
}

// UpdateMeeting applies the non-nil fields of patch
func (s *SQLStore) UpdateMeeting(ctx context.Context, id string, patch model.MeetingPatch) (*model.Meeting, error) {
	sets := []string{"updated_at = ?"}
	args := []interface{}{s.now()}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.ActionItems != nil {
		items, err := encodeJSON(patch.ActionItems)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "action_items = ?")
		args = append(args, items)
	}

	query := s.rebind("UPDATE meetings SET " + strings.Join(sets, ", ") + " WHERE id = ?")
	res, err := s.db.ExecContext(ctx, query, append(args, id)...)
	if err != nil {
		return nil, s.mapError(err, "meeting", id)
	}
	if err := requireAffected(res, "meeting", id); err != nil {
		return nil, err
	}
	return s.GetMeeting(ctx, id)
}

// DeleteMeeting removes a meeting; comments, shares, notes and insights cascade
func (s *SQLStore) DeleteMeeting(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM meetings WHERE id = ?"), id)
	if err != nil {
		return s.mapError(err, "meeting", id)
	}
	return requireAffected(res, "meeting", id)
}

// ClaimTranscriptJob is a compare-and-swap on transcript_id
func (s *SQLStore) ClaimTranscriptJob(ctx context.Context, id, transcriptID string) (bool, error) {
	query := s.rebind(`UPDATE meetings SET transcript_id = ?, updated_at = ?
		WHERE id = ? AND transcript_id IS NULL AND (transcript IS NULL OR transcript = '')`)
	res, err := s.db.ExecContext(ctx, query, transcriptID, s.now(), id)
	if err != nil {
		return false, s.mapError(err, "meeting", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// ResetTranscriptJob clears transcript_id
func (s *SQLStore) ResetTranscriptJob(ctx context.Context, id string) error {
	query := s.rebind(`UPDATE meetings SET transcript_id = NULL, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, s.now(), id)
	if err != nil {
		return s.mapError(err, "meeting", id)
	}
	return requireAffected(res, "meeting", id)
}

// CompleteTranscription writes the transcript only while none is stored
func (s *SQLStore) CompleteTranscription(ctx context.Context, id string, c model.TranscriptionCompletion) (bool, error) {
	participants, err := encodeJSON(c.Participants)
	if err != nil {
		return false, err
	}

	query := s.rebind(`UPDATE meetings
		SET transcript = ?, participants = ?, language = COALESCE(?, language),
			duration = CASE WHEN ? > 0 THEN ? ELSE duration END,
			transcript_id = NULL, updated_at = ?
		WHERE id = ? AND (transcript IS NULL OR transcript = '')`)
	res, err := s.db.ExecContext(ctx, query,
		c.Transcript, participants, nullString(c.Language),
		c.Duration, c.Duration, s.now(), id,
	)
	if err != nil {
		return false, s.mapError(err, "meeting", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}

// SaveSummary stores the summary and extracted action items
func (s *SQLStore) SaveSummary(ctx context.Context, id string, summary *model.Summary, items []model.ActionItem) error {
	encoded, err := encodeSummary(summary)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.ActionItem{}
	}
	encodedItems, err := encodeJSON(items)
	if err != nil {
		return err
	}

	query := s.rebind(`UPDATE meetings SET summary = ?, action_items = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, encoded, encodedItems, s.now(), id)
	if err != nil {
		return s.mapError(err, "meeting", id)
	}
	return requireAffected(res, "meeting", id)
}

// SaveTranslation merges one language into the meeting's translation cache
func (s *SQLStore) SaveTranslation(ctx context.Context, id, language string, t model.Translation) error {
	lock := ""
	if s.dialect == Postgres {
		lock = " FOR UPDATE"
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var raw []byte
		err := tx.QueryRowContext(ctx, s.rebind("SELECT translations FROM meetings WHERE id = ?"+lock), id).Scan(&raw)
		if err != nil {
			return s.mapError(err, "meeting", id)
		}

		translations := map[string]model.Translation{}
		if err := decodeJSON(raw, &translations); err != nil {
			return err
		}
		translations[language] = t

		encoded, err := encodeJSON(translations)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, s.rebind("UPDATE meetings SET translations = ?, updated_at = ? WHERE id = ?"),
			encoded, s.now(), id)
		return s.mapError(err, "meeting", id)
	})
}

func encodeSummary(summary *model.Summary) (sql.NullString, error) {
	if summary == nil {
		return sql.NullString{}, nil
	}
	encoded, err := encodeJSON(summary)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: encoded, Valid: true}, nil
}

func scanMeeting(row rowScanner) (*model.Meeting, error) {
	var (
		m                                     model.Meeting
		description, transcript, transcriptID sql.NullString
		summary, language                     sql.NullString
		items, participants, translations     []byte
		recordedAt                            sql.NullTime
	)

	err := row.Scan(
		&m.ID, &m.UserID, &m.Title, &description, &m.AudioURL, &transcript, &transcriptID, &summary,
		&items, &participants, &m.Duration, &language, &translations, &recordedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Description = stringPtr(description)
	m.Transcript = stringPtr(transcript)
	m.TranscriptID = stringPtr(transcriptID)
	m.Language = stringPtr(language)
	m.RecordedAt = timePtr(recordedAt)

	if summary.Valid && summary.String != "" {
		m.Summary = &model.Summary{}
		if err := decodeJSON([]byte(summary.String), m.Summary); err != nil {
			return nil, err
		}
	}
	m.ActionItems = []model.ActionItem{}
	if err := decodeJSON(items, &m.ActionItems); err != nil {
		return nil, err
	}
	m.Participants = []string{}
	if err := decodeJSON(participants, &m.Participants); err != nil {
		return nil, err
	}
	m.Translations = map[string]model.Translation{}
	if err := decodeJSON(translations, &m.Translations); err != nil {
		return nil, err
	}
	return &m, nil
}
