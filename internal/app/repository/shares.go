package repository

import (
	"context"
	"database/sql"
	"fmt"

	"meetingmind/internal/app/model"
)

// CreateShare inserts a share link
func (s *SQLStore) CreateShare(ctx context.Context, sh *model.Share) error {
	sh.CreatedAt = s.now()
	query := s.rebind(`INSERT INTO shared_meetings (token, meeting_id, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	_, err := s.db.ExecContext(ctx, query, sh.Token, sh.MeetingID, sh.UserID, nullTime(sh.ExpiresAt), sh.CreatedAt)
	return s.mapError(err, "share", sh.Token)
}

// GetShare loads a share link by token
func (s *SQLStore) GetShare(ctx context.Context, token string) (*model.Share, error) {
	query := s.rebind(`SELECT token, meeting_id, user_id, expires_at, created_at FROM shared_meetings WHERE token = ?`)
	sh, err := scanShare(s.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, s.mapError(err, "share", token)
	}
	return sh, nil
}

// ListShares returns every share link of a meeting, newest first
func (s *SQLStore) ListShares(ctx context.Context, meetingID string) ([]model.Share, error) {
	query := s.rebind(`SELECT token, meeting_id, user_id, expires_at, created_at FROM shared_meetings
		WHERE meeting_id = ? ORDER BY created_at DESC`)
	rows, err := s.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	shares := []model.Share{}
	for rows.Next() {
		sh, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, *sh)
	}
	return shares, rows.Err()
}

// DeleteShare revokes a share link
func (s *SQLStore) DeleteShare(ctx context.Context, token string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM shared_meetings WHERE token = ?`), token)
	if err != nil {
		return s.mapError(err, "share", token)
	}
	return requireAffected(res, "share", token)
}

func scanShare(row rowScanner) (*model.Share, error) {
	var (
		sh        model.Share
		expiresAt sql.NullTime
	)
	if err := row.Scan(&sh.Token, &sh.MeetingID, &sh.UserID, &expiresAt, &sh.CreatedAt); err != nil {
		return nil, err
	}
	sh.ExpiresAt = timePtr(expiresAt)
	return &sh, nil
}

// GetNotes loads the shared notes for a (meeting, token) pair
func (s *SQLStore) GetNotes(ctx context.Context, meetingID, shareToken string) (*model.Notes, error) {
	query := s.rebind(`SELECT meeting_id, share_token, content, version, edited_by, editor_color, updated_at
		FROM meeting_notes WHERE meeting_id = ? AND share_token = ?`)
	var n model.Notes
	err := s.db.QueryRowContext(ctx, query, meetingID, shareToken).Scan(
		&n.MeetingID, &n.ShareToken, &n.Content, &n.Version, &n.EditedBy, &n.EditorColor, &n.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err, "notes", shareToken)
	}
	return &n, nil
}

// UpsertNotes writes the document unconditionally: the first write creates version 1 and
// every later write replaces the content and bumps the version by one
func (s *SQLStore) UpsertNotes(ctx context.Context, n *model.Notes) (*model.Notes, error) {
	query := s.rebind(`INSERT INTO meeting_notes
			(meeting_id, share_token, content, version, edited_by, editor_color, updated_at)
		VALUES (?, ?, ?, 1, ?, ?, ?)
		ON CONFLICT (meeting_id, share_token) DO UPDATE SET
			content = excluded.content,
			version = meeting_notes.version + 1,
			edited_by = excluded.edited_by,
			editor_color = excluded.editor_color,
			updated_at = excluded.updated_at
		RETURNING meeting_id, share_token, content, version, edited_by, editor_color, updated_at`)

	var out model.Notes
	err := s.db.QueryRowContext(ctx, query,
		n.MeetingID, n.ShareToken, n.Content, n.EditedBy, n.EditorColor, s.now(),
	).Scan(&out.MeetingID, &out.ShareToken, &out.Content, &out.Version, &out.EditedBy, &out.EditorColor, &out.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err, "notes", n.ShareToken)
	}
	return &out, nil
}
