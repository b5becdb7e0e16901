package repository

import (
	"context"
	"database/sql"
	"fmt"

	"meetingmind/internal/app/model"
)

const commentColumns = `id, meeting_id, user_id, author_name, author_color, content, selection,
	parent_id, share_token, created_at, updated_at`

// CreateComment inserts a comment
func (s *SQLStore) CreateComment(ctx context.Context, c *model.Comment) error {
	now := s.now()
	c.CreatedAt = now
	c.UpdatedAt = now

	selection, err := encodeJSON(c.Selection)
	if err != nil {
		return err
	}

	query := s.rebind(`INSERT INTO comments (` + commentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = s.db.ExecContext(ctx, query,
		c.ID, c.MeetingID, nullString(c.UserID), c.AuthorName, c.AuthorColor, c.Content, selection,
		nullString(c.ParentID), nullString(c.ShareToken), c.CreatedAt, c.UpdatedAt,
	)
	return s.mapError(err, "comment", c.ID)
}

// GetComment loads one comment
func (s *SQLStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	query := s.rebind(`SELECT ` + commentColumns + ` FROM comments WHERE id = ?`)
	c, err := scanComment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err, "comment", id)
	}
	return c, nil
}

// ListComments returns a meeting's comments oldest first
func (s *SQLStore) ListComments(ctx context.Context, meetingID string) ([]model.Comment, error) {
	query := s.rebind(`SELECT ` + commentColumns + ` FROM comments WHERE meeting_id = ? ORDER BY created_at ASC`)
	rows, err := s.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return comments, nil
}

// UpdateComment replaces a comment's content
func (s *SQLStore) UpdateComment(ctx context.Context, id, content string) (*model.Comment, error) {
	query := s.rebind(`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`)
	res, err := s.db.ExecContext(ctx, query, content, s.now(), id)
	if err != nil {
		return nil, s.mapError(err, "comment", id)
	}
	if err := requireAffected(res, "comment", id); err != nil {
		return nil, err
	}
	return s.GetComment(ctx, id)
}

// DeleteComment removes a comment and, through the foreign key, its replies
func (s *SQLStore) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM comments WHERE id = ?`), id)
	if err != nil {
		return s.mapError(err, "comment", id)
	}
	return requireAffected(res, "comment", id)
}

func scanComment(row rowScanner) (*model.Comment, error) {
	var (
		c                            model.Comment
		userID, parentID, shareToken sql.NullString
		selection                    []byte
	)
	err := row.Scan(
		&c.ID, &c.MeetingID, &userID, &c.AuthorName, &c.AuthorColor, &c.Content, &selection,
		&parentID, &shareToken, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.UserID = stringPtr(userID)
	c.ParentID = stringPtr(parentID)
	c.ShareToken = stringPtr(shareToken)
	if err := decodeJSON(selection, &c.Selection); err != nil {
		return nil, err
	}
	return &c, nil
}
