package repository

import (
	"context"
	"database/sql"
	"fmt"

	"meetingmind/internal/app/model"
)

const templateColumns = `id, user_id, name, title_pattern, description_pattern, is_default, created_at, updated_at`

// CreateTemplate inserts a template; a new default clears the user's previous default in the same transaction
func (s *SQLStore) CreateTemplate(ctx context.Context, t *model.Template) error {
	now := s.now()
	t.CreatedAt = now
	t.UpdatedAt = now

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if t.IsDefault {
			if err := s.clearDefault(ctx, tx, t.UserID); err != nil {
				return err
			}
		}
		query := s.rebind(`INSERT INTO meeting_templates (` + templateColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		_, err := tx.ExecContext(ctx, query,
			t.ID, t.UserID, t.Name, t.TitlePattern, nullString(t.DescriptionPattern), t.IsDefault, t.CreatedAt, t.UpdatedAt,
		)
		return s.mapError(err, "template", t.ID)
	})
}

// GetTemplate loads one template
func (s *SQLStore) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	query := s.rebind(`SELECT ` + templateColumns + ` FROM meeting_templates WHERE id = ?`)
	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err, "template", id)
	}
	return t, nil
}

// ListTemplates returns a user's templates, default first then by name
func (s *SQLStore) ListTemplates(ctx context.Context, userID string) ([]model.Template, error) {
	query := s.rebind(`SELECT ` + templateColumns + ` FROM meeting_templates WHERE user_id = ?
		ORDER BY is_default DESC, name ASC`)
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, *t)
	}
	return templates, rows.Err()
}

// UpdateTemplate saves a template, keeping at most one default per user
func (s *SQLStore) UpdateTemplate(ctx context.Context, t *model.Template) error {
	t.UpdatedAt = s.now()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if t.IsDefault {
			if err := s.clearDefault(ctx, tx, t.UserID); err != nil {
				return err
			}
		}
		query := s.rebind(`UPDATE meeting_templates
			SET name = ?, title_pattern = ?, description_pattern = ?, is_default = ?, updated_at = ?
			WHERE id = ?`)
		res, err := tx.ExecContext(ctx, query,
			t.Name, t.TitlePattern, nullString(t.DescriptionPattern), t.IsDefault, t.UpdatedAt, t.ID,
		)
		if err != nil {
			return s.mapError(err, "template", t.ID)
		}
		return requireAffected(res, "template", t.ID)
	})
}

// DeleteTemplate removes a template
func (s *SQLStore) DeleteTemplate(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM meeting_templates WHERE id = ?`), id)
	if err != nil {
		return s.mapError(err, "template", id)
	}
	return requireAffected(res, "template", id)
}

// GetDefaultTemplate returns the user's default template
func (s *SQLStore) GetDefaultTemplate(ctx context.Context, userID string) (*model.Template, error) {
	query := s.rebind(`SELECT ` + templateColumns + ` FROM meeting_templates WHERE user_id = ? AND is_default = ?`)
	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, userID, true))
	if err != nil {
		return nil, s.mapError(err, "default template", userID)
	}
	return t, nil
}

func (s *SQLStore) clearDefault(ctx context.Context, tx *sql.Tx, userID string) error {
	query := s.rebind(`UPDATE meeting_templates SET is_default = ?, updated_at = ? WHERE user_id = ? AND is_default = ?`)
	if _, err := tx.ExecContext(ctx, query, false, s.now(), userID, true); err != nil {
		return fmt.Errorf("clear default template: %w", err)
	}
	return nil
}

func scanTemplate(row rowScanner) (*model.Template, error) {
	var (
		t           model.Template
		description sql.NullString
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &t.TitlePattern, &description, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.DescriptionPattern = stringPtr(description)
	return &t, nil
}
