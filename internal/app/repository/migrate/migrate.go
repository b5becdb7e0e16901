// Package migrate creates and upgrades the relational schema for both supported dialects.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"meetingmind/internal/app/repository"
)

// Migration is one ordered schema step
type Migration struct {
	Version     int
	Description string
	Statements  []string
}

type columnTypes struct {
	json      string
	timestamp string
	boolean   string
	float     string
}

func typesFor(dialect repository.Dialect) columnTypes {
	if dialect == repository.Postgres {
		return columnTypes{json: "JSONB", timestamp: "TIMESTAMPTZ", boolean: "BOOLEAN", float: "DOUBLE PRECISION"}
	}
	return columnTypes{json: "TEXT", timestamp: "TIMESTAMP", boolean: "BOOLEAN", float: "REAL"}
}

// Migrations returns the ordered migrations for a dialect
func Migrations(dialect repository.Dialect) []Migration {
	t := typesFor(dialect)
	expand := func(stmt string) string {
		return strings.NewReplacer(
			"{json}", t.json,
			"{ts}", t.timestamp,
			"{bool}", t.boolean,
			"{float}", t.float,
		).Replace(stmt)
	}

	raw := []Migration{
		{
			Version:     1,
			Description: "meetings",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS meetings (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					title TEXT NOT NULL,
					description TEXT,
					audio_url TEXT NOT NULL DEFAULT '',
					transcript TEXT,
					transcript_id TEXT,
					summary {json},
					action_items {json} NOT NULL DEFAULT '[]',
					participants {json} NOT NULL DEFAULT '[]',
					duration INTEGER NOT NULL DEFAULT 0,
					language TEXT,
					translations {json} NOT NULL DEFAULT '{}',
					recorded_at {ts},
					created_at {ts} NOT NULL,
					updated_at {ts} NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_meetings_user_created ON meetings (user_id, created_at DESC)`,
				`CREATE INDEX IF NOT EXISTS idx_meetings_transcript_id ON meetings (transcript_id)`,
			},
		},
		{
			Version:     2,
			Description: "comments and share links",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS comments (
					id TEXT PRIMARY KEY,
					meeting_id TEXT NOT NULL REFERENCES meetings (id) ON DELETE CASCADE,
					user_id TEXT,
					author_name TEXT NOT NULL,
					author_color TEXT NOT NULL DEFAULT '',
					content TEXT NOT NULL,
					selection {json} NOT NULL,
					parent_id TEXT REFERENCES comments (id) ON DELETE CASCADE,
					share_token TEXT,
					created_at {ts} NOT NULL,
					updated_at {ts} NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_comments_meeting ON comments (meeting_id, created_at)`,
				`CREATE TABLE IF NOT EXISTS shared_meetings (
					token TEXT PRIMARY KEY,
					meeting_id TEXT NOT NULL REFERENCES meetings (id) ON DELETE CASCADE,
					user_id TEXT NOT NULL,
					expires_at {ts},
					created_at {ts} NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_shared_meetings_meeting ON shared_meetings (meeting_id)`,
			},
		},
		{
			Version:     3,
			Description: "notes, insights and templates",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS meeting_notes (
					meeting_id TEXT NOT NULL REFERENCES meetings (id) ON DELETE CASCADE,
					share_token TEXT NOT NULL REFERENCES shared_meetings (token) ON DELETE CASCADE,
					content TEXT NOT NULL DEFAULT '',
					version INTEGER NOT NULL DEFAULT 1,
					edited_by TEXT NOT NULL DEFAULT '',
					editor_color TEXT NOT NULL DEFAULT '',
					updated_at {ts} NOT NULL,
					PRIMARY KEY (meeting_id, share_token)
				)`,
				`CREATE TABLE IF NOT EXISTS meeting_insights (
					meeting_id TEXT PRIMARY KEY REFERENCES meetings (id) ON DELETE CASCADE,
					speaker_metrics {json} NOT NULL DEFAULT '[]',
					sentiment_timeline {json} NOT NULL DEFAULT '[]',
					interruptions {json} NOT NULL DEFAULT '[]',
					engagement_score {float} NOT NULL DEFAULT 0,
					generated_at {ts} NOT NULL
				)`,
				`CREATE TABLE IF NOT EXISTS meeting_templates (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL,
					name TEXT NOT NULL,
					title_pattern TEXT NOT NULL,
					description_pattern TEXT,
					is_default {bool} NOT NULL DEFAULT FALSE,
					created_at {ts} NOT NULL,
					updated_at {ts} NOT NULL
				)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_templates_one_default ON meeting_templates (user_id) WHERE is_default`,
			},
		},
	}

	out := make([]Migration, len(raw))
	for i, m := range raw {
		stmts := make([]string, len(m.Statements))
		for j, stmt := range m.Statements {
			stmts[j] = expand(stmt)
		}
		out[i] = Migration{Version: m.Version, Description: m.Description, Statements: stmts}
	}
	return out
}

// Up applies every migration newer than the recorded schema version and returns how many ran
func Up(ctx context.Context, db *sql.DB, dialect repository.Dialect, logger *zap.Logger) (int, error) {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	current, err := CurrentVersion(ctx, db)
	if err != nil {
		return 0, err
	}

	insertVersion := "INSERT INTO schema_migrations (version) VALUES (?)"
	if dialect == repository.Postgres {
		insertVersion = "INSERT INTO schema_migrations (version) VALUES ($1)"
	}

	applied := 0
	for _, m := range Migrations(dialect) {
		if m.Version <= current {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		for _, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				tx.Rollback()
				return applied, fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
			}
		}
		if _, err := tx.ExecContext(ctx, insertVersion, m.Version); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		logger.Info("applied migration", zap.Int("version", m.Version), zap.String("description", m.Description))
		applied++
	}
	return applied, nil
}

// CurrentVersion returns the highest applied migration, or 0
func CurrentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}
