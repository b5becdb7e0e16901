// Package sqlite opens the SQLite-backed store used for local development.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"

	"meetingmind/internal/app/repository"
)

// Open creates the database file's directory if needed and opens it with foreign keys enabled
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc&_foreign_keys=on&_busy_timeout=5000", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// SQLite serialises writers; one connection avoids "database is locked" under concurrent requests
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewStore opens SQLite and wraps it in a SQLStore
func NewStore(path string, opts ...repository.StoreOption) (*repository.SQLStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	opts = append([]repository.StoreOption{repository.WithUniqueViolation(IsUniqueViolation)}, opts...)
	return repository.NewSQLStore(db, repository.SQLite, opts...), nil
}

// IsUniqueViolation reports whether err is a SQLite unique or primary key failure
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
