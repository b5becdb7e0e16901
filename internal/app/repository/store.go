package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "meetingmind/internal/app/errors"
)

// Dialect identifies the SQL flavour behind a SQLStore
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite3"
)

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

// SQLStore implements Store over database/sql for Postgres and SQLite
type SQLStore struct {
	db           *sql.DB
	dialect      Dialect
	placeholders PlaceholderFunc
	isUnique     func(error) bool
	now          func() time.Time
}

// StoreOption customises a SQLStore
type StoreOption func(*SQLStore)

// WithUniqueViolation installs the driver-specific unique constraint check
func WithUniqueViolation(fn func(error) bool) StoreOption {
	return func(s *SQLStore) {
		s.isUnique = fn
	}
}

// WithClock replaces the time source used for created/updated timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *SQLStore) {
		s.now = now
	}
}

// NewSQLStore wraps an open database handle
func NewSQLStore(db *sql.DB, dialect Dialect, opts ...StoreOption) *SQLStore {
	var placeholders PlaceholderFunc
	switch dialect {
	case Postgres:
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(int) string { return "?" }
	}

	s := &SQLStore{
		db:           db,
		dialect:      dialect,
		placeholders: placeholders,
		isUnique:     func(error) bool { return false },
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ Store = (*SQLStore)(nil)

// DB returns the underlying database connection
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL flavour of the store
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Ping verifies the database is reachable
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperrors.Wrap(apperrors.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind rewrites "?" placeholders into the dialect's form
func (s *SQLStore) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(s.placeholders(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// mapError converts driver errors into domain sentinels
func (s *SQLStore) mapError(err error, itemType, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return apperrors.NotFound(itemType, id)
	case s.isUnique(err):
		return apperrors.Conflict(fmt.Sprintf("%s %s already exists", itemType, id))
	default:
		return fmt.Errorf("%s %s: %w", itemType, id, err)
	}
}

func requireAffected(res sql.Result, itemType, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound(itemType, id)
	}
	return nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullTime(p *time.Time) sql.NullTime {
	if p == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *p, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	v := nt.Time
	return &v
}
