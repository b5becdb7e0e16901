// Package pg opens the Postgres-backed store.
package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"meetingmind/internal/app/repository"
)

const uniqueViolation = "23505"

// Open connects to Postgres with the lib/pq driver and configures the pool
func Open(connectionString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// NewStore opens Postgres and wraps it in a SQLStore
func NewStore(connectionString string, opts ...repository.StoreOption) (*repository.SQLStore, error) {
	db, err := Open(connectionString)
	if err != nil {
		return nil, err
	}
	opts = append([]repository.StoreOption{repository.WithUniqueViolation(IsUniqueViolation)}, opts...)
	return repository.NewSQLStore(db, repository.Postgres, opts...), nil
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
