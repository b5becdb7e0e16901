package migrate

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/app/repository"
)

func TestMigrationsUseDialectTypes(t *testing.T) {
	pg := Migrations(repository.Postgres)
	lite := Migrations(repository.SQLite)
	require.Len(t, pg, len(lite))

	assert.Contains(t, pg[0].Statements[0], "summary JSONB")
	assert.Contains(t, pg[0].Statements[0], "created_at TIMESTAMPTZ")
	assert.Contains(t, lite[0].Statements[0], "summary TEXT")
	assert.Contains(t, pg[0].Statements[0], "translations JSONB NOT NULL DEFAULT '{}'")

	placeholder := regexp.MustCompile(`\{[a-z]+\}`)
	for _, migrations := range [][]Migration{pg, lite} {
		for _, m := range migrations {
			for _, stmt := range m.Statements {
				assert.False(t, placeholder.MatchString(stmt), "unexpanded placeholder in migration %d: %s", m.Version, placeholder.FindString(stmt))
			}
		}
	}
}

func TestUpSkipsAppliedVersions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS schema_migrations")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT MAX(version) FROM schema_migrations")).
		WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(2))

	mock.ExpectBegin()
	for range Migrations(repository.Postgres)[2].Statements {
		mock.ExpectExec(".+").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schema_migrations (version) VALUES ($1)")).
		WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := Up(context.Background(), db, repository.Postgres, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}
