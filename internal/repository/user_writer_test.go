package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/user-directory/engine/internal/schema"
	appErr "github.com/user-directory/engine/pkg/errors"
)

func newWriterWithMock(t *testing.T) (UserWriter, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 gormlogger.Discard,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewUserWriter(db), mock
}

func TestInsertUserSQLSkipsStoreManaged(t *testing.T) {
	sql := insertUserSQL(schema.InsertColumns())
	require.Contains(t, sql, "INSERT INTO users (first_name, last_name, email")
	require.NotContains(t, sql, "created_at")
	require.NotContains(t, sql, "(id,")
	require.Contains(t, sql, "password")
}

func TestInsertBindsEveryColumn(t *testing.T) {
	w, mock := newWriterWithMock(t)
	cols := schema.InsertColumns()

	row := schema.Row{"first_name": "Emily", "email": "emily@x.dev", "height": 170.5}
	args := make([]driver.Value, len(cols))
	for i, c := range cols {
		args[i] = row[c]
	}

	mock.ExpectExec(`^` + regexp.QuoteMeta("INSERT INTO users (first_name")).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, w.Insert(context.Background(), row))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertFailureIsInternal(t *testing.T) {
	w, mock := newWriterWithMock(t)
	mock.ExpectExec(`^INSERT INTO users`).WillReturnError(errors.New("duplicate key"))

	err := w.Insert(context.Background(), schema.Row{})
	require.True(t, appErr.IsCode(err, appErr.CodeInternal))
}

func TestReset(t *testing.T) {
	w, mock := newWriterWithMock(t)
	mock.ExpectExec(`^TRUNCATE TABLE users RESTART IDENTITY$`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, w.Reset(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
