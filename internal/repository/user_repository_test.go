package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/user-directory/engine/internal/models"
	appErr "github.com/user-directory/engine/pkg/errors"
)

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	return NewUserRepository(db), mock
}

func TestListScansRowsByColumn(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "first_name", "address_coordinates_lat", "bank_iban", "created_at"}).
		AddRow(int64(1), "Alice", 12.5, nil, created).
		AddRow(int64(2), "Bob", nil, "DE89370400440532013000", created)

	mock.ExpectQuery(`(?s)^SELECT id, first_name, .* FROM users WHERE \(CONCAT\(first_name, ' ', last_name\) ILIKE \$1 OR email ILIKE \$2 OR company_name ILIKE \$3 OR company_title ILIKE \$4\) ORDER BY created_at DESC, id ASC LIMIT \$5$`).
		WithArgs("%al%", "%al%", "%al%", "%al%", int64(2)).
		WillReturnRows(rows)

	limit := 2
	search := "al"
	got, err := repo.List(context.Background(), BuildUserQuery(models.UserFilter{Search: &search, Limit: &limit}))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0]["id"])
	assert.Equal(t, "Alice", got[0]["first_name"])
	assert.Equal(t, 12.5, got[0]["address_coordinates_lat"])
	assert.Nil(t, got[0]["bank_iban"])
	assert.Equal(t, "DE89370400440532013000", got[1]["bank_iban"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEmptyResultIsEmptySlice(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`^SELECT .* FROM users ORDER BY created_at DESC, id ASC$`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.List(context.Background(), BuildUserQuery(models.UserFilter{}))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUsesSamePredicate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	country := "united"
	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM users WHERE address_country ILIKE \$1$`).
		WithArgs("%united%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	limit := 10
	total, err := repo.Count(context.Background(), BuildUserQuery(models.UserFilter{Country: &country, Limit: &limit, Offset: 10}))
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`WHERE id = \$1$`).
		WithArgs(int64(999999)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name"}))

	_, err := repo.GetByID(context.Background(), 999999)
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestGetByIDFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"ID", "First_Name"}).AddRow(int64(5), "Eve"))

	row, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Eve", row["first_name"])
}

func TestStoreFailureIsInternal(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`^SELECT COUNT`).WillReturnError(errors.New("relation \"users\" does not exist"))

	_, err := repo.Count(context.Background(), BuildUserQuery(models.UserFilter{}))
	require.Error(t, err)
	assert.True(t, appErr.IsCode(err, appErr.CodeInternal))

	var ae *appErr.AppError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "count users failed", ae.Message)
}

func TestStoreErrorClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want appErr.Code
	}{
		{"deadline", context.DeadlineExceeded, appErr.CodeDeadline},
		{"canceled", context.Canceled, appErr.CodeUnavailable},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, appErr.CodeUnavailable},
		{"connection failure", &pgconn.PgError{Code: "08006"}, appErr.CodeUnavailable},
		{"syntax", &pgconn.PgError{Code: "42601"}, appErr.CodeInternal},
		{"other", errors.New("boom"), appErr.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := storeError(tc.err, "list users")
			assert.True(t, appErr.IsCode(err, tc.want), err)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
