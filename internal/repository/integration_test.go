//go:build integration

package repository

import (
	"context"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/user-directory/engine/internal/migrations"
	"github.com/user-directory/engine/internal/models"
	"github.com/user-directory/engine/internal/schema"
	"github.com/user-directory/engine/pkg/database"
	"github.com/user-directory/engine/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("error", "json"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("users_test"),
		tcpostgres.WithUsername("users"),
		tcpostgres.WithPassword("users"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.OpenPostgres(ctx, dsn, database.PoolOptions{
		MaxOpenConns:    4,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, migrations.Up(ctx, sqlDB))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, names ...[2]string) {
	t.Helper()
	w := NewUserWriter(db)
	for i, n := range names {
		first, last := n[0], n[1]
		email := first + "." + last + "@example.com"
		country := "France"
		if i%2 == 0 {
			country = "United States"
		}
		u := &models.User{FirstName: &first, LastName: &last, Email: &email}
		u.Address.Country = &country
		require.NoError(t, w.Insert(context.Background(), schema.Flatten(u)))
	}
}

func TestIntegrationTableMatchesSchema(t *testing.T) {
	db := startPostgres(t)

	base := baseRepository{db: db}
	rows, err := base.queryRows(context.Background(), "list columns",
		`SELECT column_name FROM information_schema.columns WHERE table_name = ?`, usersTable)
	require.NoError(t, err)
	cols := make([]string, 0, len(rows))
	for _, r := range rows {
		cols = append(cols, r["column_name"].(string))
	}
	sort.Strings(cols)

	want := make([]string, 0, len(schema.Fields()))
	for _, f := range schema.Fields() {
		want = append(want, f.Column)
	}
	sort.Strings(want)
	require.Equal(t, want, cols)
}

func TestIntegrationCountMatchesUnpaginatedFetch(t *testing.T) {
	db := startPostgres(t)
	seedUsers(t, db,
		[2]string{"Emily", "Johnson"},
		[2]string{"Michael", "Williams"},
		[2]string{"Sophia", "Brown"},
		[2]string{"James", "Davis"},
		[2]string{"Emma", "Miller"},
	)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, f := range []models.UserFilter{
		{},
		{Search: strPtr("em")},
		{Country: strPtr("france")},
		{Search: strPtr("em"), Country: strPtr("united")},
	} {
		q := BuildUserQuery(f)
		rows, err := repo.List(ctx, q)
		require.NoError(t, err)
		total, err := repo.Count(ctx, q)
		require.NoError(t, err)
		require.Equal(t, int64(len(rows)), total)
	}
}

func TestIntegrationOrderingIsStableAcrossPages(t *testing.T) {
	db := startPostgres(t)
	seedUsers(t, db,
		[2]string{"A", "One"}, [2]string{"B", "Two"}, [2]string{"C", "Three"},
		[2]string{"D", "Four"}, [2]string{"E", "Five"},
	)
	// Identical timestamps leave id as the only tiebreaker.
	require.NoError(t, db.Exec(`UPDATE users SET created_at = '2024-01-01T00:00:00Z'`).Error)

	repo := NewUserRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, BuildUserQuery(models.UserFilter{}))
	require.NoError(t, err)
	require.Len(t, all, 5)

	var paged []schema.Row
	limit := 2
	for offset := 0; offset < 5; offset += limit {
		page, err := repo.List(ctx, BuildUserQuery(models.UserFilter{Limit: &limit, Offset: offset}))
		require.NoError(t, err)
		paged = append(paged, page...)
	}
	require.Len(t, paged, 5)
	for i := range all {
		require.Equal(t, all[i]["id"], paged[i]["id"])
		if i > 0 {
			require.Less(t, all[i-1]["id"].(int64), all[i]["id"].(int64))
		}
	}
}

func TestIntegrationWildcardsMatchLiterally(t *testing.T) {
	db := startPostgres(t)
	seedUsers(t, db, [2]string{"100%", "Real"}, [2]string{"1000", "Fake"})
	repo := NewUserRepository(db)

	rows, err := repo.List(context.Background(), BuildUserQuery(models.UserFilter{Search: strPtr("100%")}))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "100%", rows[0]["first_name"])
}

func TestIntegrationGetByID(t *testing.T) {
	db := startPostgres(t)
	seedUsers(t, db, [2]string{"Emily", "Johnson"})
	repo := NewUserRepository(db)

	row, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Emily", row["first_name"])
	require.NotContains(t, row, "password")

	_, err = repo.GetByID(context.Background(), 999999)
	require.Error(t, err)
}

func strPtr(s string) *string { return &s }
