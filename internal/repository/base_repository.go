package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/user-directory/engine/internal/schema"
	appErr "github.com/user-directory/engine/pkg/errors"
)

// baseRepository runs raw statements on the shared pool and turns driver
// failures into AppErrors.
type baseRepository struct {
	db *gorm.DB
}

// queryRows runs a statement and collects each result row keyed by column.
// The connection goes back to the pool before queryRows returns.
func (r *baseRepository) queryRows(ctx context.Context, op, query string, args ...any) ([]schema.Row, error) {
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, storeError(err, op)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, storeError(err, op)
	}

	out := []schema.Row{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, storeError(err, op)
		}
		row := make(schema.Row, len(cols))
		for i, c := range cols {
			row[strings.ToLower(c)] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(err, op)
	}
	return out, nil
}

func (r *baseRepository) queryCount(ctx context.Context, op, query string, args ...any) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&total).Error; err != nil {
		return 0, storeError(err, op)
	}
	return total, nil
}

func (r *baseRepository) ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return storeError(err, "ping")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return storeError(err, "ping")
	}
	return nil
}

// storeError classifies a driver error. The message names the operation only;
// statement text and arguments stay in the wrapped error for logging.
func storeError(err error, op string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return appErr.Wrap(err, appErr.CodeDeadline, op+" timed out")
	case errors.Is(err, context.Canceled):
		return appErr.Wrap(err, appErr.CodeUnavailable, op+" canceled")
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return appErr.Wrap(err, appErr.CodeUnavailable, op+" failed: store unreachable")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		code := appErr.CodeInternal
		// class 08 connection exception, 57P operator intervention
		if strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P") {
			code = appErr.CodeUnavailable
		}
		return appErr.Wrap(err, code, op+" failed").WithMeta("sqlstate", pgErr.Code)
	}

	return appErr.Wrap(err, appErr.CodeInternal, op+" failed")
}
