package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/user-directory/engine/internal/schema"
)

// UserWriter loads rows into the users table. Only the import tooling uses it;
// the API is read-only.
type UserWriter interface {
	Insert(ctx context.Context, row schema.Row) error
	Reset(ctx context.Context) error
}

type userWriter struct {
	baseRepository
	insertSQL string
	columns   []string
}

func NewUserWriter(db *gorm.DB) UserWriter {
	cols := schema.InsertColumns()
	return &userWriter{
		baseRepository: baseRepository{db: db},
		insertSQL:      insertUserSQL(cols),
		columns:        cols,
	}
}

var _ UserWriter = (*userWriter)(nil)

func insertUserSQL(cols []string) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return "INSERT INTO " + usersTable + " (" + strings.Join(cols, ", ") + ") VALUES (" + marks + ")"
}

// Insert writes one row. Columns missing from row are stored as NULL.
func (w *userWriter) Insert(ctx context.Context, row schema.Row) error {
	args := make([]any, len(w.columns))
	for i, c := range w.columns {
		args[i] = row[c]
	}
	if err := w.db.WithContext(ctx).Exec(w.insertSQL, args...).Error; err != nil {
		return storeError(err, "insert user")
	}
	return nil
}

// Reset removes every row and restarts id allocation.
func (w *userWriter) Reset(ctx context.Context) error {
	if err := w.db.WithContext(ctx).Exec("TRUNCATE TABLE " + usersTable + " RESTART IDENTITY").Error; err != nil {
		return storeError(err, "reset users")
	}
	return nil
}
