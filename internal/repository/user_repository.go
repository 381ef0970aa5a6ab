package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/user-directory/engine/internal/schema"
	appErr "github.com/user-directory/engine/pkg/errors"
)

// UserRepository reads flat user rows. It never writes.
type UserRepository interface {
	List(ctx context.Context, q UserQuery) ([]schema.Row, error)
	Count(ctx context.Context, q UserQuery) (int64, error)
	GetByID(ctx context.Context, id int64) (schema.Row, error)
	Ping(ctx context.Context) error
}

type userRepository struct {
	baseRepository
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{baseRepository{db: db}}
}

var _ UserRepository = (*userRepository)(nil)

func (r *userRepository) List(ctx context.Context, q UserQuery) ([]schema.Row, error) {
	query, args := q.Select()
	return r.queryRows(ctx, "list users", query, args...)
}

func (r *userRepository) Count(ctx context.Context, q UserQuery) (int64, error) {
	query, args := q.Count()
	return r.queryCount(ctx, "count users", query, args...)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (schema.Row, error) {
	rows, err := r.queryRows(ctx, "get user", selectUserByID(), id)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, appErr.New(appErr.CodeNotFound, "user not found").WithMeta("id", id)
	}
	return rows[0], nil
}

func (r *userRepository) Ping(ctx context.Context) error {
	return r.ping(ctx)
}
