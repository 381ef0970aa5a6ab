package services

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user-directory/engine/internal/models"
	"github.com/user-directory/engine/internal/repository"
	"github.com/user-directory/engine/internal/schema"
	"github.com/user-directory/engine/internal/transform"
	appErr "github.com/user-directory/engine/pkg/errors"
	"github.com/user-directory/engine/pkg/logger"
)

// UserService serves read-only user listings and lookups.
type UserService interface {
	ListUsers(ctx context.Context, filter models.UserFilter) (*models.UserList, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	Ready(ctx context.Context) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

var _ UserService = (*userService)(nil)

// ListUsers fetches one page and the total match count. The two statements
// come from the same UserQuery; if either fails the whole call fails.
func (s *userService) ListUsers(ctx context.Context, filter models.UserFilter) (*models.UserList, error) {
	q := repository.BuildUserQuery(filter)

	var (
		rows  []schema.Row
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := s.repo.List(gctx, q)
		rows = out
		return err
	})
	g.Go(func() error {
		n, err := s.repo.Count(gctx, q)
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		logger.L().Error("list users failed", append(filterFields(filter), zap.Error(err))...)
		return nil, err
	}

	users, err := transform.Users(rows)
	if err != nil {
		logger.L().Error("transform user rows failed", zap.Error(err))
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}

	return NewUserList(users, total, filter), nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !appErr.IsCode(err, appErr.CodeNotFound) {
			logger.L().Error("get user failed", zap.Int64("user_id", id), zap.Error(err))
		}
		return nil, err
	}
	u, err := transform.User(row)
	if err != nil {
		logger.L().Error("transform user row failed", zap.Int64("user_id", id), zap.Error(err))
		return nil, appErr.Wrap(err, appErr.CodeInternal, "get user failed")
	}
	return u, nil
}

func (s *userService) Ready(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// NewUserList wraps a page of users in the listing envelope. Pagination
// metadata is only set when the filter carried a limit; otherwise the page
// holds everything and limit reports the total.
func NewUserList(users []models.User, total int64, filter models.UserFilter) *models.UserList {
	out := &models.UserList{
		Users: users,
		Total: total,
		Skip:  filter.Offset,
		Limit: total,
	}
	if !filter.Paginated() || *filter.Limit <= 0 {
		return out
	}

	limit := int64(*filter.Limit)
	offset := int64(filter.Offset)
	hasMore := offset+limit < total
	page := offset/limit + 1
	totalPages := (total + limit - 1) / limit

	out.Limit = limit
	out.HasMore = &hasMore
	out.Page = &page
	out.TotalPages = &totalPages
	return out
}

// filterFields describes which filters were supplied without logging values.
func filterFields(f models.UserFilter) []zap.Field {
	fields := []zap.Field{
		zap.Bool("search", f.Search != nil),
		zap.Bool("country", f.Country != nil),
		zap.Bool("company", f.Company != nil),
		zap.Int("offset", f.Offset),
	}
	if f.Limit != nil {
		fields = append(fields, zap.Int("limit", *f.Limit))
	}
	return fields
}
