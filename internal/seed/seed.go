// Package seed imports sample profiles from a dummyjson-compatible source.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/user-directory/engine/internal/models"
	"github.com/user-directory/engine/internal/repository"
	"github.com/user-directory/engine/internal/schema"
	"github.com/user-directory/engine/pkg/logger"
)

// sourceDateLayout matches the unpadded birth dates served by dummyjson.
const sourceDateLayout = "2006-1-2"

type sourcePage struct {
	Users []models.User `json:"users"`
	Total int           `json:"total"`
}

// Source fetches nested user records over HTTP.
type Source struct {
	http *resty.Client
}

func NewSource(baseURL string) *Source {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json")
	return &Source{http: client}
}

// Fetch downloads every user; limit=0 asks the source for all of them.
func (s *Source) Fetch(ctx context.Context) ([]models.User, error) {
	var page sourcePage
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("limit", "0").
		SetResult(&page).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch users: unexpected status %d", resp.StatusCode())
	}
	return page.Users, nil
}

// Report counts the outcome of one import.
type Report struct {
	Fetched  int
	Inserted int
	Failed   int
}

// Importer turns fetched records into storage rows and writes them one at a time.
type Importer struct {
	source *Source
	writer repository.UserWriter
	// Cost is the bcrypt cost for imported passwords.
	Cost int
}

func NewImporter(source *Source, writer repository.UserWriter) *Importer {
	return &Importer{source: source, writer: writer, Cost: bcrypt.DefaultCost}
}

// Run fetches all users and inserts them. With reset the table is emptied
// first. A failed insert is logged and counted; the import continues.
func (im *Importer) Run(ctx context.Context, reset bool) (Report, error) {
	var rep Report

	users, err := im.source.Fetch(ctx)
	if err != nil {
		return rep, err
	}
	rep.Fetched = len(users)
	logger.L().Info("fetched users", zap.Int("count", rep.Fetched))

	if reset {
		if err := im.writer.Reset(ctx); err != nil {
			return rep, err
		}
		logger.L().Info("cleared existing users")
	}

	for i := range users {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		row, err := im.Prepare(&users[i])
		if err == nil {
			err = im.writer.Insert(ctx, row)
		}
		if err != nil {
			rep.Failed++
			logger.L().Warn("insert user failed", zap.Int("index", i), zap.Error(err))
			continue
		}
		rep.Inserted++
	}
	return rep, nil
}

// Prepare flattens u into an insertable row. Passwords are bcrypt hashed and
// birth dates normalized to YYYY-MM-DD.
func (im *Importer) Prepare(u *models.User) (schema.Row, error) {
	row := schema.Flatten(u)

	if u.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*u.Password), im.Cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		row[schema.MustColumn("password")] = string(hash)
	}

	if u.BirthDate != nil {
		d, err := normalizeDate(*u.BirthDate)
		if err != nil {
			return nil, err
		}
		row[schema.MustColumn("birthDate")] = d
	}
	return row, nil
}

func normalizeDate(s string) (string, error) {
	for _, layout := range []string{schema.DateLayout, sourceDateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(schema.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized birth date %q", s)
}
