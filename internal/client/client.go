// Package client talks to the user directory API and keeps the browsing
// state a front end works against.
package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/user-directory/engine/internal/api/types"
	"github.com/user-directory/engine/internal/models"
)

// Client calls the listing API.
type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: c}
}

// ListParams are the listing filters. Zero values are not sent.
type ListParams struct {
	Search  string
	Country string
	Company string
	Limit   int
	Offset  int
}

func (p ListParams) query() map[string]string {
	q := map[string]string{}
	if p.Search != "" {
		q["search"] = p.Search
	}
	if p.Country != "" {
		q["country"] = p.Country
	}
	if p.Company != "" {
		q["company"] = p.Company
	}
	if p.Limit > 0 {
		q["limit"] = strconv.Itoa(p.Limit)
	}
	if p.Offset > 0 {
		q["offset"] = strconv.Itoa(p.Offset)
	}
	return q
}

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  []types.FieldError
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: %s (%s, status %d)", e.Message, e.Code, e.Status)
}

func (c *Client) ListUsers(ctx context.Context, p ListParams) (*models.UserList, error) {
	var list models.UserList
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(p.query()).
		SetResult(&list).
		SetError(&types.APIResponse{}).
		Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &list, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&u).
		SetError(&types.APIResponse{}).
		Get("/api/users/{id}")
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if resp.IsError() {
		return nil, apiError(resp)
	}
	return &u, nil
}

func apiError(resp *resty.Response) error {
	e := &Error{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*types.APIResponse); ok && body.Error != nil {
		e.Code = body.Error.Code
		e.Message = body.Error.Message
		e.Fields = body.Error.Fields
	}
	return e
}
