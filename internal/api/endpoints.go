package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	res, err := Post[Session](ctx, c, "/auth/login", creds)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &res.Data, nil
}

// ListDepartments returns departments matching search, at most limit of them.
// A zero limit leaves paging to the backend.
func (c *Client) ListDepartments(ctx context.Context, search string, limit int) (*Envelope[[]Department], error) {
	query := url.Values{}
	if search != "" {
		query.Set("search", search)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	res, err := Get[[]Department](ctx, c, "/departments", query)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res, nil
}

// ListTeachers returns every teacher.
func (c *Client) ListTeachers(ctx context.Context) ([]Teacher, error) {
	res, err := Get[[]Teacher](ctx, c, "/teachers", nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res.Data, nil
}

// Create posts values to the collection at path.
func (c *Client) Create(ctx context.Context, path string, values map[string]string) (Record, error) {
	res, err := Post[Record](ctx, c, path, values)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return res.Data, nil
}
