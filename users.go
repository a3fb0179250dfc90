package youtrack

import (
	"context"
	"net/http"
)

// GetUsers returns the users registered in YouTrack.
func (c *Client) GetUsers(ctx context.Context, opts *ListOptions) ([]User, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/users",
		fields: selector(userSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var users []User
	if err := c.decode(raw, &users, http.MethodGet, "/users"); err != nil {
		return nil, err
	}
	return users, nil
}
