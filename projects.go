package youtrack

import (
	"context"
	"net/http"
)

// GetProjects returns all projects visible to the current user.
func (c *Client) GetProjects(ctx context.Context, opts *ListOptions) ([]Project, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/admin/projects",
		fields: selector(projectSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var projects []Project
	if err := c.decode(raw, &projects, http.MethodGet, "/admin/projects"); err != nil {
		return nil, err
	}
	return projects, nil
}
