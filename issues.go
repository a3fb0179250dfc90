package youtrack

import (
	"context"
	"net/http"
	"net/url"
)

// GetIssue reads the issue with the given ID.
func (c *Client) GetIssue(ctx context.Context, issueID string) (*Issue, error) {
	path := "/issues/" + url.PathEscape(issueID)
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		fields: selector(issueSchema),
	})
	if err != nil {
		return nil, err
	}
	var issue Issue
	if err := c.decode(raw, &issue, http.MethodGet, path); err != nil {
		return nil, err
	}
	return &issue, nil
}

// GetIssues returns all issues that match the options' query. Server order
// is preserved.
func (c *Client) GetIssues(ctx context.Context, opts *IssuesOptions) ([]Issue, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/issues",
		fields: selector(issueSchema),
		params: issuesParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var issues []Issue
	if err := c.decode(raw, &issues, http.MethodGet, "/issues"); err != nil {
		return nil, err
	}
	return issues, nil
}

// CreateIssue creates a new issue and returns it as persisted by the
// server. The server assigns the identity; leave issue.ID empty.
func (c *Client) CreateIssue(ctx context.Context, issue *Issue) (*Issue, error) {
	body := *issue
	if body.Type == "" {
		body.Type = TypeIssue
	}
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/issues",
		fields: selector(issueSchema),
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	var created Issue
	if err := c.decode(raw, &created, http.MethodPost, "/issues"); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssue updates an existing issue. Fields left unset on issue are
// omitted from the request body and remain unchanged on the server.
func (c *Client) UpdateIssue(ctx context.Context, issueID string, issue *Issue, opts *UpdateIssueOptions) (*Issue, error) {
	path := "/issues/" + url.PathEscape(issueID)
	body := *issue
	if body.Type == "" {
		body.Type = TypeIssue
	}
	var params any
	if opts != nil {
		params = *opts
	}
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		fields: selector(issueSchema),
		params: params,
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	var updated Issue
	if err := c.decode(raw, &updated, http.MethodPost, path); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteIssue deletes the issue with the given ID.
func (c *Client) DeleteIssue(ctx context.Context, issueID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/issues/" + url.PathEscape(issueID),
	})
	return err
}
