package youtrack

import (
	"context"
	"net/http"
	"net/url"
)

// GetTags returns all tags visible to the current user.
func (c *Client) GetTags(ctx context.Context, opts *ListOptions) ([]IssueTag, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/issueTags",
		fields: selector(issueTagSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var tags []IssueTag
	if err := c.decode(raw, &tags, http.MethodGet, "/issueTags"); err != nil {
		return nil, err
	}
	return tags, nil
}

// AddIssueTag attaches an existing tag to an issue.
func (c *Client) AddIssueTag(ctx context.Context, issueID string, tag *IssueTag) error {
	body := *tag
	if body.Type == "" {
		body.Type = TypeIssueTag
	}
	_, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/issues/" + url.PathEscape(issueID) + "/tags",
		body:   body,
	})
	return err
}
