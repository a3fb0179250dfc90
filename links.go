package youtrack

import (
	"context"
	"net/http"
	"net/url"
)

// GetIssueLinks returns the links of an issue, grouped by link type and
// direction.
func (c *Client) GetIssueLinks(ctx context.Context, issueID string, opts *ListOptions) ([]IssueLink, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/links"
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		fields: selector(issueLinkSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var links []IssueLink
	if err := c.decode(raw, &links, http.MethodGet, path); err != nil {
		return nil, err
	}
	return links, nil
}

// GetIssueLinkTypes returns all link types available in the system.
func (c *Client) GetIssueLinkTypes(ctx context.Context, opts *ListOptions) ([]IssueLinkType, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/issueLinkTypes",
		fields: selector(issueLinkTypeSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var linkTypes []IssueLinkType
	if err := c.decode(raw, &linkTypes, http.MethodGet, "/issueLinkTypes"); err != nil {
		return nil, err
	}
	return linkTypes, nil
}

// LinkIssues links the source issue to the target issue through the given
// link type. For directed link types the direction selects which end the
// source issue takes.
func (c *Client) LinkIssues(ctx context.Context, sourceIssueID, targetIssueID, linkTypeID string, direction IssueLinkDirection) (*Issue, error) {
	path := "/issues/" + url.PathEscape(sourceIssueID) + "/links/" +
		url.PathEscape(linkTypeID+string(direction)) + "/issues"
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		fields: selector(issueSchema),
		body:   Issue{Type: TypeIssue, ID: targetIssueID},
	})
	if err != nil {
		return nil, err
	}
	var issue Issue
	if err := c.decode(raw, &issue, http.MethodPost, path); err != nil {
		return nil, err
	}
	return &issue, nil
}

// DeleteIssueLink removes the link between two issues.
func (c *Client) DeleteIssueLink(ctx context.Context, sourceIssueID, targetIssueID, linkTypeID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path: "/issues/" + url.PathEscape(sourceIssueID) + "/links/" +
			url.PathEscape(linkTypeID) + "/issues/" + url.PathEscape(targetIssueID),
	})
	return err
}
