package youtrack

import (
	"context"
	"net/http"
	"net/url"
)

// GetIssueComments returns all accessible comments of an issue, in server
// order.
func (c *Client) GetIssueComments(ctx context.Context, issueID string, opts *ListOptions) ([]IssueComment, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/comments"
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		fields: selector(issueCommentSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var comments []IssueComment
	if err := c.decode(raw, &comments, http.MethodGet, path); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateIssueComment adds a new comment to an issue.
func (c *Client) CreateIssueComment(ctx context.Context, issueID string, comment *IssueComment) (*IssueComment, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/comments"
	body := *comment
	if body.Type == "" {
		body.Type = TypeIssueComment
	}
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		fields: selector(issueCommentSchema),
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	var created IssueComment
	if err := c.decode(raw, &created, http.MethodPost, path); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateIssueComment updates an existing comment of an issue. The comment
// must carry its ID.
func (c *Client) UpdateIssueComment(ctx context.Context, issueID string, comment *IssueComment) (*IssueComment, error) {
	if comment.ID == "" {
		return nil, newRequestError("update comment: comment ID is required")
	}
	path := "/issues/" + url.PathEscape(issueID) + "/comments/" + url.PathEscape(comment.ID)
	body := *comment
	if body.Type == "" {
		body.Type = TypeIssueComment
	}
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		fields: selector(issueCommentSchema),
		body:   body,
	})
	if err != nil {
		return nil, err
	}
	var updated IssueComment
	if err := c.decode(raw, &updated, http.MethodPost, path); err != nil {
		return nil, err
	}
	return &updated, nil
}

// HideIssueComment hides a comment by updating it with the deleted flag
// set. It issues the same single request as UpdateIssueComment.
func (c *Client) HideIssueComment(ctx context.Context, issueID, commentID string) error {
	_, err := c.UpdateIssueComment(ctx, issueID, &IssueComment{
		ID:      commentID,
		Deleted: Bool(true),
	})
	return err
}

// DeleteIssueComment permanently deletes a comment from an issue.
func (c *Client) DeleteIssueComment(ctx context.Context, issueID, commentID string) error {
	_, err := c.do(ctx, request{
		method: http.MethodDelete,
		path:   "/issues/" + url.PathEscape(issueID) + "/comments/" + url.PathEscape(commentID),
	})
	return err
}
