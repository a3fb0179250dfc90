package youtrack

import (
	"context"
	"net/http"
	"net/url"
)

// GetIssueAttachments returns all attachments of an issue, in server order.
func (c *Client) GetIssueAttachments(ctx context.Context, issueID string, opts *ListOptions) ([]IssueAttachment, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/attachments"
	raw, err := c.do(ctx, request{
		method: http.MethodGet,
		path:   path,
		fields: selector(issueAttachmentSchema),
		params: listParams(opts),
	})
	if err != nil {
		return nil, err
	}
	var attachments []IssueAttachment
	if err := c.decode(raw, &attachments, http.MethodGet, path); err != nil {
		return nil, err
	}
	return attachments, nil
}

// CreateIssueAttachments uploads files as attachments of an issue. The file
// readers are consumed while the request is built and are not retained.
func (c *Client) CreateIssueAttachments(ctx context.Context, issueID string, files []FileField) ([]IssueAttachment, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/attachments"
	return c.uploadAttachments(ctx, path, files)
}

// CreateCommentAttachments uploads files as attachments of an issue
// comment.
func (c *Client) CreateCommentAttachments(ctx context.Context, issueID, commentID string, files []FileField) ([]IssueAttachment, error) {
	path := "/issues/" + url.PathEscape(issueID) + "/comments/" + url.PathEscape(commentID) + "/attachments"
	return c.uploadAttachments(ctx, path, files)
}

// uploadAttachments performs a multipart attachment upload and decodes the
// resulting attachment list.
func (c *Client) uploadAttachments(ctx context.Context, path string, files []FileField) ([]IssueAttachment, error) {
	raw, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   path,
		fields: selector(issueAttachmentSchema),
		files:  files,
	})
	if err != nil {
		return nil, err
	}
	var attachments []IssueAttachment
	if err := c.decode(raw, &attachments, http.MethodPost, path); err != nil {
		return nil, err
	}
	return attachments, nil
}
