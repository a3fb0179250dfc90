package youtrack

import (
	"net/url"

	"github.com/google/go-querystring/query"
)

// ListOptions selects a page of a collection. Zero values leave the
// corresponding query parameter out, which asks for the server defaults.
type ListOptions struct {
	// Skip is the zero-based index of the first record to return.
	Skip int `url:"$skip,omitempty"`
	// Top is the maximum number of records to return. Zero or negative
	// leaves the page size to the server.
	Top int `url:"$top,omitempty"`
}

// normalized maps negative values onto the zero sentinel so they are
// omitted from the query string.
func (o ListOptions) normalized() ListOptions {
	if o.Skip < 0 {
		o.Skip = 0
	}
	if o.Top < 0 {
		o.Top = 0
	}
	return o
}

// IssuesOptions filters and pages the issue list.
type IssuesOptions struct {
	// Query is a free-text issue filter in YouTrack query syntax. Empty
	// returns all issues.
	Query string `url:"query,omitempty"`
	// CustomFields names custom fields to return with each issue.
	CustomFields []string `url:"customFields,omitempty"`

	ListOptions
}

// UpdateIssueOptions carries the optional flags of an issue update.
type UpdateIssueOptions struct {
	// MuteUpdateNotifications suppresses update notifications to
	// subscribers.
	MuteUpdateNotifications bool `url:"muteUpdateNotifications,omitempty"`
}

// request describes one API call. Exactly one of body and files may be set:
// a call either sends a JSON body or uploads multipart files, never both.
type request struct {
	method string
	path   string
	fields string
	params any
	body   any
	files  []FileField
}

// queryValues assembles the query string parameters of a request: the
// fields projection plus the encoded per-call options struct.
func (r request) queryValues() (url.Values, error) {
	values := url.Values{}
	if r.fields != "" {
		values.Set("fields", r.fields)
	}
	if r.params != nil {
		encoded, err := query.Values(r.params)
		if err != nil {
			return nil, err
		}
		for key, vals := range encoded {
			for _, v := range vals {
				values.Add(key, v)
			}
		}
	}
	return values, nil
}

// listParams adapts an optional ListOptions into request params.
func listParams(opts *ListOptions) any {
	if opts == nil {
		return nil
	}
	return opts.normalized()
}

// issuesParams adapts an optional IssuesOptions into request params.
func issuesParams(opts *IssuesOptions) any {
	if opts == nil {
		return nil
	}
	normalized := *opts
	normalized.ListOptions = normalized.ListOptions.normalized()
	return normalized
}

// RawRequest describes a hand-built API request, for endpoints or response
// shapes the typed operations do not cover.
type RawRequest struct {
	// Method is the HTTP method (GET, POST, DELETE).
	Method string
	// Path is the API resource path, e.g. "/issues/DEMO-1". The client
	// prepends the base URL and the /api prefix.
	Path string
	// Fields is an optional fields projection.
	Fields string
	// Params is an optional struct encoded into query parameters via
	// url struct tags.
	Params any
	// Body is JSON-encoded into the request body when non-nil.
	Body any
	// Files uploads multipart file parts. Mutually exclusive with Body.
	Files []FileField
}
