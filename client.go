package youtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const apiPrefix = "/api"

// Client is a typed YouTrack REST API client. A Client is immutable after
// New and safe for concurrent use; calls share the underlying HTTP
// connection pool and are never serialized, retried, or queued by the
// client itself.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a new YouTrack client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// Raw performs an API request and returns the undecoded response body. A
// nil RawMessage with a nil error means the server returned no content,
// which is distinct from an empty JSON array.
func (c *Client) Raw(ctx context.Context, req RawRequest) (json.RawMessage, error) {
	return c.do(ctx, request{
		method: req.Method,
		path:   req.Path,
		fields: req.Fields,
		params: req.Params,
		body:   req.Body,
		files:  req.Files,
	})
}

// do executes a request and returns the raw JSON body, or nil when the
// response carried no content. Non-2xx statuses are classified into typed
// errors before the body is inspected.
func (c *Client) do(ctx context.Context, req request) (json.RawMessage, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newTransportError(req.method, req.path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(req.method, req.path, fmt.Errorf("read response body: %w", err))
	}

	c.logger.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Str("request_id", httpReq.Header.Get("X-Request-ID")).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("youtrack request")

	if classErr := classifyStatus(resp.StatusCode, req.method, req.path, body); classErr != nil {
		return nil, classErr
	}
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, newDecodeError(resp.StatusCode, req.method, req.path, fmt.Errorf("response body is not valid JSON"))
	}
	return json.RawMessage(body), nil
}

// buildRequest constructs an *http.Request from the client config and
// request. A request carries either a JSON body or multipart files, never
// both.
func (c *Client) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	if req.body != nil && len(req.files) > 0 {
		return nil, newRequestError("request cannot carry both a JSON body and files")
	}

	values, err := req.queryValues()
	if err != nil {
		return nil, newRequestError(fmt.Sprintf("encode query parameters: %v", err))
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + apiPrefix + req.path

	var body io.Reader
	contentType := ""
	switch {
	case len(req.files) > 0:
		body, contentType, err = encodeMultipart(req.files)
		if err != nil {
			return nil, newRequestError(fmt.Sprintf("encode multipart body: %v", err))
		}
	case req.body != nil:
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, newRequestError(fmt.Sprintf("encode body: %v", err))
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, newRequestError(fmt.Sprintf("create request: %v", err))
	}

	if len(values) > 0 {
		httpReq.URL.RawQuery = values.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	return httpReq, nil
}

// decode unmarshals a response body into v, reporting missing bodies and
// shape mismatches as typed errors.
func (c *Client) decode(raw json.RawMessage, v any, method, path string) error {
	if raw == nil {
		return newRequestError(fmt.Sprintf("%s %s: expected a response body, got none", method, path))
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return newDecodeError(0, method, path, err)
	}
	return nil
}
