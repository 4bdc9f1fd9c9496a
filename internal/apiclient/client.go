package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tempmon_dashboard/internal/observability"
)

const (
	defaultTimeout   = 15 * time.Second
	genericErrorText = "API request failed"
	contentTypeJSON  = "application/json"
	maxBodyBytes     = 8 << 20 // 8 MB
)

// Error classes reported to metrics.
const (
	classNetwork = "network"
	classHTTP    = "http"
	classDecode  = "decode"
)

var errNotJSON = errors.New("backend returned a non-JSON body")

// Config describes where the backend lives.
type Config struct {
	BaseURL      string // REST API root, e.g. http://localhost:8000/api
	AdminBaseURL string // origin serving the /admin CRUD surface
	HealthURL    string
	Token        string // forwarded as a bearer token when set
	Timeout      time.Duration
}

// Client wraps outbound calls to the backend REST API.
type Client struct {
	cfg     Config
	http    *http.Client
	metrics *observability.Metrics
}

// New builds a client. A nil httpClient gets a default one with cfg.Timeout.
func New(cfg Config, httpClient *http.Client, metrics *observability.Metrics) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.AdminBaseURL = strings.TrimRight(cfg.AdminBaseURL, "/")
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, http: httpClient, metrics: metrics}
}

// Options are per-call overrides merged over the client defaults.
type Options struct {
	Method  string            // GET when empty
	Headers map[string]string // replace default headers with the same name
	Query   Params
	Body    any    // JSON-encoded when non-nil
	Route   string // metrics label; the endpoint when empty
}

// Result is a successful backend response: JSON when the backend said so,
// raw text otherwise.
type Result struct {
	Status      int
	ContentType string
	JSON        json.RawMessage
	Text        string
}

// IsJSON reports whether the backend answered with a JSON body.
func (r *Result) IsJSON() bool { return r != nil && r.JSON != nil }

// Decode unmarshals a JSON result into dst.
func (r *Result) Decode(dst any) error {
	if !r.IsJSON() {
		return errNotJSON
	}
	return json.Unmarshal(r.JSON, dst)
}

// APIError is an HTTP-level failure. Message carries the backend's "error"
// field when the body was JSON, otherwise a generic text.
type APIError struct {
	Status   int
	Endpoint string
	Message  string
}

func (e *APIError) Error() string { return e.Message }

// StatusOf returns the HTTP status of an *APIError in err's chain, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Request calls endpoint relative to the REST API root.
func (c *Client) Request(ctx context.Context, endpoint string, opts Options) (*Result, error) {
	return c.do(ctx, c.cfg.BaseURL, endpoint, opts)
}

// Do calls the admin CRUD surface, which lives outside the /api prefix.
// route is the path template the call is measured under, so resource ids
// never become metric labels.
func (c *Client) Do(ctx context.Context, method, route, path string, body map[string]string) (*Result, error) {
	opts := Options{Method: method, Route: route}
	if body != nil {
		opts.Body = body
	}
	return c.do(ctx, c.cfg.AdminBaseURL, path, opts)
}

func (c *Client) defaultHeaders() map[string]string {
	h := map[string]string{
		"Content-Type": contentTypeJSON,
		"Accept":       contentTypeJSON,
	}
	if c.cfg.Token != "" {
		h["Authorization"] = "Bearer " + c.cfg.Token
	}
	return h
}

func (c *Client) do(ctx context.Context, base, endpoint string, opts Options) (*Result, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	label := opts.Route
	if label == "" {
		label = endpoint
	}

	url := base + endpoint
	if qs := opts.Query.Encode(); qs != "" {
		url += "?" + qs
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body for %s %s: %w", method, endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}
	headers := c.defaultHeaders()
	for k, v := range opts.Headers {
		headers[k] = v
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveAPI(label, time.Since(start))
	if err != nil {
		c.metrics.APIError(label, classNetwork)
		return nil, fmt.Errorf("request %s %s: %w", method, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.APIError(label, classNetwork)
		return nil, fmt.Errorf("read response %s %s: %w", method, endpoint, err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	ct := resp.Header.Get("Content-Type")
	res := &Result{Status: resp.StatusCode, ContentType: ct}

	if !strings.Contains(ct, contentTypeJSON) {
		if !ok {
			c.metrics.APIError(label, classHTTP)
			return nil, &APIError{Status: resp.StatusCode, Endpoint: endpoint, Message: genericErrorText}
		}
		res.Text = string(raw)
		return res, nil
	}

	if !json.Valid(raw) {
		c.metrics.APIError(label, classDecode)
		if !ok {
			return nil, &APIError{Status: resp.StatusCode, Endpoint: endpoint, Message: genericErrorText}
		}
		return nil, fmt.Errorf("decode response %s %s: invalid JSON", method, endpoint)
	}

	if !ok {
		c.metrics.APIError(label, classHTTP)
		return nil, &APIError{Status: resp.StatusCode, Endpoint: endpoint, Message: errorMessage(raw)}
	}
	res.JSON = json.RawMessage(raw)
	return res, nil
}

// errorMessage extracts the backend's "error" field, falling back to the generic text.
func errorMessage(raw []byte) string {
	var body struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return genericErrorText
	}
	if s, ok := body.Error.(string); ok && s != "" {
		return s
	}
	return genericErrorText
}

// getInto issues a GET against the REST root and decodes the JSON result.
func getInto[T any](ctx context.Context, c *Client, endpoint string, q Params) (T, error) {
	var out T
	res, err := c.Request(ctx, endpoint, Options{Query: q})
	if err != nil {
		return out, err
	}
	if err := res.Decode(&out); err != nil {
		return out, fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return out, nil
}
