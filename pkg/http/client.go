package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	MethodGet  = http.MethodGet
	MethodPost = http.MethodPost
)

// maxErrorBody caps how much of a failed response is kept on StatusError.
const maxErrorBody = 4096

type ClientOption func(*Client)

// RequestOptions describes one outgoing call. Body may be []byte, string,
// io.Reader or any JSON-encodable value.
type RequestOptions struct {
	Method      string
	URL         string
	Headers     map[string]string
	QueryParams map[string][]string
	Body        interface{}
}

// Client is a JSON-over-HTTP client with fixed default headers.
type Client struct {
	timeout   time.Duration
	userAgent string
	headers   http.Header
	transport http.RoundTripper
	client    *http.Client
}

// StatusError is returned by SendAndParse for non-2xx responses.
type StatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration // from a Retry-After header in seconds, if any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{timeout: 30 * time.Second, headers: make(http.Header)}
	for _, opt := range opts {
		opt(c)
	}
	c.client = &http.Client{Timeout: c.timeout, Transport: c.transport}
	return c
}

// SendRequest performs the call; the caller owns the response body.
func (c *Client) SendRequest(ctx context.Context, opts *RequestOptions) (*http.Response, error) {
	req, err := c.newRequest(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// SendAndParse performs the call and decodes a 2xx JSON body into dest.
// A *[]byte dest receives the raw body; a nil dest discards it.
func (c *Client) SendAndParse(ctx context.Context, opts *RequestOptions, dest interface{}) error {
	resp, err := c.SendRequest(ctx, opts)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	switch v := dest.(type) {
	case nil:
		_, _ = io.Copy(io.Discard, resp.Body)
	case *[]byte:
		if *v, err = io.ReadAll(resp.Body); err != nil {
			return fmt.Errorf("read body: %w", err)
		}
	default:
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	}
	return nil
}

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	se := &StatusError{Code: resp.StatusCode, Body: string(body)}
	if secs, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After"))); err == nil && secs > 0 {
		se.RetryAfter = time.Duration(secs) * time.Second
	}
	return se
}

func (c *Client) newRequest(ctx context.Context, opts *RequestOptions) (*http.Request, error) {
	body, isJSON, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, body)
	if err != nil {
		return nil, err
	}

	if len(opts.QueryParams) > 0 {
		q := req.URL.Query()
		for k, vs := range opts.QueryParams {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	for k, vs := range c.headers {
		req.Header[k] = vs
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if isJSON && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func encodeBody(body interface{}) (io.Reader, bool, error) {
	switch v := body.(type) {
	case nil:
		return nil, false, nil
	case []byte:
		return bytes.NewReader(v), false, nil
	case string:
		return strings.NewReader(v), false, nil
	case io.Reader:
		return v, false, nil
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, false, fmt.Errorf("marshal json: %w", err)
	}
	return bytes.NewReader(b), true, nil
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) { c.timeout = timeout }
}

func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithHeader adds a header sent with every request, e.g. an API key.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.headers.Set(key, value) }
}

func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) { c.transport = rt }
}
