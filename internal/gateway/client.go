package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

const (
	xsrfCookieName = "XSRF-TOKEN"
	xsrfHeaderName = "X-XSRF-TOKEN"
)

// TokenProvider supplies the bearer token attached to requests. Token returns
// an empty string when no session is active. Invalidate is called when the
// backend answers 401 so a stale token is not retried forever.
type TokenProvider interface {
	Token() string
	Invalidate()
}

// APIError is the normalized error for failed backend calls. Message carries
// the backend's errorMessage field when present, else the transport error
// text, else a generic message. Status is zero for transport-level failures.
type APIError struct {
	Status  int
	Message string

	// Structured reports whether Message came from the backend's
	// errorMessage field rather than raw body text or transport failure.
	Structured bool
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// errorBody is the backend's failure shape.
type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
	Status       int    `json:"status"`
}

// Client is an HTTP client for the store API. It attaches the bearer token
// from the TokenProvider, maintains the XSRF-TOKEN cookie through its cookie
// jar, and echoes that cookie as the X-XSRF-TOKEN header on unsafe verbs,
// fetching GET /csrf-token first when the cookie is missing.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client's jar is
// replaced with a fresh cookie jar if it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a Client for the given base URL. The base URL must be absolute;
// a trailing slash is stripped. tokens may be nil for anonymous use.
func New(baseURL string, tokens TokenProvider, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("gateway: invalid base url %q", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		tokens:  tokens,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("gateway: create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}

	return c, nil
}

// Get issues a GET request and decodes the JSON response into out.
// Pass nil to discard the body.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request. Any response body is discarded.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// Upload posts the given file content as a multipart form with the named
// field and returns the response body as a string. The backend answers
// uploads with the bare URL of the stored file.
func (c *Client) Upload(ctx context.Context, path, field, filename string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return "", &APIError{Message: fmt.Sprintf("build upload request: %v", err)}
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", &APIError{Message: fmt.Sprintf("read upload content: %v", err)}
	}
	if err := mw.Close(); err != nil {
		return "", &APIError{Message: fmt.Sprintf("finalize upload request: %v", err)}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &APIError{Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return "", c.errorFrom(resp.StatusCode, raw)
	}

	return strings.TrimSpace(string(raw)), nil
}

// doJSON builds, sends, and decodes a JSON round trip.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("encode request body: %v", err)}
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return c.errorFrom(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Message: fmt.Sprintf("decode response body: %v", err)}
	}
	return nil
}

// newRequest builds a request with auth and CSRF headers attached. For unsafe
// verbs the XSRF cookie is ensured first.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if isUnsafe(method) {
		if err := c.ensureCSRFCookie(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	if isUnsafe(method) {
		if token := c.csrfCookie(); token != "" {
			req.Header.Set(xsrfHeaderName, token)
		}
	}

	return req, nil
}

// ensureCSRFCookie fetches GET /csrf-token when no XSRF cookie is in the jar.
func (c *Client) ensureCSRFCookie(ctx context.Context) error {
	if c.csrfCookie() != "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/csrf-token", nil)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("build csrf request: %v", err)}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("fetch csrf token: %v", err)}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: "failed to obtain CSRF token"}
	}
	return nil
}

// csrfCookie returns the current XSRF-TOKEN cookie value, if any.
func (c *Client) csrfCookie() string {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range c.http.Jar.Cookies(u) {
		if cookie.Name == xsrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

// errorFrom normalizes a failure response into an *APIError. A 401 response
// invalidates the token provider.
func (c *Client) errorFrom(status int, raw []byte) *APIError {
	if status == http.StatusUnauthorized && c.tokens != nil {
		c.tokens.Invalidate()
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.ErrorMessage != "" {
		return &APIError{Status: status, Message: body.ErrorMessage, Structured: true}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" || len(msg) > 300 {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

func isUnsafe(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
