// Package httpapi is the single request helper for the DiagnoCare REST API.
// It attaches bearer auth, serializes JSON bodies, unwraps the
// {message, statusCode, data} envelope and turns non-2xx responses into
// *APIError values.
package httpapi

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

	"go.uber.org/zap"

	"diagnocare/internal/platform/id"
)

// DefaultErrorMessage is used when an error response carries no message.
const DefaultErrorMessage = "Erreur API"

// TokenSource yields the current access token; "" means none.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

type Envelope struct {
	Message    string          `json:"message,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type Request struct {
	Method  string
	Path    string
	Body    any
	Headers map[string]string
	Auth    bool
}

type Client struct {
	baseURL string
	lang    string
	http    *http.Client
	tokens  TokenSource
	ids     id.Generator
	log     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLanguage(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithIDs(ids id.Generator) Option {
	return func(c *Client) { c.ids = ids }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		ids:     id.UUID{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do performs req and returns the envelope's data, defaulting to {}.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	status, body, err := c.send(ctx, req)
	if err != nil {
		return nil, err
	}
	env := parseEnvelope(body)
	if status < 200 || status > 299 {
		msg := env.Message
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return nil, &APIError{Message: msg, Status: status}
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return json.RawMessage("{}"), nil
	}
	return env.Data, nil
}

// Download performs an authenticated GET and returns the raw body. Error
// responses are still read as envelopes.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	status, body, err := c.send(ctx, Request{Method: http.MethodGet, Path: path, Auth: true, Headers: map[string]string{"Accept": "application/pdf"}})
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		msg := parseEnvelope(body).Message
		if msg == "" {
			msg = DefaultErrorMessage
		}
		return nil, &APIError{Message: msg, Status: status}
	}
	return body, nil
}

// Call performs req and decodes the data field into T. An empty object
// decoded into a slice type yields an empty slice.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	data, err := c.Do(ctx, req)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		if bytes.Equal(bytes.TrimSpace(data), []byte("{}")) {
			if err := json.Unmarshal([]byte("[]"), &out); err == nil {
				return out, nil
			}
			var zero T
			return zero, nil
		}
		return out, fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, req Request) (int, []byte, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s %s: %w", method, req.Path, err)
		}
		body = bytes.NewReader(raw)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+req.Path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build %s %s: %w", method, req.Path, err)
	}

	reqID := c.ids.New()
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	if c.lang != "" {
		httpReq.Header.Set("Accept-Language", c.lang)
		httpReq.Header.Set("x-auth-user-lang", c.lang)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.Auth && c.tokens != nil {
		token, err := c.tokens.AccessToken(ctx)
		if err != nil {
			return 0, nil, fmt.Errorf("read access token: %w", err)
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Debug("api request failed",
			zap.String("method", method),
			zap.String("path", req.Path),
			zap.String("request_id", reqID),
			zap.Error(err))
		return 0, nil, fmt.Errorf("%s %s: %w", method, req.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		// A truncated body is treated like an unparseable one.
		raw = nil
	}
	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
		zap.Duration("elapsed", time.Since(started)))
	return resp.StatusCode, raw, nil
}

func parseEnvelope(body []byte) Envelope {
	env := Envelope{}
	if len(bytes.TrimSpace(body)) == 0 {
		return env
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}
	}
	return env
}
