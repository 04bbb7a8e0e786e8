// Package api implements the Task Line REST client.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/runoshun/taskline/internal/domain"
)

// RequestIDHeader carries a per-request UUID.
const RequestIDHeader = "X-Request-ID"

// Options configures a Client.
type Options struct {
	Transport  http.RoundTripper // Defaults to http.DefaultTransport
	Logger     *slog.Logger
	BaseURL    string
	CookiePath string // Persisted cookie jar; empty keeps cookies in memory
	Timeout    time.Duration
}

// Client talks to the Task Line API.
// Fields are ordered to minimize memory padding.
type Client struct {
	http    *http.Client
	jar     *Jar
	logger  *slog.Logger
	newID   func() string
	baseURL string
}

// Ensure Client implements the API ports.
var (
	_ domain.TaskAPI     = (*Client)(nil)
	_ domain.ReviewAPI   = (*Client)(nil)
	_ domain.SettingsAPI = (*Client)(nil)
	_ domain.AuthAPI     = (*Client)(nil)
	_ domain.DataAPI     = (*Client)(nil)
)

// New creates a Client. The cookie jar is loaded from opts.CookiePath when set.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", opts.BaseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	jar, err := NewJar(opts.CookiePath, base, logger)
	if err != nil {
		return nil, err
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		http: &http.Client{
			Transport: transport,
			Jar:       jar,
			Timeout:   opts.Timeout,
		},
		jar:     jar,
		logger:  logger,
		newID:   uuid.NewString,
		baseURL: base.String(),
	}, nil
}

// BaseURL returns the API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Jar returns the client's cookie jar.
func (c *Client) Jar() *Jar {
	return c.jar
}

// envelope is the standardized response wrapper.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type errorBody struct {
	Details map[string]any `json:"details"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
}

// do sends a request and decodes the response into out (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := c.newID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Warn("api request failed", "method", method, "path", path, "request_id", reqID, "error", err)
		return &domain.APIError{Code: 0, Message: "Network error: Unable to reach the server"}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.APIError{Code: 0, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeError(resp.StatusCode, data)
		c.logger.Debug("api error response", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID)
		return apiErr
	}

	return decodeSuccess(data, out)
}

// decodeError converts a non-2xx body into an APIError.
func decodeError(status int, data []byte) *domain.APIError {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return &domain.APIError{Code: status, Message: fmt.Sprintf("HTTP %d", status)}
	}

	if env.Success != nil && !*env.Success {
		var eb errorBody
		if json.Unmarshal(env.Error, &eb) == nil && eb.Message != "" {
			code := eb.Code
			if code == 0 {
				code = status
			}
			return &domain.APIError{Code: code, Message: eb.Message, Details: eb.Details}
		}
	}

	var msg string
	if len(env.Error) > 0 {
		_ = json.Unmarshal(env.Error, &msg)
	}
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	return &domain.APIError{Code: status, Message: msg}
}

// decodeSuccess unwraps {success: true, data} envelopes and decodes raw bodies otherwise.
func decodeSuccess(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var env envelope
	if json.Unmarshal(data, &env) == nil && env.Success != nil && *env.Success && len(env.Data) > 0 {
		data = env.Data
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// message is the common {message} response body.
type message struct {
	Message string `json:"message"`
}

// errNotJSON is returned when a body is neither of the expected shapes.
var errNotJSON = errors.New("unexpected response shape")
