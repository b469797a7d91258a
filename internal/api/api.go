package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kylemclaren/reel-tasks/internal/version"
	"go.uber.org/zap"
)

// Endpoint paths, relative to the dashboard base URL
const (
	PathAddReel           = "add_reel"
	PathDeleteTask        = "delete_task"
	PathClearAllTasks     = "clear_all_tasks"
	PathStreamLogs        = "stream_logs"
	PathStreamTaskUpdates = "stream_task_updates"
)

// maxBodySize caps how much of a JSON response body is read
const maxBodySize = 1 << 20

// Client talks to the reel task-queue server
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL resolves path segments against the base URL. Segments are escaped.
func (c *Client) URL(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.JoinPath(escaped...).String()
}

// StreamLogsURL returns the log stream endpoint
func (c *Client) StreamLogsURL() string {
	return c.URL(PathStreamLogs)
}

// StreamTaskUpdatesURL returns the task-update stream endpoint
func (c *Client) StreamTaskUpdatesURL() string {
	return c.URL(PathStreamTaskUpdates)
}

// AddReel queues a reel via POST /add_reel
func (c *Client) AddReel(ctx context.Context, req AddReelRequest) (*AddReelResponse, error) {
	body := strings.NewReader(req.Form().Encode())
	var resp AddReelResponse
	if err := c.post(ctx, c.URL(PathAddReel), "application/x-www-form-urlencoded", body, &resp); err != nil {
		return nil, err
	}
	if resp.URL == "" {
		resp.URL = req.URL
	}
	return &resp, nil
}

// DeleteTask handles POST /delete_task/{id}
func (c *Client) DeleteTask(ctx context.Context, id TaskID) error {
	var resp DeleteResponse
	return c.post(ctx, c.URL(PathDeleteTask, string(id)), "", nil, &resp)
}

// ClearAllTasks handles POST /clear_all_tasks and returns the number of tasks removed
func (c *Client) ClearAllTasks(ctx context.Context) (int, error) {
	var resp ClearResponse
	if err := c.post(ctx, c.URL(PathClearAllTasks), "", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *Client) post(ctx context.Context, target, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", zap.String("url", target), zap.Error(err))
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	c.logger.Debug("request completed",
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp ErrorResponse
		if json.Unmarshal(data, &errResp) == nil {
			apiErr.Message = errResp.Error
		}
		c.logger.Info("server rejected request",
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.String("error", apiErr.Message))
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Error is a non-2xx response from the server
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Message returns the server-provided error message carried by err, or
// fallback when err is a transport failure or the server sent no message.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
