// Package api wraps all outbound HTTP calls to the analysis backend.
// Every failure shape (network error, 4xx, 5xx, validation array) is
// normalized into a single *Error carrying a message and HTTP status.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/datachat-dev/datachat/internal/log"
)

// Client communicates with the analysis backend over HTTP.
// It is stateless aside from the base URL, timeout and event logger,
// and is safe for use from multiple goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// New creates a Client targeting the given backend base URL,
// e.g. "http://localhost:8000/api/v1".
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the backend base URL the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health checks backend availability via GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.getJSON(ctx, "/health", &out, "Health check failed"); err != nil {
		return nil, err
	}
	return &out, nil
}

// postJSON sends body as JSON to path and decodes the response into out.
// defaultMsg is used when the failure carries no usable detail.
func (c *Client) postJSON(ctx context.Context, path string, body, out any, defaultMsg string) error {
	data, err := json.Marshal(body)
	if err != nil {
		return &Error{Detail: fmt.Sprintf("encoding request: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return &Error{Detail: defaultMsg}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, defaultMsg, body != nil)
}

// getJSON sends a GET to path and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any, defaultMsg string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Detail: defaultMsg}
	}
	return c.do(req, out, defaultMsg, false)
}

// FileUpload is one file to include in a multipart upload.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// postMultipart uploads the given files under field to path and decodes the
// response into out. A single-file endpoint passes exactly one FileUpload.
func (c *Client) postMultipart(ctx context.Context, path, field string, files []FileUpload, out any, defaultMsg string) error {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return &Error{Detail: fmt.Sprintf("building upload: %v", err)}
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return &Error{Detail: fmt.Sprintf("reading %s: %v", f.Name, err)}
		}
	}
	if err := w.Close(); err != nil {
		return &Error{Detail: fmt.Sprintf("building upload: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return &Error{Detail: defaultMsg}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, out, defaultMsg, true)
}

// do executes the request and normalizes every failure into *Error.
// Bodies are never logged; only method, path, status and payload presence.
func (c *Client) do(req *http.Request, out any, defaultMsg string, hasData bool) error {
	path := strings.TrimPrefix(req.URL.Path, "/api/v1")
	_ = c.logger.Append(log.LogEvent{
		Event:   log.EventAPIRequest,
		Method:  req.Method,
		Path:    path,
		HasData: hasData,
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		_ = c.logger.Append(log.LogEvent{
			Event:  log.EventAPIError,
			Method: req.Method,
			Path:   path,
			Error:  err.Error(),
		})
		return transportError(err, defaultMsg)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Detail: defaultMsg, Status: resp.StatusCode}
	}

	_ = c.logger.Append(log.LogEvent{
		Event:  log.EventAPIResponse,
		Method: req.Method,
		Path:   path,
		Status: resp.StatusCode,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp.StatusCode, data, defaultMsg)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Detail: fmt.Sprintf("decoding response: %v", err), Status: resp.StatusCode}
	}
	return nil
}
