package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"insight-console/internal/model"
)

const (
	uploadPath   = "/upload-resume"
	insightsPath = "/insights"
	uploadField  = "file"
)

// ErrUnexpectedStatus wraps every response outside the 2xx range.
var ErrUnexpectedStatus = errors.New("unexpected backend status")

// StatusError carries the rejected status for logging. It matches
// ErrUnexpectedStatus under errors.Is.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s response status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Client talks to the document insight service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for baseURL. A zero timeout leaves requests
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// UploadResume sends one multipart POST with the document under field "file".
func (c *Client) UploadResume(ctx context.Context, filename string, content io.Reader) (*model.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(uploadField, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file failed: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy upload content failed: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return nil, fmt.Errorf("build upload request failed: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var result *model.UploadResult
	if err := c.do(req, "upload", &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("parse upload json failed: expected object")
	}
	return result, nil
}

// ListInsights fetches the history in the order the backend returns it.
func (c *Client) ListInsights(ctx context.Context) ([]model.InsightRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+insightsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build insights request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var raw []*model.InsightRecord
	if err := c.do(req, "insights", &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		// a JSON null is not a history
		return nil, fmt.Errorf("parse insights json failed: expected array")
	}
	records := make([]model.InsightRecord, 0, len(raw))
	for i, r := range raw {
		if r == nil {
			return nil, fmt.Errorf("parse insights json failed: record %d is null", i)
		}
		records = append(records, *r)
	}
	return records, nil
}

// Ping reports whether the backend answers at all. Any response below 500
// counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return fmt.Errorf("build ping request failed: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping backend failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 500 {
		return &StatusError{Op: "ping", StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) do(req *http.Request, op string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response failed: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s json failed: %w", op, err)
	}
	return nil
}
