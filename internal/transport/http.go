package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"geiger_console/internal/logger"
	"geiger_console/internal/models"
)

const (
	defaultRequestTimeout = 5 * time.Second
	maxErrorBodyBytes     = 512
)

// HTTPClient performs the exchanges against a real device.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewHTTPClient builds a client for baseURL (e.g. "http://192.168.4.1/api").
// A non-positive timeout falls back to 5s.
func NewHTTPClient(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *HTTPClient) FetchStatus(ctx context.Context) (models.StatusReport, error) {
	var report models.StatusReport
	if err := c.getJSON(ctx, OpFetchStatus, PathStatus, &report); err != nil {
		return models.StatusReport{}, err
	}
	return report, nil
}

func (c *HTTPClient) FetchConfig(ctx context.Context) (models.ConfigDocument, error) {
	var doc models.ConfigDocument
	if err := c.getJSON(ctx, OpFetchConfig, PathConfig, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = models.ConfigDocument{}
	}
	return doc, nil
}

func (c *HTTPClient) SaveConfig(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal config payload: %w", err)
	}
	resp, err := c.do(ctx, OpSaveConfig, http.MethodPost, PathConfig, bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, OpPing, http.MethodPost, PathPing, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *HTTPClient) getJSON(ctx context.Context, op, path string, out any) error {
	resp, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Err: err}
	}
	return nil
}

// do sends the request and turns any non-2xx answer into a KindStatus error.
// On success the caller owns resp.Body.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindNetwork, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		if c.log != nil {
			c.log.Debugw("device_http_error",
				"op", op,
				"status", resp.StatusCode,
				"body", string(snippet),
				"latency_ms", time.Since(start).Milliseconds(),
			)
		}
		return nil, &Error{Op: op, Kind: KindStatus, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return resp, nil
}
