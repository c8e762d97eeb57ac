// Package scan is the client for the antivirus scanning service. The
// service is an external collaborator; this package only speaks its
// HTTP contract.
package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result values reported by the scanner per file.
const (
	ResultOK    = "OK"
	ResultFound = "FOUND"
)

// FileResult is a single entry in the scanner's response.
type FileResult struct {
	Filename string `json:"Filename"`
	Result   string `json:"Result"`
}

// Client calls the scanning service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a scan client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("SCAN_URL is required")
	}
	timeout := 30 * time.Second
	if raw := strings.TrimSpace(os.Getenv("SCAN_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Scan submits content to the scanner and returns its per-file
// results. Any transport or protocol problem is an error; "infected"
// is a successful scan with a FOUND result.
func (c *Client) Scan(ctx context.Context, filename string, content []byte) ([]FileResult, error) {
	endpoint := c.baseURL + "/scan?name=" + url.QueryEscape(filename)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("build scan request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call scan service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read scan response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scan service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []FileResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode scan response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("scan service returned no results")
	}
	return results, nil
}
