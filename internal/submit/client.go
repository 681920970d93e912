// Package submit sends an assembled record to the JobFlow sink and turns
// the outcome into one status line.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"jobflow-engine/internal/domain"
	"jobflow-engine/internal/page"
)

const (
	DefaultBaseURL = "http://localhost:8081"
	ApplyPath      = "/apply"

	// sink error bodies are cut to this many characters in status lines
	maxErrorText = 140
)

type ClientConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client posts records to <BaseURL>/apply. One attempt per Send; no retries.
type Client struct {
	baseURL string
	hc      *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: base, hc: hc}
}

func (c *Client) Endpoint() string { return c.baseURL + ApplyPath }

// APIError is a non-2xx answer from the sink.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("submit: sink returned %d: %s", e.StatusCode, ShortText(e.Body))
}

// ShortText trims s to the length shown in status lines, marking the cut.
func ShortText(s string) string {
	s = strings.TrimSpace(s)
	if cut := page.Truncate(s, maxErrorText); cut != s {
		return cut + "…"
	}
	return s
}

func (c *Client) Send(ctx context.Context, rec domain.JobRecord) (domain.Receipt, error) {
	var receipt domain.Receipt

	body, err := json.Marshal(rec)
	if err != nil {
		return receipt, fmt.Errorf("submit: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return receipt, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return receipt, fmt.Errorf("submit: post %s: %w", c.Endpoint(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return receipt, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&receipt); err != nil && err != io.EOF {
		return receipt, fmt.Errorf("submit: decode receipt: %w", err)
	}
	return receipt, nil
}
