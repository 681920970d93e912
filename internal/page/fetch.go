package page

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxPageBytes = 8 << 20

// ErrNotHTML is returned when the target answers with something other than a page.
var ErrNotHTML = errors.New("page: not an html document")

type FetcherOptions struct {
	HTTPClient *http.Client
	Limiter    *HostLimiter
	UserAgent  string
	Timeout    time.Duration
}

// Fetcher downloads a posting and parses it into an HTMLDocument.
type Fetcher struct {
	hc      *http.Client
	limiter *HostLimiter
	ua      string
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = "JobFlow/1.0 (+local)"
	}
	return &Fetcher{hc: hc, limiter: opts.Limiter, ua: ua}
}

// Fetch GETs raw and returns the parsed page. The document URL is the final
// URL after redirects.
func (f *Fetcher) Fetch(ctx context.Context, raw string) (*HTMLDocument, error) {
	if err := f.limiter.WaitURL(ctx, raw); err != nil {
		return nil, fmt.Errorf("page: rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("page: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("page: get %s: %w", raw, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("page: get %s: status %d: %s", raw, res.StatusCode, strings.TrimSpace(string(b)))
	}

	if ct := res.Header.Get("Content-Type"); ct != "" && !IsHTMLContentType(ct) {
		return nil, fmt.Errorf("%w: %s", ErrNotHTML, ct)
	}

	final := raw
	if res.Request != nil && res.Request.URL != nil {
		final = res.Request.URL.String()
	}
	return Parse(final, io.LimitReader(res.Body, maxPageBytes))
}

func IsHTMLContentType(ct string) bool {
	ct = strings.ToLower(ct)
	return strings.Contains(ct, "html")
}
