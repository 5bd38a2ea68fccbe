package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"edureach-backend/internal/models"
)

// browserHeaders mimic a real browser to reduce the chance of being served
// a bot-detection page.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"DNT":                       "1",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

const debugSnippetLimit = 1000

// Diagnostics records the most recent HTTP exchange seen while talking to
// YouTube. One instance is created per aggregate call and shared by the
// components involved in it; it is never process-global.
type Diagnostics struct {
	last *models.DebugExchange
}

func (d *Diagnostics) Record(url string, statusCode int, body []byte) {
	if d == nil {
		return
	}
	snippet := truncateRunes(strings.ReplaceAll(string(body), "\n", " "), debugSnippetLimit)
	d.last = &models.DebugExchange{
		URL:        url,
		StatusCode: statusCode,
		Snippet:    snippet,
	}
}

// truncateRunes cuts s to at most limit bytes without splitting a
// multi-byte rune.
func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Last returns the most recently recorded exchange, or nil.
func (d *Diagnostics) Last() *models.DebugExchange {
	if d == nil {
		return nil
	}
	return d.last
}

// RawResponse is a fully-read HTTP response.
type RawResponse struct {
	URL        string
	StatusCode int
	Body       []byte
}

// Fetcher performs GET requests with browser-like headers and retries
// throttling responses (429/403) and timeouts with exponential backoff.
type Fetcher struct {
	client     *http.Client
	maxRetries int
	diag       *Diagnostics

	// wait is overridable in tests to skip real backoff sleeps.
	wait func(ctx context.Context, d time.Duration) error
}

func NewFetcher(timeout time.Duration, maxRetries int, diag *Diagnostics) *Fetcher {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
		diag:       diag,
		wait:       sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Fetch GETs the URL. On 429/403 it backs off (2^attempt + attempt seconds)
// and retries; the final blocked response is returned rather than dropped so
// callers can inspect it. Timeouts and connection errors are retried the
// same way and yield an error once the retry budget is spent. Any other
// status is returned as-is without retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*RawResponse, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		resp, err := f.get(ctx, url)
		if err != nil {
			lastErr = err
			if attempt < f.maxRetries-1 {
				if werr := f.wait(ctx, time.Duration(1<<attempt+1)*time.Second); werr != nil {
					return nil, werr
				}
				continue
			}
			return nil, lastErr
		}

		f.diag.Record(url, resp.StatusCode, resp.Body)

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden {
			if attempt < f.maxRetries-1 {
				backoff := time.Duration(1<<attempt+attempt) * time.Second
				if werr := f.wait(ctx, backoff); werr != nil {
					return nil, werr
				}
				continue
			}
			// Out of retries: hand back the blocked response for inspection.
			return resp, nil
		}

		return resp, nil
	}

	return nil, lastErr
}

func (f *Fetcher) get(ctx context.Context, url string) (*RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}

	return &RawResponse{URL: url, StatusCode: resp.StatusCode, Body: body}, nil
}
