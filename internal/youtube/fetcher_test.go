package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"
)

func newTestFetcher(maxRetries int, diag *Diagnostics) *Fetcher {
	f := NewFetcher(2*time.Second, maxRetries, diag)
	f.wait = func(ctx context.Context, d time.Duration) error { return nil }
	return f
}

func TestFetcher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" || r.Header.Get("Accept-Language") == "" {
			t.Error("Expected browser headers on outgoing request")
		}
		w.Write([]byte("page body"))
	}))
	defer server.Close()

	resp, err := newTestFetcher(3, nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "page body" {
		t.Errorf("Expected body %q, got %q", "page body", resp.Body)
	}
}

func TestFetcher_RetriesThrottlingThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("finally"))
	}))
	defer server.Close()

	resp, err := newTestFetcher(3, nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 after retries, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 requests, got %d", got)
	}
}

func TestFetcher_ReturnsFinalBlockedResponse(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	}))
	defer server.Close()

	resp, err := newTestFetcher(3, nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected blocked response, not error: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected final 403 to be handed back, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected retry budget of 3 to be spent, got %d requests", got)
	}
}

func TestFetcher_NoRetryOnOtherStatuses(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	resp, err := newTestFetcher(3, nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 passthrough, got %d", resp.StatusCode)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected exactly 1 request for a 404, got %d", got)
	}
}

func TestFetcher_ConnectionErrorExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Nothing listening anymore

	_, err := newTestFetcher(2, nil).Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error when the server is unreachable")
	}
}

func TestDiagnostics_RecordsLastExchange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("first line\nsecond line"))
	}))
	defer server.Close()

	diag := &Diagnostics{}
	if _, err := newTestFetcher(1, diag).Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	last := diag.Last()
	if last == nil {
		t.Fatal("Expected a recorded exchange")
	}
	if last.StatusCode != http.StatusOK {
		t.Errorf("Expected recorded status 200, got %d", last.StatusCode)
	}
	if last.Snippet != "first line second line" {
		t.Errorf("Expected newlines flattened in snippet, got %q", last.Snippet)
	}
}

func TestDiagnostics_SnippetTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the snippet limit must be dropped
	// whole, not cut mid-sequence.
	body := strings.Repeat("a", debugSnippetLimit-1) + "é"

	diag := &Diagnostics{}
	diag.Record("http://example.com", 200, []byte(body))

	snippet := diag.Last().Snippet
	if !utf8.ValidString(snippet) {
		t.Fatalf("Expected a valid UTF-8 snippet, got %q", snippet[len(snippet)-4:])
	}
	if len(snippet) != debugSnippetLimit-1 {
		t.Errorf("Expected the straddling rune dropped (%d bytes), got %d", debugSnippetLimit-1, len(snippet))
	}
}

func TestDiagnostics_NilSafe(t *testing.T) {
	var diag *Diagnostics
	diag.Record("http://example.com", 200, []byte("x"))
	if diag.Last() != nil {
		t.Error("Expected nil Last on nil diagnostics")
	}
}
