package youtube

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestTimedTextStrategy_SkipsUnparsableCandidate(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		if q.Get("lang") != "" {
			// First candidate answers 200 with junk that is not XML.
			io.WriteString(w, "<<<definitely not captions")
			return
		}
		io.WriteString(w, `<transcript><text start="0" dur="1.5">welcome to the course</text><text start="1.5" dur="2">first topic today</text></transcript>`)
	}))
	defer server.Close()

	strategy := newTimedTextStrategy(newTestFetcher(1, nil))
	strategy.base = server.URL

	outcome, err := strategy.Attempt(context.Background(), "dQw4w9WgXcQ", "en")
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if outcome.Text != "welcome to the course first topic today" {
		t.Errorf("Expected joined text, got %q", outcome.Text)
	}
	if outcome.Language != "en" {
		t.Errorf("Expected language en, got %q", outcome.Language)
	}
	if len(outcome.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(outcome.Segments))
	}
	if outcome.Segments[1].Start != 1.5 || outcome.Segments[1].Duration != 2 {
		t.Errorf("Expected second segment at 1.5s for 2s, got start=%v dur=%v",
			outcome.Segments[1].Start, outcome.Segments[1].Duration)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("Expected the second candidate to win after 2 requests, got %d", got)
	}
}

func TestTimedTextStrategy_SkipsEmptyAndNon200Candidates(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		switch {
		case q.Get("lang") != "":
			// 200 with an empty body, the endpoint's favorite answer.
		case q.Get("tlang") == "" && q.Get("fmt") == "":
			w.WriteHeader(http.StatusNotFound)
		default:
			io.WriteString(w, `<transcript><text start="0" dur="3">finally captions</text></transcript>`)
		}
	}))
	defer server.Close()

	strategy := newTimedTextStrategy(newTestFetcher(1, nil))
	strategy.base = server.URL

	outcome, err := strategy.Attempt(context.Background(), "dQw4w9WgXcQ", "en")
	if err != nil {
		t.Fatalf("Attempt failed: %v", err)
	}
	if outcome.Text != "finally captions" {
		t.Errorf("Expected text from third candidate, got %q", outcome.Text)
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("Expected 3 requests before a candidate succeeded, got %d", got)
	}
}

func TestTimedTextStrategy_AllCandidatesExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	strategy := newTimedTextStrategy(newTestFetcher(1, nil))
	strategy.base = server.URL

	outcome, err := strategy.Attempt(context.Background(), "dQw4w9WgXcQ", "en")
	if err == nil {
		t.Fatal("Expected an error when every candidate answers empty")
	}
	if outcome != nil {
		t.Errorf("Expected nil outcome on exhaustion, got %+v", outcome)
	}
	if got := calls.Load(); got != 5 {
		t.Errorf("Expected all 5 candidates tried, got %d requests", got)
	}
}
