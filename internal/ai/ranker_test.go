package ai

import (
	"reflect"
	"testing"
)

func TestSelectRelevantChunks_KeywordMatch(t *testing.T) {
	chunks := []string{
		"Introduction to the course and what you will learn.",
		"Variables hold values. A variable can be reassigned at any time.",
		"Functions let you reuse code. Define functions with the def keyword. Functions can return values.",
		"Loops repeat work. For loops and while loops are both available.",
		"Closing thoughts and where to go next.",
	}

	got := SelectRelevantChunks(chunks, "explain functions", 2)
	if len(got) != 1 {
		t.Fatalf("Expected only the matching chunk, got %d: %q", len(got), got)
	}
	if got[0] != chunks[2] {
		t.Errorf("Expected functions chunk, got %q", got[0])
	}
}

func TestSelectRelevantChunks_RanksByScore(t *testing.T) {
	chunks := []string{
		"Loops repeat work until a condition changes.",
		"A quick aside about loops.",
		"Loops, loops and more loops: nested loops inside loops.",
		"Nothing to see here.",
		"Or here.",
	}

	got := SelectRelevantChunks(chunks, "tell me about loops", 2)
	if len(got) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(got))
	}
	if got[0] != chunks[2] {
		t.Errorf("Expected densest chunk ranked first, got %q", got[0])
	}
	if got[1] != chunks[0] && got[1] != chunks[1] {
		t.Errorf("Expected another loops chunk second, got %q", got[1])
	}
}

func TestSelectRelevantChunks_ExactWordWins(t *testing.T) {
	chunks := []string{
		"Learn Python: x = 5 means assign 5 to x.",
		"Functions are reusable code blocks used everywhere.",
	}

	got := SelectRelevantChunks(chunks, "explain functions", 1)
	if len(got) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(got))
	}
	if got[0] != chunks[1] {
		t.Errorf("Expected exact-word functions match, got %q", got[0])
	}
}

func TestSelectRelevantChunks_FewChunksReturnedAsIs(t *testing.T) {
	chunks := []string{"only one chunk", "and another"}

	got := SelectRelevantChunks(chunks, "anything at all", 3)
	if !reflect.DeepEqual(got, chunks) {
		t.Errorf("Expected all chunks back unchanged, got %q", got)
	}
}

func TestSelectRelevantChunks_NoKeywordsFallsBackPositionally(t *testing.T) {
	chunks := []string{"aaa", "bbb", "ccc", "ddd"}

	// Every query token is a stop word or too short
	got := SelectRelevantChunks(chunks, "what is the", 2)
	if !reflect.DeepEqual(got, []string{"aaa", "bbb"}) {
		t.Errorf("Expected positional fallback, got %q", got)
	}
}

func TestSelectRelevantChunks_NoMatchesFallsBackPositionally(t *testing.T) {
	chunks := []string{"alpha content", "bravo content", "charlie content", "delta content"}

	got := SelectRelevantChunks(chunks, "quantum chromodynamics", 3)
	if !reflect.DeepEqual(got, chunks[:3]) {
		t.Errorf("Expected first chunks when nothing scores, got %q", got)
	}
}

func TestSelectRelevantChunks_NeverEmptyForNonEmptyInput(t *testing.T) {
	chunks := []string{"x", "y", "z", "w"}

	got := SelectRelevantChunks(chunks, "", 2)
	if len(got) == 0 {
		t.Fatal("Expected a non-empty selection")
	}
}

func TestSelectRelevantChunks_WholeWordBeatsSubstring(t *testing.T) {
	chunks := []string{
		"The classroom was full of classmates.", // substring hits only
		"The class starts at nine.",             // one whole-word hit
		"nothing relevant here",
		"or here either",
	}

	got := SelectRelevantChunks(chunks, "which class", 1)
	if len(got) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(got))
	}
	if got[0] != chunks[1] {
		t.Errorf("Expected whole-word match to win, got %q", got[0])
	}
}

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("What does the Decorator pattern do, please?")
	want := []string{"decorator", "pattern"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractKeywords = %q, want %q", got, want)
	}
}

func TestSelectRelevantChunks_Empty(t *testing.T) {
	if got := SelectRelevantChunks(nil, "query", 3); got != nil {
		t.Errorf("Expected nil for no chunks, got %q", got)
	}
	if got := SelectRelevantChunks([]string{"a"}, "query", 0); got != nil {
		t.Errorf("Expected nil for zero maxChunks, got %q", got)
	}
}
