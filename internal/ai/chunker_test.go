package ai

import (
	"strings"
	"testing"
)

func TestChunkText_SmallTextSingleChunk(t *testing.T) {
	text := "Learn Python: x = 5 means assign 5 to x. Functions are reusable blocks."

	chunks := ChunkText(text, 1000)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("Expected text unchanged, got %q", chunks[0])
	}
}

func TestChunkText_PacksParagraphs(t *testing.T) {
	text := "first paragraph here\n\nsecond paragraph here\n\nthird paragraph here"

	chunks := ChunkText(text, 45)
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "first paragraph here\n\nsecond paragraph here" {
		t.Errorf("Unexpected first chunk: %q", chunks[0])
	}
	if chunks[1] != "third paragraph here" {
		t.Errorf("Unexpected second chunk: %q", chunks[1])
	}
}

func TestChunkText_SplitsOversizedParagraphOnSentences(t *testing.T) {
	text := "This is sentence one. This is sentence two! Is this sentence three? Trailing fragment without punctuation"

	chunks := ChunkText(text, 50)
	if len(chunks) < 2 {
		t.Fatalf("Expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 50 {
			t.Errorf("Chunk %d exceeds budget (%d chars): %q", i, len(c), c)
		}
	}

	joined := strings.Join(chunks, " ")
	for _, want := range []string{"sentence one", "sentence two", "sentence three", "Trailing fragment without punctuation"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Content %q lost during chunking", want)
		}
	}
}

func TestChunkText_HugeSentenceKeptWhole(t *testing.T) {
	sentence := strings.Repeat("word ", 30) // no terminal punctuation, ~150 chars

	chunks := ChunkText(sentence, 50)
	if len(chunks) != 1 {
		t.Fatalf("Expected a single oversized chunk, got %d", len(chunks))
	}
	if chunks[0] != strings.TrimSpace(sentence) {
		t.Errorf("Expected sentence kept whole, got %q", chunks[0])
	}
}

func TestChunkText_ExactSizeParagraph(t *testing.T) {
	para := strings.Repeat("a", 100)

	chunks := ChunkText(para, 100)
	if len(chunks) != 1 {
		t.Fatalf("Expected 1 chunk for exact-size paragraph, got %d", len(chunks))
	}
	if chunks[0] != para {
		t.Error("Expected exact-size paragraph kept whole")
	}
}

func TestChunkText_Lossless(t *testing.T) {
	text := "Alpha bravo charlie. Delta echo foxtrot.\n\nGolf hotel india. Juliett kilo lima.\n\nMike november oscar papa."

	chunks := ChunkText(text, 40)

	var words []string
	for _, c := range chunks {
		words = append(words, strings.Fields(c)...)
	}
	original := strings.Fields(text)
	if len(words) != len(original) {
		t.Fatalf("Word count changed: got %d, want %d", len(words), len(original))
	}
	for i := range words {
		if words[i] != original[i] {
			t.Errorf("Word %d changed: got %q, want %q", i, words[i], original[i])
		}
	}
}

func TestChunkText_Empty(t *testing.T) {
	if chunks := ChunkText("   \n  ", 100); chunks != nil {
		t.Errorf("Expected nil for blank input, got %q", chunks)
	}
	if chunks := ChunkText("text", 0); chunks != nil {
		t.Errorf("Expected nil for zero budget, got %q", chunks)
	}
}
