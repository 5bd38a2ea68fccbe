package ai

import (
	"regexp"
	"strings"
)

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	sentenceEnd    = regexp.MustCompile(`[.!?]+\s+`)
)

// ChunkText splits text into chunks of at most maxChunkSize characters.
// Paragraphs (blank-line delimited) are packed greedily; a paragraph that
// alone exceeds the budget is split on sentence boundaries instead. Nothing
// is dropped, and a sentence is never cut mid-word: a single sentence
// larger than the budget is kept whole in its own chunk.
func ChunkText(text string, maxChunkSize int) []string {
	if maxChunkSize <= 0 {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var units []string
	for _, para := range paragraphBreak.Split(text, -1) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) > maxChunkSize {
			units = append(units, splitSentences(para)...)
		} else {
			units = append(units, para)
		}
	}

	var chunks []string
	var current strings.Builder
	for _, unit := range units {
		if current.Len() > 0 && current.Len()+len("\n\n")+len(unit) > maxChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(unit)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

// splitSentences breaks a paragraph after `.`, `!` or `?` followed by
// whitespace. The trailing fragment (no terminal punctuation) is kept as a
// final sentence.
func splitSentences(para string) []string {
	var sentences []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(para, -1) {
		s := strings.TrimSpace(para[start:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(para[start:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
