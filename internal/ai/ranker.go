package ai

import (
	"regexp"
	"sort"
	"strings"
)

// Interrogatives and glue words that would otherwise pass the length cut
// and dominate question-shaped queries.
var stopWords = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "who": {}, "why": {}, "how": {},
	"this": {}, "that": {}, "the": {}, "and": {}, "for": {}, "are": {},
	"with": {}, "about": {}, "does": {}, "please": {},
}

var nonAlpha = regexp.MustCompile(`[^a-z]`)

// SelectRelevantChunks picks up to maxChunks chunks most relevant to the
// query. Exact whole-word keyword matches score 3x, additional substring
// occurrences 1x, and a small positional bonus of (n-i)*0.1 breaks ties in
// favor of earlier chunks. When scoring finds nothing, the first maxChunks
// chunks are returned positionally: for non-empty input the result is
// never empty.
func SelectRelevantChunks(chunks []string, query string, maxChunks int) []string {
	if len(chunks) == 0 || maxChunks <= 0 {
		return nil
	}
	if len(chunks) <= maxChunks {
		return chunks
	}

	keywords := extractKeywords(query)
	if len(keywords) == 0 {
		return chunks[:maxChunks]
	}

	type scored struct {
		index        int
		keywordScore float64
		total        float64
	}

	candidates := make([]scored, 0, len(chunks))
	for i, chunk := range chunks {
		lower := strings.ToLower(chunk)

		var kwScore float64
		for _, kw := range keywords {
			exact := countWholeWord(lower, kw)
			substr := strings.Count(lower, kw)
			extra := substr - exact
			if extra < 0 {
				extra = 0
			}
			kwScore += float64(3*exact + extra)
		}
		if kwScore <= 0 {
			continue
		}

		position := float64(len(chunks)-i) * 0.1
		candidates = append(candidates, scored{index: i, keywordScore: kwScore, total: kwScore + position})
	}

	if len(candidates) == 0 {
		return chunks[:maxChunks]
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].total != candidates[b].total {
			return candidates[a].total > candidates[b].total
		}
		return candidates[a].index < candidates[b].index
	})

	if len(candidates) > maxChunks {
		candidates = candidates[:maxChunks]
	}

	selected := make([]string, 0, len(candidates))
	for _, c := range candidates {
		selected = append(selected, chunks[c.index])
	}
	return selected
}

// extractKeywords lower-cases the query and keeps alphabetic tokens longer
// than 3 characters that are not stop words.
func extractKeywords(query string) []string {
	var keywords []string
	for _, token := range strings.Fields(strings.ToLower(query)) {
		word := nonAlpha.ReplaceAllString(token, "")
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
	}
	return keywords
}

func countWholeWord(text, word string) int {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(word) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}
