package youtube

import (
	"context"
	"fmt"
	"strings"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
)

// libraryStrategy asks the maintained transcript API library. Preference
// chain: the requested language, then English variants, then anything.
type libraryStrategy struct {
	api *ytapi.YouTubeTranscriptApi
}

func newLibraryStrategy(api *ytapi.YouTubeTranscriptApi) *libraryStrategy {
	return &libraryStrategy{api: api}
}

func (s *libraryStrategy) Name() string { return "transcript_api" }

type languageCandidate struct {
	langs []string
	label string
}

var englishVariants = []string{"en", "en-US", "en-GB"}

// languageCandidates builds the preference chain for the transcript API:
// the requested language (English requests get the full variant list),
// then the English variants, then anything available.
func languageCandidates(language string) []languageCandidate {
	var candidates []languageCandidate
	if language != "" && language != "en" {
		candidates = append(candidates, languageCandidate{[]string{language}, language})
	}
	candidates = append(candidates, languageCandidate{englishVariants, "en"})
	// Last resort: any available transcript.
	candidates = append(candidates, languageCandidate{nil, ""})
	return candidates
}

func (s *libraryStrategy) Attempt(ctx context.Context, videoID, language string) (*StrategyOutcome, error) {
	candidates := languageCandidates(language)

	var lastErr error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		transcript, err := s.api.GetTranscript(videoID, c.langs)
		if err != nil {
			lastErr = err
			continue
		}

		var fullText strings.Builder
		for _, entry := range transcript.Entries {
			text := strings.TrimSpace(entry.Text)
			if text == "" {
				continue
			}
			if fullText.Len() > 0 {
				fullText.WriteString(" ")
			}
			fullText.WriteString(text)
		}

		if fullText.Len() == 0 {
			lastErr = fmt.Errorf("transcript for %s resolved to empty text", videoID)
			continue
		}

		return &StrategyOutcome{Text: fullText.String(), Language: c.label}, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no transcript available via transcript API")
	}
	return nil, lastErr
}
