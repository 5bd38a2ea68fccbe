package youtube

import (
	"context"
	"log"
	"strings"
	"time"

	"edureach-backend/internal/models"
)

// StrategyOutcome is the normalized product of one extraction strategy.
// Text must be non-empty for the attempt to count as a success; Segments
// are optional since not every source carries timing data.
type StrategyOutcome struct {
	Text     string
	Segments []models.TranscriptSegment
	Language string
}

// Strategy is one self-contained, independently fallible way of obtaining a
// transcript. Implementations catch their own internal faults and surface
// them as an error return; nothing escapes the driver loop.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, videoID, language string) (*StrategyOutcome, error)
}

// Extractor runs an ordered list of strategies until one produces non-empty
// text. The order is a cost/reliability tradeoff, so strategies run
// sequentially and short-circuit on first success.
type Extractor struct {
	strategies []Strategy
	now        func() time.Time
}

func NewExtractor(strategies []Strategy) *Extractor {
	return &Extractor{strategies: strategies, now: time.Now}
}

// Extract always returns a result. Every strategy invocation, success or
// failure, is appended to the attempts trail in invocation order; the trail
// is part of the contract, letting callers tell "no captions exist" apart
// from "every strategy was individually blocked".
func (e *Extractor) Extract(ctx context.Context, videoID, language string) models.TranscriptResult {
	attempts := make([]models.Attempt, 0, len(e.strategies))

	for _, s := range e.strategies {
		out, err := s.Attempt(ctx, videoID, language)
		if err != nil {
			log.Printf("Strategy %s failed for %s: %v", s.Name(), videoID, err)
			attempts = append(attempts, models.Attempt{Method: s.Name(), Error: err.Error()})
			continue
		}

		ok := out != nil && strings.TrimSpace(out.Text) != ""
		attempts = append(attempts, models.Attempt{Method: s.Name(), OK: &ok})
		if !ok {
			continue
		}

		text := strings.TrimSpace(out.Text)
		return models.TranscriptResult{
			Success:     true,
			VideoID:     videoID,
			Language:    out.Language,
			Transcript:  text,
			Segments:    out.Segments,
			WordCount:   len(strings.Fields(text)),
			Method:      s.Name(),
			Attempts:    attempts,
			ExtractedAt: e.now(),
		}
	}

	return models.TranscriptResult{
		Success:     false,
		VideoID:     videoID,
		Segments:    []models.TranscriptSegment{},
		Attempts:    attempts,
		Error:       "could not extract transcript from this video",
		ExtractedAt: e.now(),
	}
}
