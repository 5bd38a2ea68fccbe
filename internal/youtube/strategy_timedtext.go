package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"
	"strings"

	"edureach-backend/internal/models"
)

const timedTextBase = "https://www.youtube.com/api/timedtext"

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// timedTextStrategy queries the lower-level timedtext endpoint directly,
// trying several parameter variants. The endpoint frequently answers 200
// with an empty body, so candidates are skipped on empty/non-200/unparsable
// responses and the first one yielding non-empty text wins.
type timedTextStrategy struct {
	fetcher *Fetcher
	base    string
}

func newTimedTextStrategy(fetcher *Fetcher) *timedTextStrategy {
	return &timedTextStrategy{fetcher: fetcher, base: timedTextBase}
}

func (s *timedTextStrategy) Name() string { return "timedtext" }

func (s *timedTextStrategy) Attempt(ctx context.Context, videoID, language string) (*StrategyOutcome, error) {
	candidates := []string{
		fmt.Sprintf("%s?lang=%s&v=%s", s.base, language, videoID),
		fmt.Sprintf("%s?v=%s", s.base, videoID),
		fmt.Sprintf("%s?tlang=%s&v=%s", s.base, language, videoID),
		fmt.Sprintf("%s?v=%s&fmt=json3", s.base, videoID),
		fmt.Sprintf("%s?v=%s&fmt=srv3", s.base, videoID),
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := s.fetcher.Fetch(ctx, candidate)
		if err != nil || resp == nil {
			continue
		}
		if resp.StatusCode != http.StatusOK || len(strings.TrimSpace(string(resp.Body))) == 0 {
			log.Printf("timedtext candidate skipped: %s status=%d len=%d", candidate, resp.StatusCode, len(resp.Body))
			continue
		}

		var tt timedTextXML
		if err := xml.Unmarshal(resp.Body, &tt); err != nil {
			log.Printf("timedtext XML parse error for %s: %v; snippet=%q", candidate, err, truncateRunes(string(resp.Body), 200))
			continue
		}

		var segments []models.TranscriptSegment
		var fullText strings.Builder
		for _, t := range tt.Texts {
			text := strings.TrimSpace(html.UnescapeString(t.Text))
			if text == "" {
				continue
			}

			start, _ := strconv.ParseFloat(t.Start, 64)
			dur, _ := strconv.ParseFloat(t.Dur, 64)
			segments = append(segments, models.TranscriptSegment{
				Start:    start,
				Duration: dur,
				Text:     text,
			})

			if fullText.Len() > 0 {
				fullText.WriteString(" ")
			}
			fullText.WriteString(text)
		}

		if fullText.Len() == 0 {
			continue
		}

		return &StrategyOutcome{
			Text:     fullText.String(),
			Segments: segments,
			Language: language,
		}, nil
	}

	return nil, fmt.Errorf("no timedtext candidate produced captions")
}
