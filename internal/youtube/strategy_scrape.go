package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

var (
	transcriptRendererPattern = mustPagePattern(`"transcriptRenderer".*?"content":\{"runs":\[(.*?)\]`)
	runTextPattern            = mustPagePattern(`"text":"([^"]+)"`)
)

// scrapeStrategy pulls inline transcript rendering data out of the watch
// page HTML. Last structured attempt before the heavy fallback: it yields
// flattened text only, since the runs carry no usable timestamps.
type scrapeStrategy struct {
	fetcher *Fetcher
}

func newScrapeStrategy(fetcher *Fetcher) *scrapeStrategy {
	return &scrapeStrategy{fetcher: fetcher}
}

func (s *scrapeStrategy) Name() string { return "web_scraping" }

func (s *scrapeStrategy) Attempt(ctx context.Context, videoID, language string) (*StrategyOutcome, error) {
	resp, err := s.fetcher.Fetch(ctx, watchPageURL(videoID))
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page unavailable for %s", videoID)
	}

	m := transcriptRendererPattern.FindSubmatch(resp.Body)
	if len(m) < 2 {
		return nil, fmt.Errorf("no inline transcript data in watch page")
	}

	var parts []string
	for _, run := range runTextPattern.FindAllSubmatch(m[1], -1) {
		if len(run) > 1 {
			parts = append(parts, string(run[1]))
		}
	}

	if len(parts) == 0 {
		return nil, fmt.Errorf("inline transcript data contained no text runs")
	}

	return &StrategyOutcome{Text: strings.Join(parts, " ")}, nil
}
