package youtube

import (
	"context"
	"net/http"

	"edureach-backend/internal/models"
)

var chapterPattern = mustPagePattern(`"macroMarkersListItemRenderer":.*?"timeDescription":\{"simpleText":"([^"]+)".*?"title":\{"simpleText":"([^"]+)"`)

// ChapterLister scrapes chapter markers from the watch page. Best effort:
// any failure yields an empty list. Timestamps stay as display strings
// because the markup does not reliably expose a numeric offset.
type ChapterLister struct {
	fetcher *Fetcher
}

func NewChapterLister(fetcher *Fetcher) *ChapterLister {
	return &ChapterLister{fetcher: fetcher}
}

func (l *ChapterLister) ListChapters(ctx context.Context, videoID string) []models.Chapter {
	resp, err := l.fetcher.Fetch(ctx, watchPageURL(videoID))
	if err != nil || resp == nil || resp.StatusCode != http.StatusOK {
		return nil
	}

	return parseChapters(resp.Body)
}

func parseChapters(page []byte) []models.Chapter {
	var chapters []models.Chapter
	for _, m := range chapterPattern.FindAllSubmatch(page, -1) {
		if len(m) < 3 {
			continue
		}
		chapters = append(chapters, models.Chapter{
			Timestamp: string(m[1]),
			Title:     string(m[2]),
		})
	}
	return chapters
}
