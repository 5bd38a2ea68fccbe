package youtube

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"edureach-backend/internal/models"
)

// mustPagePattern compiles a watch-page scraping pattern in dot-matches-
// newline mode, since the script blobs can span lines.
func mustPagePattern(expr string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)` + expr)
}

// The caption declarations live inside a script blob in the watch page, not
// standalone JSON, so they are pulled out by pattern matching. A page-format
// change degrades this extractor to "nothing detected" rather than erroring.
var (
	captionTracksPattern = mustPagePattern(`"captions":.*?"playerCaptionsTracklistRenderer":\{"captionTracks":\[(.*?)\]`)
	captionLangPattern   = mustPagePattern(`"languageCode":"([^"]+)".*?"name":\{"simpleText":"([^"]+)"`)
)

// CaptionTrackLister discovers the caption languages a video advertises.
type CaptionTrackLister struct {
	fetcher *Fetcher
}

func NewCaptionTrackLister(fetcher *Fetcher) *CaptionTrackLister {
	return &CaptionTrackLister{fetcher: fetcher}
}

// ListTracks returns the detected caption tracks and whether detection
// actually succeeded. detected=false means the page gave us nothing to go
// on, which is not the same as the video having no captions; policy for
// that case belongs to the caller.
func (l *CaptionTrackLister) ListTracks(ctx context.Context, videoID string) ([]models.CaptionTrack, bool) {
	resp, err := l.fetcher.Fetch(ctx, watchPageURL(videoID))
	if err != nil || resp == nil || resp.StatusCode != http.StatusOK {
		return nil, false
	}

	tracks := parseCaptionTracks(resp.Body)
	if len(tracks) == 0 {
		return nil, false
	}
	return tracks, true
}

func parseCaptionTracks(page []byte) []models.CaptionTrack {
	m := captionTracksPattern.FindSubmatch(page)
	if len(m) < 2 {
		return nil
	}

	var tracks []models.CaptionTrack
	for _, lang := range captionLangPattern.FindAllSubmatch(m[1], -1) {
		if len(lang) < 3 {
			continue
		}
		name := string(lang[2])
		tracks = append(tracks, models.CaptionTrack{
			LanguageCode:  string(lang[1]),
			LanguageName:  name,
			AutoGenerated: strings.Contains(strings.ToLower(name), "auto-generated"),
		})
	}
	return tracks
}

// DefaultCaptionTracks is the optimistic assumption applied when detection
// fails: most videos carry at least auto-generated English.
func DefaultCaptionTracks() []models.CaptionTrack {
	return []models.CaptionTrack{
		{LanguageCode: "en", LanguageName: "English", AutoGenerated: true},
	}
}

func watchPageURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
