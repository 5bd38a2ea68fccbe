package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	yt "github.com/kkdai/youtube/v2"
)

// downloaderStrategy is the heavy, opt-in last resort: it uses the general
// purpose downloader client to enumerate every caption track the player
// response declares (manual and auto-generated), fetches the best one and
// normalizes whatever subtitle format comes back. Enabled via configuration
// at construction time, never probed at runtime.
type downloaderStrategy struct {
	client  *yt.Client
	fetcher *Fetcher
}

func newDownloaderStrategy(client *yt.Client, fetcher *Fetcher) *downloaderStrategy {
	return &downloaderStrategy{client: client, fetcher: fetcher}
}

func (s *downloaderStrategy) Name() string { return "downloader" }

func (s *downloaderStrategy) Attempt(ctx context.Context, videoID, language string) (*StrategyOutcome, error) {
	video, err := s.client.GetVideoContext(ctx, watchPageURL(videoID))
	if err != nil {
		return nil, fmt.Errorf("downloader metadata fetch failed: %w", err)
	}

	track, ok := pickCaptionTrack(video.CaptionTracks, language)
	if !ok {
		return nil, fmt.Errorf("no caption tracks declared for %s", videoID)
	}

	captionURL := strings.ReplaceAll(track.BaseURL, "&amp;", "&")
	resp, err := s.fetcher.Fetch(ctx, captionURL)
	if err != nil {
		return nil, fmt.Errorf("caption track fetch failed: %w", err)
	}
	if resp == nil || resp.StatusCode != http.StatusOK || len(resp.Body) == 0 {
		return nil, fmt.Errorf("caption track %s returned no usable body", track.LanguageCode)
	}

	text := NormalizeSubtitles(string(resp.Body))
	if text == "" {
		return nil, fmt.Errorf("caption track %s normalized to empty text", track.LanguageCode)
	}

	return &StrategyOutcome{Text: text, Language: track.LanguageCode}, nil
}

// pickCaptionTrack prefers a manual track in the requested language, then
// an auto-generated one in that language, then any manual track, then any
// auto track. Auto-generated tracks carry Kind "asr" in the player response.
func pickCaptionTrack(tracks []yt.CaptionTrack, language string) (yt.CaptionTrack, bool) {
	var manual, auto []yt.CaptionTrack
	for _, t := range tracks {
		if t.BaseURL == "" {
			continue
		}
		if t.Kind == "asr" {
			auto = append(auto, t)
		} else {
			manual = append(manual, t)
		}
	}

	for _, group := range [][]yt.CaptionTrack{manual, auto} {
		for _, t := range group {
			if languageMatches(t.LanguageCode, language) {
				return t, true
			}
		}
	}
	if len(manual) > 0 {
		return manual[0], true
	}
	if len(auto) > 0 {
		return auto[0], true
	}
	return yt.CaptionTrack{}, false
}

// languageMatches treats regional variants as equivalent ("en" matches
// "en-US" and vice versa).
func languageMatches(code, want string) bool {
	if want == "" {
		return false
	}
	code = strings.ToLower(code)
	want = strings.ToLower(want)
	return code == want ||
		strings.HasPrefix(code, want+"-") ||
		strings.HasPrefix(want, code+"-")
}
