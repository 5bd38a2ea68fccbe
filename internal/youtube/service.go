package youtube

import (
	"context"
	"time"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"

	"edureach-backend/internal/models"
)

// Options configure the extraction service. The downloader fallback is a
// capability flag decided here, at construction, so tests and deployments
// without the heavy path behave identically to ones that simply never
// reach the fourth strategy.
type Options struct {
	HTTPTimeout      time.Duration
	MaxRetries       int
	EnableDownloader bool
}

// Service is the transcript acquisition entry point the rest of the
// application talks to.
type Service struct {
	opts          Options
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
	now           func() time.Time
}

func NewService(opts Options) *Service {
	if opts.HTTPTimeout == 0 {
		opts.HTTPTimeout = 15 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	return &Service{
		opts:          opts,
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
		now:           time.Now,
	}
}

// ResolveVideoID resolves any recognized URL/ID form to a canonical ID.
func (s *Service) ResolveVideoID(input string) (string, bool) {
	return ExtractVideoID(input)
}

func (s *Service) newFetcher(diag *Diagnostics) *Fetcher {
	return NewFetcher(s.opts.HTTPTimeout, s.opts.MaxRetries, diag)
}

func (s *Service) strategies(fetcher *Fetcher) []Strategy {
	strategies := []Strategy{
		newLibraryStrategy(s.transcriptAPI),
		newTimedTextStrategy(fetcher),
		newScrapeStrategy(fetcher),
	}
	if s.opts.EnableDownloader {
		strategies = append(strategies, newDownloaderStrategy(s.ytClient, fetcher))
	}
	return strategies
}

// GetMetadata never fails; see MetadataResolver.
func (s *Service) GetMetadata(ctx context.Context, videoID string) *models.VideoMetadata {
	return NewMetadataResolver(s.newFetcher(nil)).Resolve(ctx, videoID)
}

// ListCaptionTracks returns the detected tracks, falling back to the
// optimistic English default when detection fails.
func (s *Service) ListCaptionTracks(ctx context.Context, videoID string) []models.CaptionTrack {
	tracks, detected := NewCaptionTrackLister(s.newFetcher(nil)).ListTracks(ctx, videoID)
	if !detected {
		return DefaultCaptionTracks()
	}
	return tracks
}

// ExtractTranscript runs the strategy chain for a single video.
func (s *Service) ExtractTranscript(ctx context.Context, videoID, language string) models.TranscriptResult {
	if language == "" {
		language = "en"
	}
	fetcher := s.newFetcher(&Diagnostics{})
	return NewExtractor(s.strategies(fetcher)).Extract(ctx, videoID, language)
}

// ExtractComplete resolves the input once, then gathers metadata, caption
// languages, the transcript and chapters. The enrichments are best-effort;
// only the transcript outcome decides the envelope's success. All fetches
// within one call share a diagnostics sink whose last exchange lands in
// the response for troubleshooting.
func (s *Service) ExtractComplete(ctx context.Context, urlOrID, language string) models.AggregatedVideoData {
	if language == "" {
		language = "en"
	}

	videoID, ok := ExtractVideoID(urlOrID)
	if !ok {
		return models.AggregatedVideoData{
			Success:     false,
			SourceURL:   urlOrID,
			Error:       "invalid YouTube URL",
			ExtractedAt: s.now(),
		}
	}

	diag := &Diagnostics{}
	fetcher := s.newFetcher(diag)

	metadata := NewMetadataResolver(fetcher).Resolve(ctx, videoID)

	tracks, detected := NewCaptionTrackLister(fetcher).ListTracks(ctx, videoID)
	if !detected {
		tracks = DefaultCaptionTracks()
	}

	transcript := NewExtractor(s.strategies(fetcher)).Extract(ctx, videoID, language)

	chapters := NewChapterLister(fetcher).ListChapters(ctx, videoID)

	return models.AggregatedVideoData{
		Success:            transcript.Success,
		VideoID:            videoID,
		SourceURL:          urlOrID,
		Metadata:           metadata,
		Transcript:         &transcript,
		AvailableLanguages: tracks,
		Chapters:           chapters,
		DebugInfo:          diag.Last(),
		ExtractedAt:        s.now(),
	}
}
