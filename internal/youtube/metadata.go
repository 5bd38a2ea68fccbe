package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"edureach-backend/internal/models"
)

const oembedBase = "https://www.youtube.com/oembed"

// MetadataResolver looks up title/author/thumbnail through the public oEmbed
// endpoint. It never fails: on any error it returns synthetic placeholder
// metadata so transcript delivery is never blocked by a metadata hiccup.
type MetadataResolver struct {
	fetcher *Fetcher
	base    string
	now     func() time.Time
}

func NewMetadataResolver(fetcher *Fetcher) *MetadataResolver {
	return &MetadataResolver{fetcher: fetcher, base: oembedBase, now: time.Now}
}

func (r *MetadataResolver) Resolve(ctx context.Context, videoID string) *models.VideoMetadata {
	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	oembedURL := fmt.Sprintf("%s?url=%s&format=json", r.base, url.QueryEscape(watchURL))

	resp, err := r.fetcher.Fetch(ctx, oembedURL)
	if err != nil || resp == nil || resp.StatusCode != http.StatusOK {
		if err != nil {
			log.Printf("oEmbed lookup failed for %s: %v", videoID, err)
		}
		return r.fallback(videoID)
	}

	var data struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		Duration     int    `json:"duration"`
		ThumbnailURL string `json:"thumbnail_url"`
		ProviderName string `json:"provider_name"`
	}
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		log.Printf("oEmbed response for %s is not valid JSON: %v", videoID, err)
		return r.fallback(videoID)
	}

	provider := data.ProviderName
	if provider == "" {
		provider = "YouTube"
	}

	return &models.VideoMetadata{
		VideoID:      videoID,
		Title:        data.Title,
		Author:       data.AuthorName,
		Duration:     data.Duration,
		ThumbnailURL: data.ThumbnailURL,
		Provider:     provider,
		ExtractedAt:  r.now(),
	}
}

func (r *MetadataResolver) fallback(videoID string) *models.VideoMetadata {
	return &models.VideoMetadata{
		VideoID:     videoID,
		Title:       fmt.Sprintf("YouTube Video %s", videoID),
		ExtractedAt: r.now(),
	}
}
