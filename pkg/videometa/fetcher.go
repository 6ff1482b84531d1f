// Package videometa retrieves title/author/thumbnail metadata for
// resolved video URLs: the oEmbed endpoint for YouTube, Open Graph tags
// of the embed page for VK. Every failure path — timeout, non-2xx,
// malformed body, missing fields — degrades to fallback metadata; the
// fetcher never returns an error to its caller.
package videometa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/models"
	"github.com/improv-tovarisch/backend/pkg/videolink"
)

const maxBodySize = 2 * 1024 * 1024

type Metadata struct {
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Thumbnail   string                `json:"thumbnail,omitempty"`
	AuthorName  string                `json:"author_name,omitempty"`
	Source      models.MetadataSource `json:"source"`
}

type Fetcher struct {
	client         *http.Client
	cache          Cache
	limiter        *rate.Limiter
	userAgent      string
	oembedEndpoint string
}

type FetcherOption func(*Fetcher)

func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = timeout
	}
}

func WithCache(cache Cache) FetcherOption {
	return func(f *Fetcher) {
		f.cache = cache
	}
}

func WithRateLimit(limiter *rate.Limiter) FetcherOption {
	return func(f *Fetcher) {
		f.limiter = limiter
	}
}

func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithOEmbedEndpoint overrides the YouTube oEmbed endpoint (tests).
func WithOEmbedEndpoint(endpoint string) FetcherOption {
	return func(f *Fetcher) {
		f.oembedEndpoint = endpoint
	}
}

func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		userAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		oembedEndpoint: "https://www.youtube.com/oembed",
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch returns metadata for a resolved video. Successful lookups are
// cached by canonical URL; fallbacks are not, so a transient outage is
// retried on the next request.
func (f *Fetcher) Fetch(ctx context.Context, r videolink.Resolved) Metadata {
	cacheKey := r.CanonicalURL
	if f.cache != nil && cacheKey != "" {
		if md, ok := f.cache.Get(ctx, cacheKey); ok {
			return md
		}
	}

	md, ok := f.fetch(ctx, r)
	if !ok {
		return fallbackFor(r)
	}

	if f.cache != nil && cacheKey != "" {
		f.cache.Set(ctx, cacheKey, md)
	}
	return md
}

func (f *Fetcher) fetch(ctx context.Context, r videolink.Resolved) (Metadata, bool) {
	switch r.Platform {
	case models.PlatformYouTube:
		return f.fetchOEmbed(ctx, r)
	case models.PlatformVK:
		return f.fetchOpenGraph(ctx, r)
	default:
		return Metadata{}, false
	}
}

type oembedResponse struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (f *Fetcher) fetchOEmbed(ctx context.Context, r videolink.Resolved) (Metadata, bool) {
	endpoint := f.oembedEndpoint + "?format=json&url=" + url.QueryEscape(r.CanonicalURL)

	body, ok := f.get(ctx, endpoint)
	if !ok {
		return Metadata{}, false
	}

	var resp oembedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Log.Debug().Err(err).Str("video", r.StableID).Msg("oembed decode failed")
		return Metadata{}, false
	}
	if resp.Title == "" {
		return Metadata{}, false
	}

	thumbnail := resp.ThumbnailURL
	if thumbnail == "" {
		thumbnail = r.ThumbnailURL
	}

	return Metadata{
		Title:      resp.Title,
		AuthorName: resp.AuthorName,
		Thumbnail:  thumbnail,
		Source:     models.SourceOEmbed,
	}, true
}

// fetchOpenGraph scrapes og: meta tags from the VK embed page.
func (f *Fetcher) fetchOpenGraph(ctx context.Context, r videolink.Resolved) (Metadata, bool) {
	body, ok := f.get(ctx, r.EmbedURL)
	if !ok {
		return Metadata{}, false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		logger.Log.Debug().Err(err).Str("video", r.StableID).Msg("embed page parse failed")
		return Metadata{}, false
	}

	title := ogContent(doc, "og:title")
	if title == "" {
		return Metadata{}, false
	}

	return Metadata{
		Title:       title,
		Description: ogContent(doc, "og:description"),
		Thumbnail:   ogContent(doc, "og:image"),
		Source:      models.SourceEmbed,
	}, true
}

func ogContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf(`meta[property=%q]`, property)).First().Attr("content")
	return strings.TrimSpace(content)
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, bool) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Debug().Err(err).Str("url", rawURL).Msg("metadata fetch failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Debug().Int("status", resp.StatusCode).Str("url", rawURL).Msg("metadata fetch non-2xx")
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, false
	}
	return body, true
}

func fallbackFor(r videolink.Resolved) Metadata {
	return Metadata{
		Title:  fmt.Sprintf("%s • %s", r.Platform, r.StableID),
		Source: models.SourceFallback,
	}
}
