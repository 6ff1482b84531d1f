// Package gallery assembles the video archive page: it resolves raw
// links to a platform, fetches display metadata and guarantees every
// entry ends up renderable, even when the upstream platform refuses.
package gallery

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/models"
	"github.com/improv-tovarisch/backend/pkg/placeholder"
	"github.com/improv-tovarisch/backend/pkg/videolink"
	"github.com/improv-tovarisch/backend/pkg/videometa"
)

const defaultConcurrency = 4

type Service struct {
	fetcher     *videometa.Fetcher
	concurrency int
}

type Option func(*Service)

func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func NewService(fetcher *videometa.Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveVideos turns sources into displayable resources. Results keep
// the input order, one resource per source; a source that cannot be
// resolved still yields a complete fallback entry instead of dropping
// out of the gallery.
func (s *Service) ResolveVideos(ctx context.Context, sources []models.VideoSource) []models.VideoResource {
	resources := make([]models.VideoResource, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range sources {
		i := i
		g.Go(func() error {
			resources[i] = s.resolveOne(ctx, sources[i])
			return nil
		})
	}
	g.Wait()

	return resources
}

func (s *Service) resolveOne(ctx context.Context, src models.VideoSource) models.VideoResource {
	r := videolink.Resolve(src.URL)
	md := s.fetcher.Fetch(ctx, r)

	if md.Source == models.SourceFallback {
		logger.Log.Debug().
			Str("url", src.URL).
			Str("platform", string(r.Platform)).
			Msg("serving fallback video card")
	}

	preview := md.Thumbnail
	if preview == "" {
		preview = placeholder.Generate(md.Title, string(r.Platform), "", "")
	}

	url := r.CanonicalURL
	if url == "" {
		url = src.URL
	}

	return models.VideoResource{
		ID:             r.StableID,
		Title:          md.Title,
		Description:    md.Description,
		URL:            url,
		Platform:       r.Platform,
		PreviewImage:   preview,
		AuthorName:     md.AuthorName,
		Duration:       src.Duration,
		MetadataSource: md.Source,
	}
}
