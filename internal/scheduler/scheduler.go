package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/improv-tovarisch/backend/pkg/gallery"
	"github.com/improv-tovarisch/backend/pkg/logger"
	"github.com/improv-tovarisch/backend/pkg/models"
)

// Scheduler keeps the video metadata cache warm so gallery requests
// are served from cache instead of hitting YouTube and VK inline.
type Scheduler struct {
	gallerySvc *gallery.Service
	sources    []models.VideoSource
	interval   time.Duration
	scheduler  gocron.Scheduler
}

func New(gallerySvc *gallery.Service, sources []models.VideoSource, interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		gallerySvc: gallerySvc,
		sources:    sources,
		interval:   interval,
		scheduler:  s,
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() {
			s.warmVideos(ctx)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	s.scheduler.Start()
	logger.Log.Info().Dur("interval", s.interval).Msg("video warm scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		logger.Log.Error().Err(err).Msg("scheduler shutdown error")
	}
}

func (s *Scheduler) warmVideos(ctx context.Context) {
	start := time.Now()
	resources := s.gallerySvc.ResolveVideos(ctx, s.sources)

	fallbacks := 0
	for _, r := range resources {
		if r.MetadataSource == models.SourceFallback {
			fallbacks++
		}
	}

	logger.Log.Info().
		Int("videos", len(resources)).
		Int("fallbacks", fallbacks).
		Dur("took", time.Since(start)).
		Msg("video metadata warmed")
}
