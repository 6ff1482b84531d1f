package gallery

import "github.com/improv-tovarisch/backend/pkg/models"

// DefaultSources is the curated video archive. Durations are display
// hints from the editors, not player metadata.
func DefaultSources() []models.VideoSource {
	return []models.VideoSource{
		{
			URL:      "https://vkvideo.ru/video-229967683_456239039",
			Platform: models.PlatformVK,
			Duration: "12 минут",
		},
		{
			URL:      "https://www.youtube.com/watch?v=sVKInDHnsSU",
			Platform: models.PlatformYouTube,
			Duration: "14 минут",
		},
		{
			URL:      "https://www.youtube.com/watch?v=Ri5nU6FDi3w",
			Platform: models.PlatformYouTube,
			Duration: "21 минута",
		},
		{
			URL:      "https://www.youtube.com/watch?v=3qacfQm7Nns",
			Platform: models.PlatformYouTube,
			Duration: "9 минут",
		},
	}
}
