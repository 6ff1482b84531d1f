// Package videolink normalizes externally hosted video URLs (YouTube,
// VK Видео) into canonical, embeddable and stable-id forms. Resolution
// is a pure function of the input URL and never fails: anything
// unrecognized degrades to PlatformUnknown with the raw URL as id.
package videolink

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/improv-tovarisch/backend/pkg/models"
)

var (
	youtubeIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	vkPathRegex    = regexp.MustCompile(`video(-?\d+)_(\d+)`)
)

type Resolved struct {
	Platform     models.Platform
	CanonicalURL string
	EmbedURL     string
	StableID     string
	// ThumbnailURL is the platform-provided still when one can be
	// derived without a network call (YouTube only).
	ThumbnailURL string
}

// Resolve determines the platform of rawURL and derives its canonical,
// embed and stable-id forms.
func Resolve(rawURL string) Resolved {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return unknown(rawURL)
	}

	host := strings.ToLower(parsed.Hostname())

	if id, ok := youtubeID(host, parsed); ok {
		return Resolved{
			Platform:     models.PlatformYouTube,
			CanonicalURL: "https://www.youtube.com/watch?v=" + id,
			EmbedURL:     "https://www.youtube-nocookie.com/embed/" + id,
			StableID:     id,
			ThumbnailURL: fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id),
		}
	}

	if owner, video, ok := vkIDs(host, parsed); ok {
		stable := fmt.Sprintf("video%s_%s", owner, video)
		return Resolved{
			Platform:     models.PlatformVK,
			CanonicalURL: "https://vk.com/" + stable,
			EmbedURL:     fmt.Sprintf("https://vk.com/video_ext.php?oid=%s&id=%s&hd=2", owner, video),
			StableID:     stable,
		}
	}

	return unknown(rawURL)
}

func unknown(rawURL string) Resolved {
	return Resolved{
		Platform: models.PlatformUnknown,
		StableID: rawURL,
	}
}

func youtubeID(host string, parsed *url.URL) (string, bool) {
	var id string

	switch {
	case host == "youtu.be":
		id = strings.TrimPrefix(parsed.Path, "/")
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
	case strings.Contains(host, "youtube.com") || strings.Contains(host, "youtube-nocookie.com"):
		if v := parsed.Query().Get("v"); v != "" {
			id = v
			break
		}
		segments := strings.Split(parsed.Path, "/")
		for i, segment := range segments {
			if segment == "embed" && i+1 < len(segments) {
				id = segments[i+1]
				break
			}
		}
	default:
		return "", false
	}

	if !youtubeIDRegex.MatchString(id) {
		return "", false
	}
	return id, true
}

func vkIDs(host string, parsed *url.URL) (owner, video string, ok bool) {
	// региональные и мобильные хосты приводим к vk.com
	if host == "vkvideo.ru" || host == "m.vk.com" {
		host = "vk.com"
	}
	if host != "vk.com" && !strings.HasSuffix(host, ".vk.com") {
		return "", "", false
	}

	matches := vkPathRegex.FindStringSubmatch(parsed.Path)
	if len(matches) != 3 {
		return "", "", false
	}
	return matches[1], matches[2], true
}
