package models

type Platform string

const (
	PlatformYouTube Platform = "YouTube"
	PlatformVK      Platform = "VK Видео"
	PlatformUnknown Platform = "unknown"
)

type MetadataSource string

const (
	SourceOEmbed   MetadataSource = "oEmbed"
	SourceEmbed    MetadataSource = "embed"
	SourceFallback MetadataSource = "fallback"
)

// VideoSource is one entry of the fixed gallery configuration.
// Platform and Duration are optional hints; Duration is display-only
// and is never run through the duration estimator.
type VideoSource struct {
	URL      string   `json:"url"`
	Platform Platform `json:"platform,omitempty"`
	Duration string   `json:"duration,omitempty"`
}

// VideoResource is the fully assembled gallery card. PreviewImage is
// never empty: either a real thumbnail or generated placeholder art.
// MetadataSource records where the metadata came from so callers never
// infer provenance from field presence.
type VideoResource struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Description    string         `json:"description,omitempty"`
	URL            string         `json:"url"`
	Platform       Platform       `json:"platform"`
	PreviewImage   string         `json:"previewImage"`
	AuthorName     string         `json:"authorName,omitempty"`
	Duration       string         `json:"duration,omitempty"`
	MetadataSource MetadataSource `json:"metadataSource"`
}
