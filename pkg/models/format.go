package models

type FormCategory string

const (
	CategoryLongForm  FormCategory = "long-form"
	CategoryShortForm FormCategory = "short-form"
	CategoryWarmup    FormCategory = "warmup"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

type FormatComponent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    string `json:"duration,omitempty"`
}

// Format is one catalog record. The record is a union discriminated by
// FormCategory: long-form and short-form records carry the structured
// fields (players, duration, difficulty), warmup records carry
// WarmupType and Description instead. Branch on IsWarmup, not on field
// presence.
type Format struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	FormCategory FormCategory `json:"formCategory"`

	// structured (long-form / short-form) fields
	Explored         bool              `json:"explored,omitempty"`
	AuthorTag        string            `json:"authorTag,omitempty"`
	ShortDescription string            `json:"shortDescription,omitempty"`
	FullDescription  string            `json:"fullDescription,omitempty"`
	MinPlayers       int               `json:"minPlayers,omitempty"`
	MaxPlayers       int               `json:"maxPlayers,omitempty"`
	Duration         string            `json:"duration,omitempty"`
	Difficulty       Difficulty        `json:"difficulty,omitempty"`
	Components       []FormatComponent `json:"components,omitempty"`
	MontageRules     string            `json:"montageRules,omitempty"`
	Skills           []string          `json:"skills,omitempty"`
	Focus            string            `json:"focus,omitempty"`
	Variations       []string          `json:"variations,omitempty"`
	Prerequisites    []string          `json:"prerequisites,omitempty"`
	SimilarTo        []string          `json:"similarTo,omitempty"`
	SourceVideos     []string          `json:"sourceVideos,omitempty"`
	Notes            string            `json:"notes,omitempty"`

	// warmup fields
	WarmupType  string `json:"warmupType,omitempty"`
	Description string `json:"description,omitempty"`
}

func (f *Format) IsWarmup() bool {
	return f.FormCategory == CategoryWarmup
}

func (f *Format) IsStructured() bool {
	return f.FormCategory == CategoryLongForm || f.FormCategory == CategoryShortForm
}

func (f *Format) AveragePlayers() float64 {
	return float64(f.MinPlayers+f.MaxPlayers) / 2
}
