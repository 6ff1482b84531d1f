package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/improv-tovarisch/backend/pkg/duration"
	"github.com/improv-tovarisch/backend/pkg/models"
)

type LengthBucket string

const (
	LengthAll    LengthBucket = "all"
	LengthUpTo15 LengthBucket = "upTo15"
	LengthTo25   LengthBucket = "to25"
	LengthOver25 LengthBucket = "over25"
)

type SortKey string

const (
	SortDefault    SortKey = "default"
	SortDifficulty SortKey = "difficulty"
	SortPlayers    SortKey = "players"
	SortLength     SortKey = "length"
)

// Criteria is AND-combined. Zero values (and the literal "all") pass
// everything. Players is an exact selectable count, 0 means any.
type Criteria struct {
	Search     string
	Category   models.FormCategory
	Length     LengthBucket
	Players    int
	Difficulty models.Difficulty
}

type SortSpec struct {
	Key      SortKey
	Reversed bool
}

// Engine applies Criteria and SortSpec to a catalog snapshot. It is
// pure: the input slice and its records are never mutated.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// сложность по убыванию: сначала самые сложные
var difficultyRank = map[models.Difficulty]int{
	models.DifficultyAdvanced:     0,
	models.DifficultyIntermediate: 1,
	models.DifficultyBeginner:     2,
}

// Apply returns the visible records in their final order. Warmup
// records pass the length/players/difficulty filters unconditionally
// (they have no comparable fields — hiding them would be a silent lie)
// and always sort after structured formats.
func (e *Engine) Apply(records []models.Format, c Criteria, spec SortSpec) []models.Format {
	filtered := make([]models.Format, 0, len(records))
	for i := range records {
		if matches(&records[i], c) {
			filtered = append(filtered, records[i])
		}
	}

	col := collate.New(language.Russian)

	reverseDefault := spec.Key == SortDefault && spec.Reversed
	sortStable(filtered, func(a, b *models.Format) int {
		return compareDefault(col, a, b, reverseDefault)
	})

	if spec.Key != SortDefault {
		sortStable(filtered, func(a, b *models.Format) int {
			return compareExplicit(col, a, b, spec)
		})
	}

	return filtered
}

// PlayerOptions returns the distinct selectable player counts across
// all structured records, ascending.
func (e *Engine) PlayerOptions(records []models.Format) []int {
	seen := make(map[int]bool)
	for i := range records {
		f := &records[i]
		if !f.IsStructured() {
			continue
		}
		for count := f.MinPlayers; count <= f.MaxPlayers; count++ {
			seen[count] = true
		}
	}

	options := make([]int, 0, len(seen))
	for count := range seen {
		options = append(options, count)
	}
	sort.Ints(options)
	return options
}

func matches(f *models.Format, c Criteria) bool {
	if q := strings.TrimSpace(c.Search); q != "" {
		if !strings.Contains(strings.ToLower(f.Name), strings.ToLower(q)) {
			return false
		}
	}

	if !isAll(string(c.Category)) && f.FormCategory != c.Category {
		return false
	}

	// warmups carry none of the structured fields; category/search is
	// the only filtering they are subject to
	if f.IsWarmup() {
		return true
	}

	if !isAll(string(c.Difficulty)) && f.Difficulty != c.Difficulty {
		return false
	}

	if !matchesLength(f, c.Length) {
		return false
	}

	if c.Players > 0 && (c.Players < f.MinPlayers || c.Players > f.MaxPlayers) {
		return false
	}

	return true
}

func matchesLength(f *models.Format, bucket LengthBucket) bool {
	if isAll(string(bucket)) {
		return true
	}

	minutes, ok := duration.Estimate(f.Duration)
	if !ok {
		// fail-open: непонятную длительность не прячем
		return true
	}

	switch bucket {
	case LengthUpTo15:
		return minutes <= 15
	case LengthTo25:
		return minutes > 15 && minutes <= 25
	case LengthOver25:
		return minutes > 25
	default:
		return true
	}
}

func isAll(value string) bool {
	return value == "" || value == "all"
}

// compareDefault implements the base ordering: explored structured
// formats first, then formats carrying an author tag, then hardest
// difficulty, then name under Russian collation. Structured records
// always precede warmups; that partition is never reversed.
func compareDefault(col *collate.Collator, a, b *models.Format, reversed bool) int {
	if c, partitioned := compareWarmupPartition(a, b); partitioned {
		return c
	}

	var c int
	if a.IsWarmup() {
		c = col.CompareString(a.Name, b.Name)
	} else {
		c = compareStructuredDefault(col, a, b)
	}

	if reversed {
		c = -c
	}
	return c
}

func compareStructuredDefault(col *collate.Collator, a, b *models.Format) int {
	if a.Explored != b.Explored {
		if a.Explored {
			return -1
		}
		return 1
	}

	aTagged, bTagged := a.AuthorTag != "", b.AuthorTag != ""
	if aTagged != bTagged {
		if aTagged {
			return -1
		}
		return 1
	}

	if c := difficultyRank[a.Difficulty] - difficultyRank[b.Difficulty]; c != 0 {
		return c
	}

	return col.CompareString(a.Name, b.Name)
}

// compareExplicit applies one of the explicit sort keys on top of the
// default order. Reversed negates comparisons inside a partition only;
// "warmups last" and "unknown durations last" hold in both directions.
func compareExplicit(col *collate.Collator, a, b *models.Format, spec SortSpec) int {
	if c, partitioned := compareWarmupPartition(a, b); partitioned {
		return c
	}

	if a.IsWarmup() {
		c := col.CompareString(a.Name, b.Name)
		if spec.Reversed {
			c = -c
		}
		return c
	}

	var c int
	switch spec.Key {
	case SortDifficulty:
		c = difficultyRank[a.Difficulty] - difficultyRank[b.Difficulty]
	case SortPlayers:
		switch {
		case a.AveragePlayers() > b.AveragePlayers():
			c = -1
		case a.AveragePlayers() < b.AveragePlayers():
			c = 1
		}
	case SortLength:
		am, aok := duration.Estimate(a.Duration)
		bm, bok := duration.Estimate(b.Duration)
		if aok != bok {
			if !aok {
				return 1
			}
			return -1
		}
		if aok {
			c = bm - am
		}
	}

	if spec.Reversed {
		c = -c
	}
	return c
}

func compareWarmupPartition(a, b *models.Format) (int, bool) {
	aw, bw := a.IsWarmup(), b.IsWarmup()
	if aw == bw {
		return 0, false
	}
	if aw {
		return 1, true
	}
	return -1, true
}

func sortStable(formats []models.Format, cmp func(a, b *models.Format) int) {
	sort.SliceStable(formats, func(i, j int) bool {
		return cmp(&formats[i], &formats[j]) < 0
	})
}
