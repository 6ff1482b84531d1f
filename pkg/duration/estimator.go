// Package duration estimates a minute count from the free-text duration
// strings format authors write ("20-30 минут", "1 час 30 минут",
// "1-2 часа"). The text follows no grammar, so the estimator is a
// forgiving heuristic: anything it cannot read resolves to unknown, and
// the filter layer treats unknown as always visible.
package duration

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRegex = regexp.MustCompile(`\d+[.,]?\d*`)
	// "час" in any inflection, or a bare "ч" not glued to another letter
	hoursRegex   = regexp.MustCompile(`час|(?:^|[^\p{L}])ч(?:[^\p{L}]|$)`)
	minutesToken = "мин"
)

// Estimate returns the estimated whole minutes for text and whether the
// text was parseable at all. It never panics; adversarial input yields
// ok=false.
func Estimate(text string) (int, bool) {
	if strings.TrimSpace(text) == "" {
		return 0, false
	}

	normalized := strings.ToLower(text)

	tokens := numberRegex.FindAllString(normalized, -1)
	if len(tokens) == 0 {
		return 0, false
	}

	values := make([]float64, 0, len(tokens))
	for _, token := range tokens {
		v, err := strconv.ParseFloat(strings.ReplaceAll(token, ",", "."), 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return 0, false
	}

	hasHours := hoursRegex.MatchString(normalized)
	hasMinutes := strings.Contains(normalized, minutesToken)

	// "1 час 30 минут": first number is hours, second is minutes
	if hasHours && hasMinutes && len(values) >= 2 {
		return round(values[0]*60 + values[1]), true
	}

	// "1-2 часа": average the range, convert to minutes
	if hasHours && !hasMinutes {
		return round(average(values) * 60), true
	}

	// both markers but a single number: treat it as whole hours
	if hasHours && hasMinutes {
		return round(values[0] * 60), true
	}

	// minutes-only or unitless: average, assume minutes
	return round(average(values)), true
}

func average(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round(v float64) int {
	return int(math.Round(v))
}
