package copyengine

import (
	"fmt"
	"strings"
)

// defaultAudience stands in for an empty audience in generated copy.
const defaultAudience = "the right buyers"

// difficultyKeywords mark a strategy sentence as describing a pain point.
// Matching is substring based, so "cost" also catches "costly" and
// "confus" catches "confusing".
var difficultyKeywords = []string{
	"pain", "problem", "issue", "challenge", "struggle",
	"slow", "broken", "cost", "confus", "hard", "expensive", "friction",
}

// ExtractPainPoints keeps the strategy sentences that mention a difficulty
// keyword. It is a keyword heuristic, not language understanding: synonyms
// outside the list are missed. When nothing matches, a fixed trio built
// from industry and audience is returned instead.
func ExtractPainPoints(strategy, industry, audience string) []string {
	var points []string
	for _, segment := range splitSentences(strategy) {
		if containsAny(strings.ToLower(segment), difficultyKeywords) {
			points = append(points, segment)
		}
	}
	if len(points) > 0 {
		return points
	}

	if strings.TrimSpace(audience) == "" {
		audience = defaultAudience
	}
	return []string{
		fmt.Sprintf("scaling %s operations efficiently", industry),
		fmt.Sprintf("reaching %s at the right moment", audience),
		"converting leads without burning budget",
	}
}

func splitSentences(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		switch r {
		case '.', '!', '?', '\n':
			return true
		}
		return false
	})
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
