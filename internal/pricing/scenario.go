package pricing

import (
	"unicode"
	"unicode/utf8"
)

// Scenario slugs
const (
	ScenarioConservative = "conservative"
	ScenarioBase         = "base"
	ScenarioAggressive   = "aggressive"
)

// ScenarioMultiplier describes one entry of the fixed scenario set
type ScenarioMultiplier struct {
	Slug       string  `json:"slug"`
	Multiplier float64 `json:"multiplier"`
}

var scenarioSet = []ScenarioMultiplier{
	{Slug: ScenarioConservative, Multiplier: 0.85},
	{Slug: ScenarioBase, Multiplier: 1.0},
	{Slug: ScenarioAggressive, Multiplier: 1.15},
}

// Scenarios returns the closed scenario set, lowest multiplier first.
func Scenarios() []ScenarioMultiplier {
	out := make([]ScenarioMultiplier, len(scenarioSet))
	copy(out, scenarioSet)
	return out
}

// IsKnown reports whether slug is part of the scenario set.
func IsKnown(slug string) bool {
	for _, s := range scenarioSet {
		if s.Slug == slug {
			return true
		}
	}
	return false
}

// MultiplierFor returns the scenario multiplier for a slug, 1.0 when the slug
// is not part of the set.
func MultiplierFor(slug string) float64 {
	for _, s := range scenarioSet {
		if s.Slug == slug {
			return s.Multiplier
		}
	}
	return 1.0
}

// DisplayName upper-cases the first letter of a slug, which is how scenario
// rows are named in the database ("aggressive" -> "Aggressive").
func DisplayName(slug string) string {
	r, size := utf8.DecodeRuneInString(slug)
	if r == utf8.RuneError {
		return slug
	}
	return string(unicode.ToUpper(r)) + slug[size:]
}
