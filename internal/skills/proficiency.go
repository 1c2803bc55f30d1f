package skills

import (
	"strings"
	"unicode/utf8"
)

const (
	contextRadius      = 50
	defaultProficiency = 0.3
)

type indicator struct {
	word  string
	score float64
}

// Checked in this order; the first one present in the context wins.
var proficiencyIndicators = []indicator{
	{word: "expert", score: 1.0},
	{word: "advanced", score: 0.8},
	{word: "proficient", score: 0.6},
	{word: "intermediate", score: 0.4},
	{word: "basic", score: 0.2},
}

// Proficiency estimates mastery of keyword from indicator words found within
// contextRadius characters of its first occurrence in lowered. It returns 0 when
// the keyword does not occur.
func Proficiency(lowered, keyword string) float64 {
	idx := strings.Index(lowered, keyword)
	if idx == -1 {
		return 0
	}

	runes := []rune(lowered)
	pos := utf8.RuneCountInString(lowered[:idx])
	start := max(0, pos-contextRadius)
	end := min(len(runes), pos+contextRadius)
	window := string(runes[start:end])

	for _, ind := range proficiencyIndicators {
		if strings.Contains(window, ind.word) {
			return ind.score
		}
	}

	return defaultProficiency
}
