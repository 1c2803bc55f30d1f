// Package advisor suggests resume improvements from simple text heuristics.
package advisor

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/resume-analyzer/internal/extraction"
	"github.com/spigell/resume-analyzer/internal/profile"
)

const (
	SuggestSectionHeaders = "Add clear section headers (Experience, Skills, Education) to improve ATS compatibility."
	SuggestActionVerbs    = "Use action verbs (achieved, developed, led) to describe your accomplishments."
	SuggestMoreSkills     = "Add more specific technical skills to highlight your expertise."
	SuggestMetrics        = "Include quantifiable achievements (e.g., 'increased efficiency by 25%')."
	SuggestEducation      = "Clearly specify your educational qualifications with degrees and institutions."
	SuggestDates          = "Include dates for your work experience to show career progression."

	minSkills = 5
)

var (
	sectionHeaders = []string{"experience", "skills", "education"}
	actionVerbs    = []string{"achieved", "developed", "led", "managed", "improved", "increased", "reduced", "optimized"}

	dateRangePattern = regexp.MustCompile(`\d{4}[-–]\d{4}|\d{4}[-–]present`)
)

type check struct {
	suggestion string
	failed     func(text, lowered string, skills []profile.Skill) bool
}

// Evaluated in order; the output keeps this order.
var checks = []check{
	{
		suggestion: SuggestSectionHeaders,
		failed: func(_, lowered string, _ []profile.Skill) bool {
			return !extraction.ContainsAny(lowered, sectionHeaders)
		},
	},
	{
		suggestion: SuggestActionVerbs,
		failed: func(_, lowered string, _ []profile.Skill) bool {
			return !extraction.ContainsAny(lowered, actionVerbs)
		},
	},
	{
		suggestion: SuggestMoreSkills,
		failed: func(_, _ string, skills []profile.Skill) bool {
			return len(skills) < minSkills
		},
	},
	{
		suggestion: SuggestMetrics,
		failed: func(text, _ string, _ []profile.Skill) bool {
			return strings.IndexFunc(text, unicode.IsDigit) == -1
		},
	},
	{
		suggestion: SuggestEducation,
		failed: func(text, _ string, _ []profile.Skill) bool {
			return !extraction.HasDegree(text)
		},
	},
	{
		suggestion: SuggestDates,
		failed: func(text, _ string, _ []profile.Skill) bool {
			return !dateRangePattern.MatchString(text)
		},
	},
}

// Advise returns the suggestions for every failed check, in a fixed order.
// The date range check is case sensitive, so only "present" in lowercase
// counts as an open range.
func Advise(text string, skills []profile.Skill) []string {
	lowered := strings.ToLower(text)
	suggestions := []string{}

	for _, c := range checks {
		if c.failed(text, lowered, skills) {
			suggestions = append(suggestions, c.suggestion)
		}
	}

	return suggestions
}
