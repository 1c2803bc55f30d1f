package extraction

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-analyzer/internal/profile"
)

var (
	educationKeywords  = []string{"education", "degree", "bachelor", "master", "phd", "diploma", "certification"}
	experienceKeywords = []string{"experience", "work", "employment", "job", "position"}

	degreePattern      = regexp.MustCompile(`(Bachelor|Master|PhD|B\.?Tech|M\.?Tech|B\.?E|M\.?E|B\.?S|M\.?S)[^,]*`)
	institutionPattern = regexp.MustCompile(`[A-Z][a-zA-Z\s&]+(?:University|College|Institute|School)`)
	companyPattern     = regexp.MustCompile(`[A-Z][a-zA-Z\s&]+(?:Inc\.|Corp\.|LLC|Ltd\.|Company)`)
	positionPattern    = regexp.MustCompile(`(Senior|Junior|Lead|Manager|Director|Engineer|Developer|Designer|Architect|Consultant|Analyst|Scientist)[^,]*`)
)

// ExtractEducation returns one record per education-like section where a
// degree or an institution could be recognized.
func ExtractEducation(text string) []profile.Education {
	records := []profile.Education{}
	for _, section := range sectionsMentioning(text, educationKeywords) {
		degree := firstMatch(degreePattern, section)
		institution := firstMatch(institutionPattern, section)
		if degree == "" && institution == "" {
			continue
		}

		records = append(records, profile.Education{
			Degree:      degree,
			Institution: institution,
			Section:     strings.TrimSpace(section),
		})
	}

	return records
}

// ExtractExperience returns one record per experience-like section where a
// company or a position could be recognized.
func ExtractExperience(text string) []profile.Experience {
	records := []profile.Experience{}
	for _, section := range sectionsMentioning(text, experienceKeywords) {
		company := firstMatch(companyPattern, section)
		position := firstMatch(positionPattern, section)
		if company == "" && position == "" {
			continue
		}

		records = append(records, profile.Experience{
			Company:  company,
			Position: position,
			Section:  strings.TrimSpace(section),
		})
	}

	return records
}

// HasDegree reports whether text names a degree from the recognized vocabulary.
func HasDegree(text string) bool {
	return degreePattern.MatchString(text)
}

// ContainsAny reports whether any keyword is a substring of lowered.
func ContainsAny(lowered string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func sectionsMentioning(text string, keywords []string) []string {
	var matched []string
	for _, section := range Segment(text) {
		if ContainsAny(strings.ToLower(section), keywords) {
			matched = append(matched, section)
		}
	}
	return matched
}

func firstMatch(pattern *regexp.Regexp, s string) string {
	return strings.TrimSpace(pattern.FindString(s))
}
