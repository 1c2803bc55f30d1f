// Package extraction pulls sections, education, experience and entities out
// of raw resume text.
package extraction

import "strings"

const sectionSeparator = "\n\n"

// Segment splits text into blank-line separated sections, dropping sections
// that hold only whitespace. Order follows the source text.
func Segment(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	parts := strings.Split(text, sectionSeparator)
	sections := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		sections = append(sections, part)
	}

	return sections
}
