// Package profile holds the result types produced by a resume analysis.
package profile

import "encoding/json"

// EntityCategory is one of the fixed named-entity categories.
type EntityCategory string

const (
	Person        EntityCategory = "PER"
	Organization  EntityCategory = "ORG"
	Location      EntityCategory = "LOC"
	Miscellaneous EntityCategory = "MISC"
)

// EntityCategories lists every category in output order.
var EntityCategories = []EntityCategory{Person, Organization, Location, Miscellaneous}

// EntityGroup maps each entity category to the spans found for it.
type EntityGroup map[EntityCategory][]string

// NewEntityGroup returns a group with every category present and empty.
func NewEntityGroup() EntityGroup {
	group := make(EntityGroup, len(EntityCategories))
	for _, category := range EntityCategories {
		group[category] = []string{}
	}
	return group
}

// Add appends span to category. Unknown categories are ignored.
func (g EntityGroup) Add(category EntityCategory, span string) {
	if _, ok := g[category]; !ok {
		return
	}
	g[category] = append(g[category], span)
}

// Len returns the number of spans across all categories.
func (g EntityGroup) Len() int {
	total := 0
	for _, spans := range g {
		total += len(spans)
	}
	return total
}

// Education is one degree found in the education section.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Section     string `json:"section"`
}

// Experience is one position found in the experience section.
type Experience struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Section  string `json:"section"`
}

// Skill is a taxonomy keyword confirmed in the resume.
type Skill struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Proficiency float64 `json:"proficiency"`
	Confidence  float64 `json:"confidence"`
}

// JobTemplate is an entry of the static job catalog.
type JobTemplate struct {
	ID             string
	Title          string
	Description    string
	RequiredSkills []string
	SalaryRange    string
	GrowthPath     string
}

// JobRecommendation is a catalog role the candidate matches.
type JobRecommendation struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	MatchScore  float64 `json:"match_score"`
	SalaryRange string  `json:"salary_range"`
	GrowthPath  string  `json:"growth_path"`
	Explanation string  `json:"explanation"`
}

// Profile is the complete result of one analysis.
type Profile struct {
	Entities           EntityGroup         `json:"entities"`
	Education          []Education         `json:"education"`
	Experience         []Experience        `json:"experience"`
	Skills             []Skill             `json:"skills"`
	JobRecommendations []JobRecommendation `json:"job_recommendations"`
	Improvements       []string            `json:"resume_improvements"`
	Error              string              `json:"error,omitempty"`
}

// New returns a profile with every collection empty but non-nil.
func New() *Profile {
	return &Profile{
		Entities:           NewEntityGroup(),
		Education:          []Education{},
		Experience:         []Experience{},
		Skills:             []Skill{},
		JobRecommendations: []JobRecommendation{},
		Improvements:       []string{},
	}
}

// Failed returns an empty profile carrying err as its error description.
func Failed(err error) *Profile {
	p := New()
	p.Error = "analysis failed"
	if err != nil && err.Error() != "" {
		p.Error = err.Error()
	}
	return p
}

// HasError reports whether the profile describes a failed analysis.
func (p *Profile) HasError() bool {
	return p != nil && p.Error != ""
}

// MarshalJSON keeps collections as arrays even when a caller left them nil.
func (p Profile) MarshalJSON() ([]byte, error) {
	type plain Profile

	out := plain(p)
	entities := NewEntityGroup()
	for category, spans := range p.Entities {
		if spans != nil {
			entities[category] = spans
		}
	}
	out.Entities = entities
	if out.Education == nil {
		out.Education = []Education{}
	}
	if out.Experience == nil {
		out.Experience = []Experience{}
	}
	if out.Skills == nil {
		out.Skills = []Skill{}
	}
	if out.JobRecommendations == nil {
		out.JobRecommendations = []JobRecommendation{}
	}
	if out.Improvements == nil {
		out.Improvements = []string{}
	}

	return json.Marshal(out)
}
