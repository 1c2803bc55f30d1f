package jobs

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/profile"
)

const (
	maxRecommendations = 3
	// minMatchScore is exclusive: a template scoring exactly this is dropped.
	minMatchScore = 0.5

	explanationHeader = "Candidate is well-suited for this role because they have:"
	noMatchSentence   = "Candidate's skills do not match the job requirements."
)

// Option configures a Matcher.
type Option func(*Matcher)

// WithCatalog replaces the built-in catalog.
func WithCatalog(catalog []profile.JobTemplate) Option {
	return func(m *Matcher) {
		m.catalog = catalog
	}
}

// WithLogger sets the logger used for rejected templates.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Matcher ranks catalog roles against confirmed skills.
type Matcher struct {
	catalog []profile.JobTemplate
	logger  *zap.Logger
}

// NewMatcher returns a Matcher over DefaultCatalog unless WithCatalog is given.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		catalog: DefaultCatalog,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Recommend returns at most three roles whose match score is above 0.5,
// best first. Equal scores keep catalog order.
func (m *Matcher) Recommend(skills []profile.Skill) []profile.JobRecommendation {
	recommendations := make([]profile.JobRecommendation, 0, len(m.catalog))

	for _, template := range m.catalog {
		score := MatchScore(skills, template.RequiredSkills)
		if score <= minMatchScore {
			m.logger.Debug("job template rejected",
				zap.String("job", template.ID),
				zap.Float64("match_score", score),
			)
			continue
		}

		recommendations = append(recommendations, profile.JobRecommendation{
			Title:       template.Title,
			Description: template.Description,
			MatchScore:  score,
			SalaryRange: template.SalaryRange,
			GrowthPath:  template.GrowthPath,
			Explanation: Explain(skills, template.RequiredSkills),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations
}

// MatchScore is the share of distinct required tokens covered by the
// candidate's skill names and categories.
func MatchScore(skills []profile.Skill, required []string) float64 {
	requiredSet := toSet(required)
	if len(skills) == 0 || len(requiredSet) == 0 {
		return 0
	}

	tokens := make(map[string]struct{}, len(skills)*2)
	for _, skill := range skills {
		tokens[skill.Name] = struct{}{}
		tokens[skill.Category] = struct{}{}
	}

	matched := 0
	for token := range requiredSet {
		if _, ok := tokens[token]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(requiredSet))
}

// Explain lists the skills that satisfy required, one line per skill.
func Explain(skills []profile.Skill, required []string) string {
	requiredSet := toSet(required)

	var b strings.Builder
	for _, skill := range skills {
		_, byName := requiredSet[skill.Name]
		_, byCategory := requiredSet[skill.Category]
		if !byName && !byCategory {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(explanationHeader)
		}
		fmt.Fprintf(&b, "\n- %s proficiency in %s", level(skill.Proficiency), skill.Name)
	}

	if b.Len() == 0 {
		return noMatchSentence
	}
	return b.String()
}

func level(proficiency float64) string {
	switch {
	case proficiency > 0.7:
		return "high"
	case proficiency > 0.4:
		return "good"
	default:
		return "basic"
	}
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
