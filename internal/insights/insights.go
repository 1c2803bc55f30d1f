// Package insights produces a free-form, model-written resume review.
package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/logger"
)

const (
	maxTokens   = 1000
	temperature = 0.7

	notSpecified = "Not specified"

	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

type Education struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
}

// Insights is the model's structured review of a resume.
type Insights struct {
	TechnicalSkills       []string  `json:"technical_skills"`
	SoftSkills            []string  `json:"soft_skills"`
	YearsOfExperience     float64   `json:"years_of_experience"`
	Education             Education `json:"education"`
	ProjectHighlights     []string  `json:"project_highlights"`
	FormattingSuggestions []string  `json:"formatting_suggestions"`
	RecommendedJobRoles   []string  `json:"recommended_job_roles"`
}

// Fallback is returned when the model reply cannot be parsed.
func Fallback() Insights {
	return Insights{
		TechnicalSkills:       []string{},
		SoftSkills:            []string{},
		Education:             Education{Degree: notSpecified, Field: notSpecified, Institution: notSpecified},
		ProjectHighlights:     []string{},
		FormattingSuggestions: []string{"Unable to analyze formatting"},
		RecommendedJobRoles:   []string{},
	}
}

type Option func(*Analyzer)

func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

func WithMaxLogLength(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxLogLen = n
		}
	}
}

type Analyzer struct {
	generator capability.TextGenerator
	logger    *zap.Logger
	maxLogLen int
}

func New(generator capability.TextGenerator, opts ...Option) *Analyzer {
	a := &Analyzer{
		generator: generator,
		logger:    zap.NewNop(),
		maxLogLen: defaultMaxLogLength,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze asks the text generator for a review of text. Generator failures
// are returned; an unparsable reply yields Fallback.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Insights, error) {
	if a.generator == nil {
		return Insights{}, capability.Unavailable(errors.New("text generator is not configured"))
	}
	if strings.TrimSpace(text) == "" {
		return Insights{}, errors.New("resume text must not be empty")
	}

	prompt := strings.ReplaceAll(promptTemplate, "{{RESUME_TEXT}}", text)

	raw, err := a.generator.GenerateText(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return Insights{}, fmt.Errorf("generate insights: %w", err)
	}

	a.logger.Debug("insights response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	result, err := Parse(raw)
	if err != nil {
		a.logger.Warn("insights response is not valid JSON; using fallback", zap.Error(err))
		return Fallback(), nil
	}

	return result, nil
}

// Parse decodes the outermost JSON object found in raw.
func Parse(raw string) (Insights, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end < start {
		return Insights{}, errors.New("no JSON object in response")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &data); err != nil {
		return Insights{}, fmt.Errorf("parse insights: %w", err)
	}

	var result Insights
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &result,
		TagName:          "json",
	})
	if err != nil {
		return Insights{}, fmt.Errorf("build insights decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return Insights{}, fmt.Errorf("decode insights: %w", err)
	}

	result.normalize()
	return result, nil
}

func (i *Insights) normalize() {
	for _, list := range []*[]string{
		&i.TechnicalSkills,
		&i.SoftSkills,
		&i.ProjectHighlights,
		&i.FormattingSuggestions,
		&i.RecommendedJobRoles,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}
