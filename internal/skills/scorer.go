package skills

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/profile"
)

const (
	defaultConcurrency = 4
	// acceptThreshold is the minimum (exclusive) score of the positive label.
	acceptThreshold = 0.5
)

// Option configures a Scorer.
type Option func(*Scorer)

// WithConcurrency bounds the number of classification calls in flight.
func WithConcurrency(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-skill diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Scorer confirms taxonomy keywords with a zero-shot classifier and rates
// their proficiency from the surrounding text.
type Scorer struct {
	classifier  capability.Classifier
	logger      *zap.Logger
	concurrency int
}

// NewScorer returns a Scorer backed by classifier.
func NewScorer(classifier capability.Classifier, opts ...Option) *Scorer {
	s := &Scorer{
		classifier:  classifier,
		logger:      zap.NewNop(),
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Candidate is a taxonomy keyword found in the text.
type Candidate struct {
	Name     string
	Category string
}

// Detect returns every taxonomy keyword occurring in lowered, in taxonomy
// order, at most once per keyword.
func Detect(lowered string) []Candidate {
	seen := make(map[string]struct{})
	var found []Candidate

	for _, category := range Taxonomy {
		for _, keyword := range category.Keywords {
			if _, ok := seen[keyword]; ok {
				continue
			}
			if !strings.Contains(lowered, keyword) {
				continue
			}
			seen[keyword] = struct{}{}
			found = append(found, Candidate{Name: keyword, Category: category.Name})
		}
	}

	return found
}

// Score returns the confirmed skills of text in taxonomy order. A failed
// classification drops only its keyword; an unavailable classifier aborts
// the scan.
func (s *Scorer) Score(ctx context.Context, text string) ([]profile.Skill, error) {
	if s.classifier == nil {
		return nil, capability.Unavailable(errors.New("zero-shot classifier is not configured"))
	}

	lowered := strings.ToLower(text)
	candidates := Detect(lowered)
	results := make([]*profile.Skill, len(candidates))

	s.logger.Debug("skill candidates detected", zap.Int("count", len(candidates)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			skill, err := s.confirm(gctx, lowered, candidate)
			if err != nil {
				if capability.IsUnavailable(err) {
					return fmt.Errorf("classify %q: %w", candidate.Name, err)
				}
				s.logger.Warn("skill classification failed",
					zap.String("skill", candidate.Name),
					zap.Error(err),
				)
				return nil
			}
			results[i] = skill
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	confirmed := make([]profile.Skill, 0, len(results))
	for _, skill := range results {
		if skill != nil {
			confirmed = append(confirmed, *skill)
		}
	}

	return confirmed, nil
}

func (s *Scorer) confirm(ctx context.Context, lowered string, candidate Candidate) (skill *profile.Skill, err error) {
	defer func() {
		if r := recover(); r != nil {
			skill, err = nil, fmt.Errorf("classifier panicked: %v", r)
		}
	}()

	labels := []string{
		fmt.Sprintf("has %s experience", candidate.Name),
		fmt.Sprintf("does not have %s experience", candidate.Name),
	}

	scores, err := s.classifier.ClassifyZeroShot(ctx, lowered, labels)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, errors.New("classifier returned no scores")
	}

	confidence := scores[0].Score
	if confidence <= acceptThreshold {
		s.logger.Debug("skill rejected by classifier",
			zap.String("skill", candidate.Name),
			zap.Float64("confidence", confidence),
		)
		return nil, nil
	}

	return &profile.Skill{
		Name:        candidate.Name,
		Category:    candidate.Category,
		Proficiency: Proficiency(lowered, candidate.Name),
		Confidence:  min(confidence, 1),
	}, nil
}
