package capability

import (
	"context"
	"errors"
	"fmt"
)

// StaticClassifier is an offline classifier that assigns a fixed score to the
// first label and splits the remainder evenly across the others.
type StaticClassifier struct {
	Score float64
}

func (c StaticClassifier) ClassifyZeroShot(ctx context.Context, _ string, labels []string) ([]LabelScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, errors.New("at least one candidate label is required")
	}

	score := min(max(c.Score, 0), 1)
	scores := make([]LabelScore, len(labels))
	scores[0] = LabelScore{Label: labels[0], Score: score}

	if rest := len(labels) - 1; rest > 0 {
		share := (1 - score) / float64(rest)
		for i := 1; i < len(labels); i++ {
			scores[i] = LabelScore{Label: labels[i], Score: share}
		}
	}

	return scores, nil
}

// NoopTagger finds no entities.
type NoopTagger struct{}

func (NoopTagger) TagEntities(ctx context.Context, _ string) ([]TaggedSpan, error) {
	return nil, ctx.Err()
}

// Unreachable implements every capability by failing with ErrUnavailable. It
// stands in when a provider could not be initialized.
type Unreachable struct {
	Err error
}

func (u Unreachable) cause() error {
	if u.Err == nil {
		return ErrUnavailable
	}
	return Unavailable(u.Err)
}

func (u Unreachable) ClassifyZeroShot(context.Context, string, []string) ([]LabelScore, error) {
	return nil, u.cause()
}

func (u Unreachable) TagEntities(context.Context, string) ([]TaggedSpan, error) {
	return nil, u.cause()
}

func (u Unreachable) GenerateText(context.Context, string, int, float64) (string, error) {
	return "", u.cause()
}

// NewUnreachableSet returns a Set whose every capability reports err.
func NewUnreachableSet(provider string, err error) Set {
	u := Unreachable{Err: fmt.Errorf("%s provider: %w", provider, err)}
	return Set{
		Provider:   provider,
		Classifier: u,
		Tagger:     u,
		Generator:  u,
	}
}
