package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/capability"
)

//go:embed classify_prompt.md
var classifyPromptTemplate string

type jsonGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Classifier implements capability.Classifier with a Gemini prompt.
type Classifier struct {
	generator jsonGenerator
	logger    *zap.Logger
}

func NewClassifier(generator jsonGenerator, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{generator: generator, logger: logger}
}

type classifyResponse struct {
	Scores []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"scores"`
}

// ClassifyZeroShot returns one score per label, in label order, normalized to
// sum to 1. Labels the model skipped score 0.
func (c *Classifier) ClassifyZeroShot(ctx context.Context, text string, labels []string) ([]capability.LabelScore, error) {
	if c == nil || c.generator == nil {
		return nil, capability.Unavailable(errors.New("gemini classifier is not initialized"))
	}
	if len(labels) == 0 {
		return nil, errors.New("at least one candidate label is required")
	}

	labelsJSON, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("marshal labels: %w", err)
	}

	prompt := strings.ReplaceAll(classifyPromptTemplate, "{{LABELS}}", string(labelsJSON))
	prompt = strings.ReplaceAll(prompt, "{{TEXT}}", text)

	raw, err := c.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var resp classifyResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}

	byLabel := make(map[string]float64, len(resp.Scores))
	for _, s := range resp.Scores {
		key := strings.ToLower(strings.TrimSpace(s.Label))
		if s.Score > 0 {
			byLabel[key] += s.Score
		}
	}

	scores := make([]capability.LabelScore, len(labels))
	total := 0.0
	for i, label := range labels {
		score := byLabel[strings.ToLower(strings.TrimSpace(label))]
		scores[i] = capability.LabelScore{Label: label, Score: score}
		total += score
	}

	if total == 0 {
		return nil, errors.New("gemini returned no scores for the candidate labels")
	}

	for i := range scores {
		scores[i].Score /= total
	}

	c.logger.Debug("zero-shot classification",
		zap.String("label", scores[0].Label),
		zap.Float64("score", scores[0].Score),
	)

	return scores, nil
}
