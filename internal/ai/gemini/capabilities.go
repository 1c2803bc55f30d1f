package gemini

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/capability"
)

// NewSet wires a Generator into every capability the analyzer needs.
func NewSet(ctx context.Context, cfg Config, logger *zap.Logger) (capability.Set, error) {
	generator, err := NewGenerator(ctx, cfg, logger)
	if err != nil {
		return capability.Set{}, err
	}

	return newSet(generator), nil
}

func newSet(generator *Generator) capability.Set {
	return capability.Set{
		Provider:   Provider,
		Model:      generator.Model(),
		Classifier: NewClassifier(generator, generator.logger),
		Tagger:     NewTagger(generator),
		Generator:  generator,
	}
}
