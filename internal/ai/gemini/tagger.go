package gemini

import (
	"context"
	"errors"
	"strings"

	_ "embed"

	"github.com/spigell/resume-analyzer/internal/capability"
)

//go:embed entities_prompt.md
var entitiesPromptTemplate string

// Tagger implements capability.EntityTagger with a Gemini prompt.
type Tagger struct {
	generator jsonGenerator
}

func NewTagger(generator jsonGenerator) *Tagger {
	return &Tagger{generator: generator}
}

type entitiesResponse struct {
	Entities []struct {
		Text string `json:"text"`
		Tag  string `json:"tag"`
	} `json:"entities"`
}

func (t *Tagger) TagEntities(ctx context.Context, text string) ([]capability.TaggedSpan, error) {
	if t == nil || t.generator == nil {
		return nil, capability.Unavailable(errors.New("gemini tagger is not initialized"))
	}

	raw, err := t.generator.GenerateJSON(ctx, strings.ReplaceAll(entitiesPromptTemplate, "{{TEXT}}", text))
	if err != nil {
		return nil, err
	}

	var resp entitiesResponse
	if err := decodeResponse(raw, &resp); err != nil {
		return nil, err
	}

	spans := make([]capability.TaggedSpan, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		spans = append(spans, capability.TaggedSpan{Text: e.Text, Tag: e.Tag})
	}

	return spans, nil
}
