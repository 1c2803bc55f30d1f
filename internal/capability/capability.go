// Package capability declares the external inference and I/O functions the
// analysis engine depends on but does not implement.
package capability

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks failures where a capability cannot be reached or was
// never initialized. Results produced without it cannot be trusted, so the
// analysis is abandoned instead of degraded.
var ErrUnavailable = errors.New("capability unavailable")

// Unavailable wraps err so that errors.Is(err, ErrUnavailable) holds.
func Unavailable(err error) error {
	if err == nil {
		return ErrUnavailable
	}
	if errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

// IsUnavailable reports whether err marks an unavailable capability.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// LabelScore is a single zero-shot classification result.
type LabelScore struct {
	Label string
	Score float64
}

// TaggedSpan is a text span labelled with a BIO-style entity tag such as
// "B-PER" or "I-ORG".
type TaggedSpan struct {
	Text string
	Tag  string
}

// Classifier scores text against candidate labels. The returned scores are
// aligned to the order of labels.
type Classifier interface {
	ClassifyZeroShot(ctx context.Context, text string, labels []string) ([]LabelScore, error)
}

// EntityTagger finds named entities in text.
type EntityTagger interface {
	TagEntities(ctx context.Context, text string) ([]TaggedSpan, error)
}

// TextGenerator produces free text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Format is the declared format of a document handed to a DocumentExtractor.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatWord Format = "word"
)

// DocumentExtractor turns a document on disk into plain text.
type DocumentExtractor interface {
	ExtractDocumentText(path string, format Format) (string, error)
}

// Set bundles the capabilities used by one analysis.
type Set struct {
	Provider   string
	Model      string
	Classifier Classifier
	Tagger     EntityTagger
	Generator  TextGenerator
}
