package insights

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-analyzer/internal/capability"
)

type stubGenerator struct {
	response    string
	err         error
	prompt      string
	maxTokens   int
	temperature float64
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	s.prompt = prompt
	s.maxTokens = maxTokens
	s.temperature = temperature
	return s.response, s.err
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{response: `Sure! Here is the analysis:
{
  "technical_skills": ["Go", "Kubernetes"],
  "soft_skills": ["mentoring"],
  "years_of_experience": "6",
  "education": {"degree": "BSc", "field": "Computer Science", "institution": "MIT"},
  "project_highlights": ["Built a billing platform"],
  "recommended_job_roles": ["Backend Engineer"]
}
Let me know if you need more.`}

	got, err := New(stub).Analyze(context.Background(), "Go engineer, 6 years")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := Insights{
		TechnicalSkills:       []string{"Go", "Kubernetes"},
		SoftSkills:            []string{"mentoring"},
		YearsOfExperience:     6,
		Education:             Education{Degree: "BSc", Field: "Computer Science", Institution: "MIT"},
		ProjectHighlights:     []string{"Built a billing platform"},
		FormattingSuggestions: []string{},
		RecommendedJobRoles:   []string{"Backend Engineer"},
	}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("unexpected insights:\n%+v\nwant\n%+v", got, expect)
	}

	if stub.maxTokens != 1000 || stub.temperature != 0.7 {
		t.Fatalf("unexpected generation limits: %d, %v", stub.maxTokens, stub.temperature)
	}
	if !strings.Contains(stub.prompt, "Go engineer, 6 years") {
		t.Fatalf("prompt is missing the resume text")
	}
}

func TestAnalyzeFallsBackOnGarbage(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	stub := &stubGenerator{response: "I cannot help with that."}

	got, err := New(stub, WithLogger(zap.New(core))).Analyze(context.Background(), "resume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, Fallback()) {
		t.Fatalf("expected fallback, got %+v", got)
	}
	if observed.Len() != 1 {
		t.Fatalf("expected a warning, got %d entries", observed.Len())
	}
}

func TestAnalyzeGeneratorFailure(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: capability.Unavailable(errors.New("forbidden"))}

	_, err := New(stub).Analyze(context.Background(), "resume")
	if !capability.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	t.Parallel()

	if _, err := New(&stubGenerator{}).Analyze(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestFallback(t *testing.T) {
	t.Parallel()

	fb := Fallback()
	if fb.Education.Degree != "Not specified" || fb.YearsOfExperience != 0 {
		t.Fatalf("unexpected fallback: %+v", fb)
	}
	if len(fb.FormattingSuggestions) != 1 || fb.FormattingSuggestions[0] != "Unable to analyze formatting" {
		t.Fatalf("unexpected fallback suggestions: %q", fb.FormattingSuggestions)
	}
}
