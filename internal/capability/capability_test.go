package capability

import (
	"context"
	"errors"
	"math"
	"testing"
)

func TestUnavailableWrapping(t *testing.T) {
	t.Parallel()

	base := errors.New("dial tcp: connection refused")
	wrapped := Unavailable(base)

	if !IsUnavailable(wrapped) {
		t.Fatalf("expected wrapped error to be unavailable")
	}
	if !errors.Is(wrapped, base) {
		t.Fatalf("expected wrapped error to keep the cause")
	}
	if Unavailable(wrapped) != wrapped {
		t.Fatalf("expected double wrapping to be a no-op")
	}
	if !IsUnavailable(Unavailable(nil)) {
		t.Fatalf("expected nil cause to map to ErrUnavailable")
	}
	if IsUnavailable(base) {
		t.Fatalf("plain errors must not be unavailable")
	}
}

func TestStaticClassifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		score  float64
		labels []string
		expect []float64
	}{
		{name: "two labels", score: 0.9, labels: []string{"has go experience", "does not have go experience"}, expect: []float64{0.9, 0.1}},
		{name: "clamped above one", score: 3, labels: []string{"a", "b"}, expect: []float64{1, 0}},
		{name: "clamped below zero", score: -1, labels: []string{"a", "b", "c"}, expect: []float64{0, 0.5, 0.5}},
		{name: "single label", score: 0.7, labels: []string{"a"}, expect: []float64{0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := StaticClassifier{Score: tt.score}.ClassifyZeroShot(context.Background(), "text", tt.labels)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expect) {
				t.Fatalf("expected %d scores, got %d", len(tt.expect), len(got))
			}
			for i, want := range tt.expect {
				if got[i].Label != tt.labels[i] {
					t.Fatalf("score %d not aligned: %q", i, got[i].Label)
				}
				if math.Abs(got[i].Score-want) > 1e-9 {
					t.Fatalf("score %d: expected %v, got %v", i, want, got[i].Score)
				}
			}
		})
	}

	if _, err := (StaticClassifier{Score: 1}).ClassifyZeroShot(context.Background(), "text", nil); err == nil {
		t.Fatalf("expected error without labels")
	}
}

func TestUnreachableSet(t *testing.T) {
	t.Parallel()

	set := NewUnreachableSet("gemini", errors.New("gemini api key is not configured"))
	ctx := context.Background()

	if _, err := set.Classifier.ClassifyZeroShot(ctx, "text", []string{"a"}); !IsUnavailable(err) {
		t.Fatalf("expected classifier to be unavailable, got %v", err)
	}
	if _, err := set.Tagger.TagEntities(ctx, "text"); !IsUnavailable(err) {
		t.Fatalf("expected tagger to be unavailable, got %v", err)
	}
	if _, err := set.Generator.GenerateText(ctx, "prompt", 10, 0.5); !IsUnavailable(err) {
		t.Fatalf("expected generator to be unavailable, got %v", err)
	}
}
