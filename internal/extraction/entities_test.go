package extraction

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/profile"
)

type stubTagger struct {
	spans []capability.TaggedSpan
	err   error
	calls int
}

func (s *stubTagger) TagEntities(_ context.Context, _ string) ([]capability.TaggedSpan, error) {
	s.calls++
	return s.spans, s.err
}

func TestExtractEntitiesGroupsByCategory(t *testing.T) {
	t.Parallel()

	tagger := &stubTagger{spans: []capability.TaggedSpan{
		{Text: "Jane", Tag: "B-PER"},
		{Text: "Doe", Tag: "I-PER"},
		{Text: "Acme", Tag: "B-ORG"},
		{Text: "Berlin", Tag: "b-loc"},
		{Text: "Kubernetes", Tag: "MISC"},
		{Text: "2020", Tag: "B-DATE"},
		{Text: "  ", Tag: "B-PER"},
	}}

	got, err := ExtractEntities(context.Background(), tagger, "Jane Doe works at Acme in Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := profile.EntityGroup{
		profile.Person:        {"Jane", "Doe"},
		profile.Organization:  {"Acme"},
		profile.Location:      {"Berlin"},
		profile.Miscellaneous: {"Kubernetes"},
	}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestExtractEntitiesFailureReturnsEmptyGroup(t *testing.T) {
	t.Parallel()

	tagger := &stubTagger{
		spans: []capability.TaggedSpan{{Text: "Jane", Tag: "B-PER"}},
		err:   errors.New("timeout"),
	}

	got, err := ExtractEntities(context.Background(), tagger, "Jane")
	if err == nil {
		t.Fatalf("expected error")
	}
	if got.Len() != 0 || len(got) != len(profile.EntityCategories) {
		t.Fatalf("expected empty well-typed group, got %v", got)
	}
}

func TestExtractEntitiesSkipsBlankText(t *testing.T) {
	t.Parallel()

	tagger := &stubTagger{}
	if _, err := ExtractEntities(context.Background(), tagger, " \n "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tagger.calls != 0 {
		t.Fatalf("tagger must not be called for blank text")
	}
}

func TestCategoryForTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tag    string
		expect profile.EntityCategory
		ok     bool
	}{
		{tag: "B-PER", expect: profile.Person, ok: true},
		{tag: "I-ORG", expect: profile.Organization, ok: true},
		{tag: "LOC", expect: profile.Location, ok: true},
		{tag: " i-misc ", expect: profile.Miscellaneous, ok: true},
		{tag: "O", ok: false},
		{tag: "B-", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			t.Parallel()
			got, ok := CategoryForTag(tt.tag)
			if ok != tt.ok || got != tt.expect {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.expect, tt.ok, got, ok)
			}
		})
	}
}
