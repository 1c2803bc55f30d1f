package extraction

import (
	"context"
	"strings"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/profile"
)

// ExtractEntities groups the tagger's spans into the fixed entity categories.
// On failure it returns an empty group together with the error.
func ExtractEntities(ctx context.Context, tagger capability.EntityTagger, text string) (profile.EntityGroup, error) {
	group := profile.NewEntityGroup()
	if tagger == nil || strings.TrimSpace(text) == "" {
		return group, nil
	}

	spans, err := tagger.TagEntities(ctx, text)
	if err != nil {
		return profile.NewEntityGroup(), err
	}

	for _, span := range spans {
		word := strings.TrimSpace(span.Text)
		if word == "" {
			continue
		}
		if category, ok := CategoryForTag(span.Tag); ok {
			group.Add(category, word)
		}
	}

	return group, nil
}

// CategoryForTag collapses a BIO tag such as "B-ORG" into its category.
func CategoryForTag(tag string) (profile.EntityCategory, bool) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if len(tag) > 2 && (tag[:2] == "B-" || tag[:2] == "I-") {
		tag = tag[2:]
	}

	switch profile.EntityCategory(tag) {
	case profile.Person, profile.Organization, profile.Location, profile.Miscellaneous:
		return profile.EntityCategory(tag), true
	default:
		return "", false
	}
}
