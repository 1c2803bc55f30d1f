package analyzer

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/advisor"
	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/extraction"
)

const StageEntities = "entities"

type entitiesStage struct {
	disabled bool
	reason   string
}

func (s *entitiesStage) Name() string { return StageEntities }

func (s *entitiesStage) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *entitiesStage) IsEnabled() bool { return !s.disabled }

func (s *entitiesStage) Reason() string { return s.reason }

func (s *entitiesStage) Apply(ctx context.Context, deps Deps, st *State) (Step, error) {
	group, err := extraction.ExtractEntities(ctx, deps.Tagger, st.Text)
	if err != nil {
		if capability.IsUnavailable(err) {
			return Step{}, err
		}
		deps.Logger.Warn("entity extraction failed; continuing without entities", zap.Error(err))
	}

	st.Profile.Entities = group
	return Step{Found: group.Len()}, nil
}

type educationStage struct{}

func (educationStage) Name() string    { return "education" }
func (educationStage) Disable(string)  {}
func (educationStage) IsEnabled() bool { return true }

func (educationStage) Apply(_ context.Context, _ Deps, st *State) (Step, error) {
	st.Profile.Education = extraction.ExtractEducation(st.Text)
	return Step{Found: len(st.Profile.Education)}, nil
}

type experienceStage struct{}

func (experienceStage) Name() string    { return "experience" }
func (experienceStage) Disable(string)  {}
func (experienceStage) IsEnabled() bool { return true }

func (experienceStage) Apply(_ context.Context, _ Deps, st *State) (Step, error) {
	st.Profile.Experience = extraction.ExtractExperience(st.Text)
	return Step{Found: len(st.Profile.Experience)}, nil
}

type skillsStage struct{}

func (skillsStage) Name() string    { return "skills" }
func (skillsStage) Disable(string)  {}
func (skillsStage) IsEnabled() bool { return true }

func (skillsStage) Apply(ctx context.Context, deps Deps, st *State) (Step, error) {
	if deps.Scorer == nil {
		return Step{}, errors.New("skill scorer is required")
	}

	found, err := deps.Scorer.Score(ctx, st.Text)
	if err != nil {
		return Step{}, err
	}

	st.Profile.Skills = found
	return Step{Found: len(found)}, nil
}

type jobsStage struct{}

func (jobsStage) Name() string    { return "jobs" }
func (jobsStage) Disable(string)  {}
func (jobsStage) IsEnabled() bool { return true }

func (jobsStage) Apply(_ context.Context, deps Deps, st *State) (Step, error) {
	if deps.Matcher == nil {
		return Step{}, errors.New("job matcher is required")
	}

	st.Profile.JobRecommendations = deps.Matcher.Recommend(st.Profile.Skills)
	return Step{Found: len(st.Profile.JobRecommendations)}, nil
}

type improvementsStage struct{}

func (improvementsStage) Name() string    { return "improvements" }
func (improvementsStage) Disable(string)  {}
func (improvementsStage) IsEnabled() bool { return true }

func (improvementsStage) Apply(_ context.Context, _ Deps, st *State) (Step, error) {
	st.Profile.Improvements = advisor.Advise(st.Text, st.Profile.Skills)
	return Step{Found: len(st.Profile.Improvements)}, nil
}
