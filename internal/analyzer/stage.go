package analyzer

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/jobs"
	"github.com/spigell/resume-analyzer/internal/profile"
	"github.com/spigell/resume-analyzer/internal/skills"
)

// Stage fills one part of the profile.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, deps Deps, s *State) (Step, error)
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Logger  *zap.Logger
	Tagger  capability.EntityTagger
	Scorer  *skills.Scorer
	Matcher *jobs.Matcher
}

// State is the work in progress of a single analysis.
type State struct {
	Text    string
	Profile *profile.Profile
}

// Step describes the result of executing a stage.
type Step struct {
	Found int
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// DisableByName marks the stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		status := Status{Name: stage.Name(), Enabled: stage.IsEnabled()}
		if r, ok := stage.(interface{ Reason() string }); ok {
			status.Reason = r.Reason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

// DefaultStages returns a fresh set of stages in pipeline order.
func DefaultStages() []Stage {
	return []Stage{
		&entitiesStage{},
		educationStage{},
		experienceStage{},
		skillsStage{},
		jobsStage{},
		improvementsStage{},
	}
}
