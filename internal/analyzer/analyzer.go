// Package analyzer assembles a complete profile from raw resume text.
package analyzer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/jobs"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/profile"
	"github.com/spigell/resume-analyzer/internal/skills"
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the base logger; every run adds its analysis ID.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithConcurrency bounds parallel skill classification calls.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		a.concurrency = n
	}
}

// WithoutEntities skips named-entity tagging; the profile keeps an empty group.
func WithoutEntities(reason string) Option {
	return func(a *Analyzer) {
		a.disabled[StageEntities] = reason
	}
}

// WithMatcher replaces the default job matcher.
func WithMatcher(m *jobs.Matcher) Option {
	return func(a *Analyzer) {
		a.matcher = m
	}
}

// WithIDGenerator overrides how analysis IDs are produced.
func WithIDGenerator(fn func() string) Option {
	return func(a *Analyzer) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// Analyzer runs the stages that turn resume text into a profile.
type Analyzer struct {
	logger      *zap.Logger
	caps        capability.Set
	concurrency int
	disabled    map[string]string
	matcher     *jobs.Matcher
	newID       func() string

	stages []Stage
	deps   Deps
}

// New builds an Analyzer over the given capabilities.
func New(caps capability.Set, opts ...Option) *Analyzer {
	a := &Analyzer{
		logger:   zap.NewNop(),
		caps:     caps,
		disabled: map[string]string{},
		newID:    uuid.NewString,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = logger.WithCommonFields(a.logger, caps.Provider, caps.Model)
	if a.matcher == nil {
		a.matcher = jobs.NewMatcher(jobs.WithLogger(a.logger))
	}

	a.stages = DefaultStages()
	for name, reason := range a.disabled {
		DisableByName(a.stages, name, reason)
	}

	a.deps = Deps{
		Logger: a.logger,
		Tagger: caps.Tagger,
		Scorer: skills.NewScorer(caps.Classifier,
			skills.WithConcurrency(a.concurrency),
			skills.WithLogger(a.logger),
		),
		Matcher: a.matcher,
	}

	return a
}

// Stages reports the configured stages and whether they run.
func (a *Analyzer) Stages() []Status {
	return Describe(a.stages)
}

// Analyze runs every enabled stage over text. It never returns nil: when a
// capability is unavailable or a stage fails, the result is an error profile
// with all collections empty.
func (a *Analyzer) Analyze(ctx context.Context, text string) (result *profile.Profile) {
	log := logger.WithAnalysis(a.logger, a.newID())
	deps := a.deps
	deps.Logger = log

	defer func() {
		if r := recover(); r != nil {
			log.Error("analysis panicked", zap.Any("panic", r))
			result = profile.Failed(fmt.Errorf("analysis panicked: %v", r))
		}
	}()

	log.Info("analysis started", zap.Int("text_length", len(text)))

	state := &State{Text: text, Profile: profile.New()}
	for _, stage := range a.stages {
		stageLog := log.With(zap.String(logger.FieldStage, stage.Name()))
		if !stage.IsEnabled() {
			stageLog.Info("stage disabled")
			continue
		}

		deps.Logger = stageLog
		info, err := stage.Apply(ctx, deps, state)
		if err != nil {
			stageLog.Error("stage failed", zap.Error(err))
			return profile.Failed(fmt.Errorf("%s: %w", stage.Name(), err))
		}

		stageLog.Debug("stage completed", zap.Int("found", info.Found))
	}

	log.Info("analysis completed",
		zap.Int("skills", len(state.Profile.Skills)),
		zap.Int("job_recommendations", len(state.Profile.JobRecommendations)),
		zap.Int("resume_improvements", len(state.Profile.Improvements)),
	)

	return state.Profile
}
