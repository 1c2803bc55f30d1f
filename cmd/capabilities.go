package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai/gemini"
	"github.com/spigell/resume-analyzer/internal/capability"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/secrets"
	"github.com/spigell/resume-analyzer/internal/storage"
)

const providerStatic = "static"

// newCapabilities builds the configured provider. A provider that cannot be
// initialized is replaced by one whose every call fails as unavailable, so
// the analysis still produces its error document.
func newCapabilities(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (capability.Set, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", providerStatic:
		return capability.Set{
			Provider:   providerStatic,
			Classifier: capability.StaticClassifier{Score: cfg.Static.Score},
			Tagger:     capability.NoopTagger{},
		}, nil
	case gemini.Provider:
		caps, err := newGeminiCapabilities(ctx, cfg.Gemini, logger)
		if err != nil {
			logger.Warn("gemini provider is unavailable", zap.Error(err))
			return capability.NewUnreachableSet(gemini.Provider, err), nil
		}
		return caps, nil
	default:
		return capability.Set{}, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

func newGeminiCapabilities(ctx context.Context, cfg *GeminiConfig, logger *zap.Logger) (capability.Set, error) {
	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.APIKey,
		File:  cfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return capability.Set{}, capability.Unavailable(
			fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY)", err))
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.MaxRetries))

	return gemini.NewSet(ctx, gemini.Config{
		APIKey:       apiKey,
		Model:        cfg.Model,
		MaxRetries:   cfg.MaxRetries,
		MaxLogLength: cfg.MaxLogLength,
		Timeout:      cfg.Timeout,
	}, genLogger)
}

// newSource returns the input resolver; object storage is only configured
// when arg points at it.
func newSource(ctx context.Context, cfg *S3Config, arg string, logger *zap.Logger) (*document.Source, error) {
	opts := []document.SourceOption{}

	if storage.IsURL(arg) {
		s3cfg := storage.Config{
			Endpoint:  cfg.Endpoint,
			Region:    cfg.Region,
			AccessKey: strings.TrimSpace(cfg.AccessKey),
		}
		if s3cfg.AccessKey != "" {
			secret, err := secrets.Load(secrets.Source{
				Name: "s3 secret key",
				File: cfg.SecretKeyFile,
				Env:  "AWS_SECRET_ACCESS_KEY",
			})
			if err != nil {
				return nil, err
			}
			s3cfg.SecretKey = secret
		}

		fetcher, err := storage.NewFetcher(ctx, s3cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("creating s3 client: %w", err)
		}
		opts = append(opts, document.WithFetcher(fetcher))
	}

	return document.NewSource(document.NewExtractor(), opts...), nil
}
