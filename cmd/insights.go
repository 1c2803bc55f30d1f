package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/insights"
)

var insightsCmd = &cobra.Command{
	Use:   "insights <resume-text-or-path>",
	Short: "Ask the language model for a free-form resume review",
	Long:  "Ask the configured language model (ai.provider must be gemini) for skills, experience, education and suggestions as JSON.",
	Args:  exactArgs(1, "Please provide resume text"),
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	log, config, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	source, err := newSource(ctx, config.Storage.S3, args[0], log)
	if err != nil {
		return err
	}

	text, err := source.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	caps, err := newCapabilities(ctx, config.AI, log)
	if err != nil {
		return err
	}
	if caps.Generator == nil {
		return errors.New("insights require a text generation provider; set ai.provider to gemini")
	}

	result, err := insights.New(caps.Generator,
		insights.WithLogger(log),
		insights.WithMaxLogLength(config.AI.Gemini.MaxLogLength),
	).Analyze(ctx, text)
	if err != nil {
		log.Error("insights failed", zap.Error(err))
		return err
	}

	return writeJSON(cmd.OutOrStdout(), result)
}
