package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/analyzer"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/profile"
)

const (
	PromptImprovements = "Show resume improvements"
	PromptSkills       = "Show skills"
	PromptDone         = "Done"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-text-or-path>",
	Short: "Analyze a resume and print the profile as JSON",
	Long: "Analyze a resume given as text, as a path to a .pdf/.docx/.txt/.md file or as an s3://bucket/key URL.\n" +
		"The profile is printed to stdout as a single JSON document; logs go to stderr.",
	Args: exactArgs(1, "Please provide resume text or a file path as the only argument"),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("interactive", "i", false, "browse the job recommendations on stderr before printing the result")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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
		log.Error("reading resume", zap.Error(err))
		if werr := writeJSON(cmd.OutOrStdout(), map[string]string{"error": err.Error()}); werr != nil {
			return werr
		}
		return errReported
	}

	caps, err := newCapabilities(ctx, config.AI, log)
	if err != nil {
		return err
	}

	opts := []analyzer.Option{
		analyzer.WithLogger(log),
		analyzer.WithConcurrency(config.Skills.MaxConcurrency),
	}
	if !config.AI.Entities {
		opts = append(opts, analyzer.WithoutEntities("disabled by ai.entities"))
	}

	a := analyzer.New(caps, opts...)
	for _, status := range a.Stages() {
		log.Debug("analysis stage",
			zap.String(logger.FieldStage, status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	result := a.Analyze(ctx, text)

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive && !result.HasError() {
		if err := browse(result); err != nil && !errors.Is(err, promptui.ErrInterrupt) && !errors.Is(err, promptui.ErrEOF) {
			log.Warn("interactive review aborted", zap.Error(err))
		}
	}

	return writeJSON(cmd.OutOrStdout(), result)
}

func setup() (*zap.Logger, *Config, error) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, nil, err
	}

	l.Debug("starting", zap.String("app", app), zap.String("version", version))
	return l, config, nil
}

// browse lets the user inspect the result on stderr; stdout stays reserved
// for the JSON document.
func browse(p *profile.Profile) error {
	for {
		items := make([]string, 0, len(p.JobRecommendations)+3)
		for _, rec := range p.JobRecommendations {
			items = append(items, fmt.Sprintf("%s (match %.0f%%)", rec.Title, rec.MatchScore*100))
		}
		items = append(items, PromptSkills, PromptImprovements, PromptDone)

		sel := promptui.Select{
			Label:  "Choose a recommendation and press ENTER",
			Items:  items,
			Stdout: os.Stderr,
		}

		idx, choice, err := sel.Run()
		if err != nil {
			return err
		}

		switch choice {
		case PromptDone:
			return nil
		case PromptSkills:
			for _, s := range p.Skills {
				fmt.Fprintf(os.Stderr, "- %s (%s): proficiency %.1f, confidence %.2f\n", s.Name, s.Category, s.Proficiency, s.Confidence)
			}
		case PromptImprovements:
			for _, imp := range p.Improvements {
				fmt.Fprintf(os.Stderr, "- %s\n", imp)
			}
		default:
			rec := p.JobRecommendations[idx]
			fmt.Fprintf(os.Stderr, "%s\n%s\nSalary: %s\nGrowth: %s\n%s\n\n",
				rec.Title, rec.Description, rec.SalaryRange, rec.GrowthPath, rec.Explanation)
		}
	}
}
