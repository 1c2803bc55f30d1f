package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/storage"
)

type extractResult struct {
	Success bool   `json:"success"`
	Text    string `json:"text,omitempty"`
	Error   string `json:"error,omitempty"`
}

var extractCmd = &cobra.Command{
	Use:   "extract <path>",
	Short: "Extract plain text from a PDF or Word resume",
	Args:  exactArgs(1, "Please provide a file path as an argument."),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	log, config, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	source, err := newSource(ctx, config.Storage.S3, path, log)
	if err != nil {
		return err
	}

	var text string
	if storage.IsURL(path) {
		text, err = source.Resolve(ctx, path)
	} else {
		text, err = source.ResolveFile(path)
	}

	if err != nil {
		log.Error("text extraction failed", zap.String("path", path), zap.Error(err))
		if werr := writeJSON(cmd.OutOrStdout(), extractResult{Error: err.Error()}); werr != nil {
			return werr
		}
		return errReported
	}

	log.Debug("text extracted", zap.String("path", path), zap.Int("length", len(text)))
	return writeJSON(cmd.OutOrStdout(), extractResult{Success: true, Text: text})
}
