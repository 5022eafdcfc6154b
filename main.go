package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	inputDir     string
	outputFile   string
	settingsFile string
	sampleSize   int
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "tcf-topics",
	Short: "Organize scraped TCF Canada exam topics",
	Long: `Reads scraped TCF Canada topic JSON files, filters out web-page noise,
orders them chronologically and exports one consolidated JSON document
per pipeline (Expression Orale or Expression Écrite).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&inputDir, "input-dir", "", "Directory containing scraped JSON files (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output", "", "Path of the exported JSON document (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Path to a settings YAML file")
	rootCmd.PersistentFlags().IntVar(&sampleSize, "samples", 3, "Number of sample topics to print per task (0 disables)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newPipelineCommand("orale", "Organize Expression Orale topics", PipelineOrale))
	rootCmd.AddCommand(newPipelineCommand("ecrite", "Organize Expression Écrite topics", PipelineEcrite))
}

// newPipelineCommand builds the subcommand running one pipeline end to end:
// load, optional sample display, export.
func newPipelineCommand(use, short string, pipeline Pipeline) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(debugMode)
			defer logger.Sync()
			zap.ReplaceGlobals(logger)
			sugar := logger.Sugar()

			settings, err := loadSettings(settingsFile)
			if err != nil {
				return err
			}
			if inputDir != "" {
				settings.InputDirectory = inputDir
			}
			out := settings.RulesFor(pipeline.Name).OutputFile
			if outputFile != "" {
				out = outputFile
			}

			organizer := NewTopicOrganizer(pipeline, settings, sugar)
			if _, err := organizer.LoadAllTopics(); err != nil {
				return err
			}
			if sampleSize > 0 {
				organizer.DisplaySampleTopics(sampleSize)
			}
			if err := organizer.ExportOrganizedTopics(out); err != nil {
				return err
			}

			stats := organizer.GetStatistics()
			sugar.Infow("done",
				"files", stats.TotalFiles,
				"failed_files", stats.FailedFiles,
				"topics", stats.TotalTopics,
				"skipped_entries", stats.SkippedEntries)
			return nil
		},
	}
}

func newLogger(debug bool) *zap.Logger {
	if debug {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
