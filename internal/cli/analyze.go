package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	"github.com/jaiwin14/JobnexusAI/internal/ats"
	"github.com/jaiwin14/JobnexusAI/internal/common"
	"github.com/jaiwin14/JobnexusAI/internal/types"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [resume-file]",
	Short: "Analyze a resume and compute its ATS score",
	Long: `Analyze a plain-text resume through the full ATS pipeline: skills,
experience, projects, education, and formatting analysis, link validation,
company verification, score aggregation, and improvement recommendations.

Step progress is printed to stderr; the final report goes to stdout or the
output file.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if analyzeConfig.OutputFormat == "" {
			analyzeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(analyzeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runAnalyze,
}

var analyzeConfig common.CommandConfig

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = analyzeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the analyze operation
	analyzeAIConfig := cfg.GetAnalyzeConfig()
	aiService, err := ai.NewService(&analyzeAIConfig, "analyze", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	links := ats.NewLinkValidator(cfg.App.LinkProbeTimeout, logger)
	pipeline := ats.NewPipeline(aiService.Provider, links, cfg.App.RecommendationsMax, logger)

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return contents[0], nil
	}

	logDetails := func(resumeText string, cfg common.CommandConfig) {
		logger.Info("Starting resume analysis",
			"resume_chars", len(resumeText),
			"output_format", cfg.OutputFormat)
	}

	// Step progress goes to stderr so stdout stays clean for the report
	progress := func(ev ats.ProgressEvent) {
		if ev.Status == ats.StatusCompleted {
			fmt.Fprintf(os.Stderr, "  %s: done\n", ev.Step)
		}
	}

	analyzeOperation := func(ctx context.Context, resumeText string) (*types.AnalysisReport, *ai.TokenUsage, error) {
		report, err := pipeline.Analyze(ctx, resumeText, progress)
		return report, nil, err
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		analyzeConfig,
		args,
		createInput,
		analyzeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to analyze resume: %w", err)
	}
	logger.Info("Resume analysis completed successfully")
	return nil
}
