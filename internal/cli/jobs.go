package cli

import (
	"fmt"

	"github.com/jaiwin14/JobnexusAI/internal/ai"
	"github.com/jaiwin14/JobnexusAI/internal/common"
	"github.com/jaiwin14/JobnexusAI/internal/jobs"
	"github.com/jaiwin14/JobnexusAI/internal/types"

	"github.com/spf13/cobra"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs [job-title] [work-mode] [location]",
	Short: "Search job boards with a model-refined query",
	Long: `Search external job boards for postings matching the given title,
work mode (remote, hybrid, or onsite), and location. The query is refined
by the AI model before the provider fan-out, and results are deduplicated
and ranked by relevance.`,
	Args: cobra.ExactArgs(3),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if jobsConfig.OutputFormat == "" {
			jobsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(jobsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runJobs,
}

var jobsConfig common.CommandConfig

func init() {
	jobsCmd.Flags().StringVarP(&jobsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	jobsCmd.Flags().StringVar(&jobsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = jobsCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runJobs(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for the jobs operation
	jobsAIConfig := cfg.GetJobsConfig()
	aiService, err := ai.NewService(&jobsAIConfig, "jobs", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	input := types.JobSearchInput{
		JobTitle: args[0],
		WorkMode: args[1],
		Location: args[2],
	}

	logger.Info("Starting job search",
		"job_title", input.JobTitle,
		"work_mode", input.WorkMode,
		"location", input.Location,
		"output_format", jobsConfig.OutputFormat)

	searchService := jobs.NewService(aiService.Provider, &cfg.JobSearch, logger)
	result, err := searchService.Search(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("failed to search jobs: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(*result, jobsConfig); err != nil {
		return err
	}

	logger.Info("Job search completed", "results", result.TotalResults, "success", result.Success)
	return nil
}
