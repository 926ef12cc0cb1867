package cli

import (
	"fmt"

	"jobfit/internal/ai"
	"jobfit/internal/common"
	"jobfit/internal/config"
	"jobfit/internal/scoring"
	"jobfit/internal/types"

	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [job-file] [profile-file]",
	Short: "Evaluate how well a job opening fits a candidate profile",
	Long: `Evaluate a structured job description against a candidate profile and
recommend whether to apply. The command takes two arguments: the path to
the job description JSON file and the path to the candidate profile JSON
file.

The evaluation always runs the hard-constraint checks (visa sponsorship,
work type, salary range). The fit score comes from either the
deterministic weighted scorer or an LLM evaluation, depending on the
configured scoring mode.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if evaluateConfig.OutputFormat == "" {
			evaluateConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if evaluateMode != "" {
			switch evaluateMode {
			case config.ScoringModeDeterministic, config.ScoringModeLLM:
				cfg.Scoring.Mode = evaluateMode
			default:
				return fmt.Errorf("invalid scoring mode '%s' (must be '%s' or '%s')",
					evaluateMode, config.ScoringModeDeterministic, config.ScoringModeLLM)
			}
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(evaluateConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runEvaluate,
}

var (
	evaluateConfig common.CommandConfig
	evaluateMode   string
)

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	evaluateCmd.Flags().StringVar(&evaluateConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	evaluateCmd.Flags().StringVar(&evaluateMode, "mode", "", "Scoring mode: deterministic or llm (overrides config)")

	// Add completion for format flag
	_ = evaluateCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = evaluateCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{config.ScoringModeDeterministic, config.ScoringModeLLM}, cobra.ShellCompDirectiveNoFileComp
	})
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)

	var job types.JobDescription
	if err := fileProcessor.ReadJSONFile(args[0], &job); err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	var profile types.UserProfile
	if err := fileProcessor.ReadJSONFile(args[1], &profile); err != nil {
		return fmt.Errorf("failed to read candidate profile: %w", err)
	}

	var evaluator scoring.FitEvaluator
	if cfg.Scoring.Mode == config.ScoringModeLLM {
		fitConfig := cfg.GetFitConfig()
		aiService, err := ai.NewService(&fitConfig, logger)
		if err != nil {
			return fmt.Errorf("failed to create scoring service: %w", err)
		}
		evaluator = aiService
	}

	scoringService, err := scoring.NewService(&cfg.Scoring, evaluator, logger)
	if err != nil {
		return fmt.Errorf("failed to create scoring service: %w", err)
	}

	logger.Info("Starting fit evaluation",
		"company", job.Company,
		"title", job.Title,
		"mode", cfg.Scoring.Mode,
		"output_format", evaluateConfig.OutputFormat)

	result, err := scoringService.Evaluate(cmd.Context(), &job, &profile)
	if err != nil {
		return fmt.Errorf("failed to evaluate fit: %w", err)
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(*result, evaluateConfig); err != nil {
		return err
	}

	logger.Info("Fit evaluation completed successfully",
		"total_score", result.FitScore.TotalScore,
		"recommendation", result.Recommendation)
	return nil
}
