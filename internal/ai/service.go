package ai

import (
	"context"
	"fmt"

	"jobfit/internal/config"
	"jobfit/internal/errors"
	"jobfit/internal/types"
)

// Service handles LLM-backed fit evaluation
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger

	lastUsage *TokenUsage
}

// NewService creates a new LLM scoring service instance
func NewService(cfg *config.OperationAIConfig, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	logger.Debug("Initializing LLM scoring service",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewScoringError(errors.ErrCodeScoringFailed,
			"Failed to create LLM provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// EvaluateFit scores one job against one profile through the configured
// provider. Usage from the most recent call is kept for LastTokenUsage.
func (s *Service) EvaluateFit(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (types.LLMFitEvaluation, error) {
	eval, usage, err := s.Provider.EvaluateFit(ctx, job, profile)
	if err != nil {
		return types.LLMFitEvaluation{}, err
	}

	s.lastUsage = usage
	if usage != nil {
		s.logger.Debug("LLM fit evaluation token usage",
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens,
			"total_tokens", usage.TotalTokens)
	}

	return eval, nil
}

// LastTokenUsage returns the token usage reported by the most recent
// successful EvaluateFit call, or nil when none has completed. Not
// synchronized; callers use one Service per evaluation.
func (s *Service) LastTokenUsage() *TokenUsage {
	return s.lastUsage
}

// GetModelInfo returns information about the LLM model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}
