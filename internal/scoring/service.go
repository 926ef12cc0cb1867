package scoring

import (
	"context"

	"jobfit/internal/config"
	"jobfit/internal/errors"
	"jobfit/internal/types"
)

// FitEvaluator is the capability the LLM scoring path must provide. The
// concrete implementation lives in the ai package; the narrow interface
// keeps this package free of provider dependencies.
type FitEvaluator interface {
	EvaluateFit(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (types.LLMFitEvaluation, error)
}

// Service orchestrates a single job-versus-profile evaluation: it runs the
// constraint gate, selects the scoring strategy for the configured mode and
// assembles the terminal FitResult.
type Service struct {
	cfg       *config.ScoringConfig
	scorer    *DeterministicScorer
	evaluator FitEvaluator
	logger    *errors.Logger
}

// NewService creates a scoring service. The evaluator may be nil when the
// configured mode is deterministic.
func NewService(cfg *config.ScoringConfig, evaluator FitEvaluator, logger *errors.Logger) (*Service, error) {
	if cfg.Mode == config.ScoringModeLLM && evaluator == nil {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"scoring mode 'llm' requires an LLM evaluator", nil)
	}

	return &Service{
		cfg:       cfg,
		scorer:    NewDeterministicScorer(cfg),
		evaluator: evaluator,
		logger:    logger,
	}, nil
}

// Evaluate produces the FitResult for one (job, profile) pair. An
// unrecoverable LLM failure aborts the evaluation rather than falling back
// to a guessed score: a returned result's score is always trustworthy.
func (s *Service) Evaluate(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (*types.FitResult, error) {
	constraints := EvaluateConstraints(job, profile, s.cfg)

	result := &types.FitResult{
		Job:         job.Title,
		Company:     job.Company,
		Constraints: constraints,
	}

	switch s.cfg.Mode {
	case config.ScoringModeLLM:
		evaluation, err := s.evaluator.EvaluateFit(ctx, job, profile)
		if err != nil {
			return nil, err
		}
		result.FitScore = types.FitScore{TotalScore: clamp01(evaluation.TotalScore)}
		result.Reasoning = evaluation.Reasoning
		// The model's verdict stands on its own judgment, but a failed
		// strict constraint still forces a skip on both paths.
		result.Recommendation = evaluation.Recommendation
		if !constraints.Passed {
			result.Recommendation = types.RecommendationSkip
		}
	default:
		score := s.scorer.Score(job, profile)
		result.FitScore = score
		result.Recommendation = Classify(score.TotalScore, constraints.Passed,
			s.cfg.FitScoreThreshold, s.cfg.ReviewMargin)
	}

	if s.logger != nil {
		s.logger.Debug("Fit evaluation completed",
			"company", job.Company,
			"title", job.Title,
			"mode", s.cfg.Mode,
			"total_score", result.FitScore.TotalScore,
			"constraints_passed", constraints.Passed,
			"recommendation", result.Recommendation)
	}

	return result, nil
}

// clamp01 bounds a model-reported score to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
