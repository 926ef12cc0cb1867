package config

import (
	"math"

	"jobfit/internal/errors"
)

// Scoring modes select the strategy used by the fit scoring service.
const (
	ScoringModeDeterministic = "deterministic"
	ScoringModeLLM           = "llm"
)

// weightSumTolerance is the allowed deviation of the weight sum from 1.0.
const weightSumTolerance = 1e-6

// ScoringWeights holds the relative importance of each sub-score. The four
// weights must sum to 1.0 within tolerance.
type ScoringWeights struct {
	MustHave   float64 `mapstructure:"mustHave"`
	Preferred  float64 `mapstructure:"preferred"`
	Experience float64 `mapstructure:"experience"`
	Education  float64 `mapstructure:"education"`
}

// Sum returns the total of the four weights.
func (w ScoringWeights) Sum() float64 {
	return w.MustHave + w.Preferred + w.Experience + w.Education
}

// ScoringConfig holds the fit scoring engine configuration. It is immutable
// after LoadConfig returns; components receive it by reference and never
// mutate it.
type ScoringConfig struct {
	Weights ScoringWeights `mapstructure:"weights"`

	FitScoreThreshold float64 `mapstructure:"fitScoreThreshold"`
	ReviewMargin      float64 `mapstructure:"reviewMargin"`

	SkillFuzzyMatch     bool    `mapstructure:"skillFuzzyMatch"`
	SkillFuzzyThreshold float64 `mapstructure:"skillFuzzyThreshold"`

	ExperienceToleranceYears int `mapstructure:"experienceToleranceYears"`

	LocationStrict bool `mapstructure:"locationStrict"`
	VisaStrict     bool `mapstructure:"visaStrict"`
	SalaryStrict   bool `mapstructure:"salaryStrict"`

	Mode string `mapstructure:"mode"`
}

// Validate checks the scoring configuration. It is called once at config
// construction; a passing ScoringConfig never produces domain errors later.
func (s *ScoringConfig) Validate() error {
	if diff := math.Abs(s.Weights.Sum() - 1.0); diff > weightSumTolerance {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"scoring weights must sum to 1.0", nil).
			WithContext("weight_sum", s.Weights.Sum())
	}
	if s.Weights.MustHave < 0 || s.Weights.Preferred < 0 ||
		s.Weights.Experience < 0 || s.Weights.Education < 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"scoring weights must be non-negative", nil)
	}
	if s.FitScoreThreshold < 0 || s.FitScoreThreshold > 1 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"fitScoreThreshold must be in [0,1]", nil).
			WithContext("fit_score_threshold", s.FitScoreThreshold)
	}
	if s.ReviewMargin < 0 || s.ReviewMargin > 1 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"reviewMargin must be in [0,1]", nil).
			WithContext("review_margin", s.ReviewMargin)
	}
	if s.SkillFuzzyThreshold < 0 || s.SkillFuzzyThreshold > 1 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"skillFuzzyThreshold must be in [0,1]", nil).
			WithContext("skill_fuzzy_threshold", s.SkillFuzzyThreshold)
	}
	if s.ExperienceToleranceYears < 0 {
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"experienceToleranceYears must be >= 0", nil).
			WithContext("experience_tolerance_years", s.ExperienceToleranceYears)
	}
	switch s.Mode {
	case ScoringModeDeterministic, ScoringModeLLM:
	default:
		return errors.NewConfigError(errors.ErrCodeInvalidConfig,
			"scoring mode must be 'deterministic' or 'llm'", nil).
			WithContext("mode", s.Mode)
	}
	return nil
}

// DefaultScoringConfig returns the scoring configuration used when no
// overrides are present. Required skills dominate the weighting.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: ScoringWeights{
			MustHave:   0.45,
			Preferred:  0.20,
			Experience: 0.20,
			Education:  0.15,
		},
		FitScoreThreshold:        0.75,
		ReviewMargin:             0.05,
		SkillFuzzyMatch:          true,
		SkillFuzzyThreshold:      0.85,
		ExperienceToleranceYears: 1,
		Mode:                     ScoringModeDeterministic,
	}
}
