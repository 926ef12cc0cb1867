package scoring

import (
	"context"
	"testing"

	"jobfit/internal/config"
	"jobfit/internal/errors"
	"jobfit/internal/types"
)

type stubEvaluator struct {
	evaluation types.LLMFitEvaluation
	err        error
	calls      int
}

func (s *stubEvaluator) EvaluateFit(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (types.LLMFitEvaluation, error) {
	s.calls++
	return s.evaluation, s.err
}

func TestEvaluateDeterministicApply(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	svc, err := NewService(&cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	job := &types.JobDescription{
		Company:            "Acme",
		Title:              "Data Engineer",
		RequiredSkills:     []string{"Python", "SQL"},
		ExperienceYearsMin: intPtr(3),
		ExperienceYearsMax: intPtr(6),
	}
	profile := &types.UserProfile{
		Skills:            []string{"Python", "SQL"},
		YearsOfExperience: 5,
	}

	result, err := svc.Evaluate(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.Recommendation != types.RecommendationApply {
		t.Errorf("Recommendation = %v, want apply (total score %v)",
			result.Recommendation, result.FitScore.TotalScore)
	}
	if !result.Constraints.Passed {
		t.Errorf("Constraints.Passed = false, want true")
	}
	if result.FitScore.TotalScore != 1.0 {
		t.Errorf("TotalScore = %v, want 1.0", result.FitScore.TotalScore)
	}
}

func TestEvaluateDeterministicSkipOnMissingSkills(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	svc, err := NewService(&cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	job := &types.JobDescription{RequiredSkills: []string{"Java"}}
	profile := &types.UserProfile{Skills: []string{"Python", "SQL"}}

	result, err := svc.Evaluate(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.FitScore.RequiredSkillScore != 0.0 {
		t.Errorf("RequiredSkillScore = %v, want 0.0", result.FitScore.RequiredSkillScore)
	}
	if result.Recommendation != types.RecommendationSkip {
		t.Errorf("Recommendation = %v, want skip", result.Recommendation)
	}
}

func TestEvaluateLLMMode(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Mode = config.ScoringModeLLM
	stub := &stubEvaluator{
		evaluation: types.LLMFitEvaluation{
			TotalScore:     0.9,
			Recommendation: types.RecommendationApply,
			Reasoning:      "strong skill alignment",
		},
	}
	svc, err := NewService(&cfg, stub, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Evaluate(context.Background(), &types.JobDescription{}, &types.UserProfile{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("evaluator called %d times, want 1", stub.calls)
	}
	if result.FitScore.TotalScore != 0.9 {
		t.Errorf("TotalScore = %v, want model-reported 0.9", result.FitScore.TotalScore)
	}
	if result.Recommendation != types.RecommendationApply {
		t.Errorf("Recommendation = %v, want apply", result.Recommendation)
	}
	if result.Reasoning != "strong skill alignment" {
		t.Errorf("Reasoning = %q", result.Reasoning)
	}
}

func TestEvaluateLLMConstraintOverride(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Mode = config.ScoringModeLLM
	cfg.VisaStrict = true
	stub := &stubEvaluator{
		evaluation: types.LLMFitEvaluation{
			TotalScore:     0.95,
			Recommendation: types.RecommendationApply,
		},
	}
	svc, err := NewService(&cfg, stub, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	job := &types.JobDescription{VisaSponsorship: boolPtr(false)}
	profile := &types.UserProfile{VisaSponsorshipNeeded: true}

	result, err := svc.Evaluate(context.Background(), job, profile)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	// A failed strict constraint dominates the model's verdict.
	if result.Recommendation != types.RecommendationSkip {
		t.Errorf("Recommendation = %v, want constraint-forced skip", result.Recommendation)
	}
	// The model-reported score is still surfaced for explainability.
	if result.FitScore.TotalScore != 0.95 {
		t.Errorf("TotalScore = %v, want 0.95", result.FitScore.TotalScore)
	}
}

func TestEvaluateLLMErrorAborts(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Mode = config.ScoringModeLLM
	stub := &stubEvaluator{
		err: errors.NewScoringError(errors.ErrCodeScoringTimeout, "request timed out", nil),
	}
	svc, err := NewService(&cfg, stub, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Evaluate(context.Background(), &types.JobDescription{}, &types.UserProfile{})
	if err == nil {
		t.Fatal("Evaluate returned nil error, want scoring error")
	}
	if result != nil {
		t.Errorf("Evaluate returned a result alongside the error: %+v", result)
	}
}

func TestNewServiceRequiresEvaluatorForLLMMode(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Mode = config.ScoringModeLLM
	if _, err := NewService(&cfg, nil, nil); err == nil {
		t.Fatal("NewService accepted llm mode without an evaluator")
	}
}

func TestEvaluateLLMClampsScore(t *testing.T) {
	cfg := config.DefaultScoringConfig()
	cfg.Mode = config.ScoringModeLLM
	stub := &stubEvaluator{
		evaluation: types.LLMFitEvaluation{TotalScore: 1.7, Recommendation: types.RecommendationApply},
	}
	svc, err := NewService(&cfg, stub, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	result, err := svc.Evaluate(context.Background(), &types.JobDescription{}, &types.UserProfile{})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if result.FitScore.TotalScore != 1.0 {
		t.Errorf("TotalScore = %v, want clamped 1.0", result.FitScore.TotalScore)
	}
}
