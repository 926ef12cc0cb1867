package ai

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"jobfit/internal/config"
	"jobfit/internal/errors"
	"jobfit/internal/types"
)

// Helper functions to create pointers for test values
func timePtr(d time.Duration) *time.Duration { return &d }
func intPtr(i int) *int                      { return &i }
func float32Ptr(f float32) *float32          { return &f }
func boolPtr(b bool) *bool                   { return &b }

var testLogger = errors.NewLogger(slog.LevelDebug)

// TestFitConfigDerivation verifies that the fit-evaluation configuration is
// correctly derived, with fallbacks to the global configuration.
func TestFitConfigDerivation(t *testing.T) {
	testConfig := &config.Config{
		AI: config.AIConfig{
			// Global defaults that should be used as fallbacks
			Provider:         "gemini",
			Model:            "global-model",
			Timeout:          60 * time.Second,
			APIKey:           "global-api-key",
			MaxRetries:       5,
			Temperature:      0.9,
			UseSystemPrompts: true,

			Fit: config.OperationAIConfig{
				Model:       "fit-specific-model",      // Override
				Timeout:     timePtr(90 * time.Second), // Override
				Temperature: float32Ptr(0.1),           // Override
				// APIKey and MaxRetries should fall back to global values.
			},
		},
	}

	cfg := testConfig.GetFitConfig()

	if cfg.Model != "fit-specific-model" {
		t.Errorf("Expected Model 'fit-specific-model', got '%s'", cfg.Model)
	}
	if *cfg.Timeout != 90*time.Second {
		t.Errorf("Expected Timeout 90s, got %v", *cfg.Timeout)
	}
	if *cfg.Temperature != 0.1 {
		t.Errorf("Expected Temperature 0.1, got %f", *cfg.Temperature)
	}
	if cfg.APIKey != "global-api-key" {
		t.Errorf("Expected APIKey fallback 'global-api-key', got '%s'", cfg.APIKey)
	}
	if *cfg.MaxRetries != 5 {
		t.Errorf("Expected MaxRetries fallback 5, got %d", *cfg.MaxRetries)
	}
	if !*cfg.UseSystemPrompts {
		t.Error("Expected UseSystemPrompts fallback true")
	}

	// The derived config must be consumable by the service factory.
	if _, err := NewService(&cfg, testLogger); err != nil {
		t.Logf("Received expected error when creating service with test key: %v", err)
	}
}

func TestNewServiceUnsupportedProvider(t *testing.T) {
	cfg := &config.OperationAIConfig{
		Provider:         "unknown-provider",
		Model:            "test-model",
		Timeout:          timePtr(30 * time.Second),
		APIKey:           "test-key",
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.5),
		UseSystemPrompts: boolPtr(true),
	}

	_, err := NewService(cfg, testLogger)
	if err == nil {
		t.Fatal("Expected error for unsupported provider")
	}
}

func TestCircuitBreakerIntegrationWithService(t *testing.T) {
	testOpConfig := &config.OperationAIConfig{
		Provider:         "gemini",
		Model:            "test-model",
		Timeout:          timePtr(30 * time.Second),
		APIKey:           "test-key",
		MaxRetries:       intPtr(1),
		Temperature:      float32Ptr(0.5),
		UseSystemPrompts: boolPtr(true),
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          true,
			MaxRequests:      5,
			Interval:         30 * time.Second,
			Timeout:          45 * time.Second,
			MinRequests:      2,
			FailureThreshold: 0.8,
		},
	}

	service, err := NewService(testOpConfig, testLogger)
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}

	if service.config.CircuitBreaker.MaxRequests != 5 {
		t.Errorf("Expected circuit breaker max requests 5, got %d", service.config.CircuitBreaker.MaxRequests)
	}
	if service.config.CircuitBreaker.FailureThreshold != 0.8 {
		t.Errorf("Expected circuit breaker failure threshold 0.8, got %f", service.config.CircuitBreaker.FailureThreshold)
	}

	geminiProvider, ok := service.Provider.(*GeminiProvider)
	if !ok {
		t.Fatal("Service provider is not of type *GeminiProvider")
	}

	stats := geminiProvider.GetCircuitBreakerStats()

	aiOpsStats, ok := stats["ai_operations"].(map[string]any)
	if !ok {
		t.Fatal("AI operations stats should exist and be a map")
	}
	if name, _ := aiOpsStats["name"].(string); name != "fit-evaluation" {
		t.Errorf("Expected circuit breaker name 'fit-evaluation', got '%s'", name)
	}

	modelOpsStats, ok := stats["model_operations"].(map[string]any)
	if !ok {
		t.Fatal("Model operations stats should exist and be a map")
	}
	if name, _ := modelOpsStats["name"].(string); name != "fit-model-check" {
		t.Errorf("Expected model circuit breaker name 'fit-model-check', got '%s'", name)
	}

	if overallHealthy, _ := stats["overall_healthy"].(bool); !overallHealthy {
		t.Error("Circuit breaker should be healthy initially")
	}
}

// stubProvider returns a canned evaluation and usage without any network.
type stubProvider struct {
	eval  types.LLMFitEvaluation
	usage *TokenUsage
	err   error
}

func (p *stubProvider) EvaluateFit(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (types.LLMFitEvaluation, *TokenUsage, error) {
	return p.eval, p.usage, p.err
}

func (p *stubProvider) GetModelInfo(ctx context.Context) *ModelInfo { return nil }

func (p *stubProvider) Close() error { return nil }

func TestEvaluateFitCapturesTokenUsage(t *testing.T) {
	usage := &TokenUsage{InputTokens: 120, OutputTokens: 45, TotalTokens: 165}
	service := &Service{
		Provider: &stubProvider{
			eval: types.LLMFitEvaluation{
				TotalScore:     0.8,
				Recommendation: types.RecommendationApply,
			},
			usage: usage,
		},
		logger: testLogger,
	}

	if got := service.LastTokenUsage(); got != nil {
		t.Fatalf("Expected no token usage before any evaluation, got %+v", got)
	}

	eval, err := service.EvaluateFit(context.Background(), &types.JobDescription{Title: "Go Engineer"}, &types.UserProfile{Name: "Dana"})
	if err != nil {
		t.Fatalf("EvaluateFit failed: %v", err)
	}
	if eval.Recommendation != types.RecommendationApply {
		t.Errorf("Expected apply recommendation, got %q", eval.Recommendation)
	}

	got := service.LastTokenUsage()
	if got == nil {
		t.Fatal("Expected token usage to be retained after evaluation")
	}
	if got.InputTokens != 120 || got.OutputTokens != 45 || got.TotalTokens != 165 {
		t.Errorf("Unexpected token usage retained: %+v", got)
	}
}

func TestEvaluateFitDropsUsageOnError(t *testing.T) {
	service := &Service{
		Provider: &stubProvider{
			usage: &TokenUsage{TotalTokens: 10},
			err:   errors.NewScoringError(errors.ErrCodeScoringFailed, "provider unavailable", nil),
		},
		logger: testLogger,
	}

	if _, err := service.EvaluateFit(context.Background(), &types.JobDescription{}, &types.UserProfile{}); err == nil {
		t.Fatal("Expected evaluation error")
	}
	if got := service.LastTokenUsage(); got != nil {
		t.Errorf("Expected no token usage after failed evaluation, got %+v", got)
	}
}
