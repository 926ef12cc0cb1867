package ai

import (
	"testing"
	"time"

	"jobfit/internal/config"

	"google.golang.org/genai"
)

func breakerTestConfig(enabled bool) *config.OperationAIConfig {
	return &config.OperationAIConfig{
		Provider: "gemini",
		Model:    "test-model",
		CircuitBreaker: config.CircuitBreakerConfig{
			Enabled:          enabled,
			MaxRequests:      3,
			Interval:         60 * time.Second,
			Timeout:          60 * time.Second,
			MinRequests:      3,
			FailureThreshold: 0.6,
		},
	}
}

func TestFitCircuitBreakerInitialState(t *testing.T) {
	cb := NewFitCircuitBreaker(breakerTestConfig(true), nil)
	if cb == nil {
		t.Fatal("Circuit breaker should not be nil when enabled")
	}

	stats := cb.GetStats()

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "fit-evaluation" {
		t.Errorf("Expected circuit breaker name 'fit-evaluation', got '%s'", name)
	}

	state, ok := stats["state"].(string)
	if !ok {
		t.Fatal("Circuit breaker state not found")
	}
	if state != "closed" {
		t.Errorf("Expected initial state 'closed', got '%s'", state)
	}

	enabled, ok := stats["enabled"].(bool)
	if !ok {
		t.Fatal("Circuit breaker enabled status not found")
	}
	if !enabled {
		t.Error("Circuit breaker should be enabled")
	}

	if !cb.IsHealthy() {
		t.Error("Circuit breaker should be healthy initially")
	}
}

func TestModelCircuitBreakerInitialState(t *testing.T) {
	cb := NewModelCircuitBreaker(breakerTestConfig(true), nil)
	if cb == nil {
		t.Fatal("Model circuit breaker should not be nil when enabled")
	}

	stats := cb.GetModelStats()

	name, ok := stats["name"].(string)
	if !ok {
		t.Fatal("Circuit breaker name not found")
	}
	if name != "fit-model-check" {
		t.Errorf("Expected circuit breaker name 'fit-model-check', got '%s'", name)
	}

	if !cb.IsModelHealthy() {
		t.Error("Model circuit breaker should be healthy initially")
	}
}

func TestCircuitBreakerDisabled(t *testing.T) {
	cb := NewFitCircuitBreaker(breakerTestConfig(false), nil)
	if cb != nil {
		t.Fatal("Circuit breaker should be nil when disabled")
	}

	// A nil breaker still reports sensible stats and health
	stats := cb.GetStats()
	if enabled, ok := stats["enabled"].(bool); !ok || enabled {
		t.Error("Disabled circuit breaker stats should report enabled=false")
	}
	if !cb.IsHealthy() {
		t.Error("Disabled circuit breaker should report healthy")
	}

	mcb := NewModelCircuitBreaker(breakerTestConfig(false), nil)
	if mcb != nil {
		t.Fatal("Model circuit breaker should be nil when disabled")
	}
}

func TestDisabledCircuitBreakerExecutesDirectly(t *testing.T) {
	var cb *FitCircuitBreaker

	called := false
	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		called = true
		return nil, nil
	})
	if err != nil {
		t.Fatalf("Execute on nil breaker should not fail: %v", err)
	}
	if !called {
		t.Error("Execute on nil breaker should invoke the function")
	}
}
