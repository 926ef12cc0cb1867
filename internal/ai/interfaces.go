package ai

import (
	"context"

	"jobfit/internal/types"
)

// AIProvider interface for different LLM implementations
// All methods return token usage information - callers can ignore it if not needed
type AIProvider interface {
	EvaluateFit(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (types.LLMFitEvaluation, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// TokenUsage represents token usage information from LLM responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}
