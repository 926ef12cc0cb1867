package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobfit/internal/config"
	jobfitErrors "jobfit/internal/errors"
	"jobfit/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	circuitBreaker *FitCircuitBreaker
	modelBreaker   *ModelCircuitBreaker
	logger         *jobfitErrors.Logger
}

// Ensure GeminiProvider implements AIProvider
var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance
func NewGeminiProvider(cfg *config.OperationAIConfig, logger *jobfitErrors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	clientConfig := &genai.ClientConfig{
		APIKey: cfg.APIKey,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		circuitBreaker: NewFitCircuitBreaker(cfg, logger),
		modelBreaker:   NewModelCircuitBreaker(cfg, logger),
		logger:         logger,
	}, nil
}

// ModelInfo represents information about the LLM model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, modelCheckTimeout)
	defer cancel()

	model, err := g.modelBreaker.ExecuteModel(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	if model.DisplayName != "" {
		modelInfo.DisplayName = model.DisplayName
	}
	if model.Version != "" {
		modelInfo.Version = model.Version
	}

	g.logger.Debug("Model availability check successful",
		"model", g.config.Model,
		"provider", g.config.Provider,
		"display_name", modelInfo.DisplayName,
		"version", modelInfo.Version)

	return modelInfo
}

// modelCheckTimeout bounds the availability probe independently of the
// evaluation timeout.
const modelCheckTimeout = 10 * time.Second

// EvaluateFit asks the model to score one job against one profile and
// returns the structured verdict. The raw text passes through ExtractJSON
// before decoding so fenced or prose-wrapped payloads still parse. A
// response that decodes but fails validation is a fatal scoring error,
// never retried.
func (g *GeminiProvider) EvaluateFit(ctx context.Context, job *types.JobDescription, profile *types.UserProfile) (types.LLMFitEvaluation, *TokenUsage, error) {
	var output types.LLMFitEvaluation

	tracer := otel.Tracer("jobfit.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini.evaluate_fit")
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
		attribute.Int("input.required_skills", len(job.RequiredSkills)),
		attribute.Int("input.profile_skills", len(profile.Skills)),
	)

	systemPrompt, userPrompt, err := g.buildPrompts(job, profile)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, err
	}

	genaiConfig := g.buildFitSchema()
	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	callCtx, cancel := context.WithTimeout(ctx, *g.config.Timeout)
	defer cancel()

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return executeWithRetry(callCtx, g.logger, "evaluate_fit", *g.config.MaxRetries, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(callCtx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return output, nil, wrapScoringError(err)
	}

	payload := ExtractJSON(responsePayload(result))
	if err := json.Unmarshal([]byte(payload), &output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.LLMFitEvaluation{}, nil, jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringValidation,
			"Failed to parse fit evaluation response", err)
	}
	if err := validateEvaluation(output); err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return types.LLMFitEvaluation{}, nil, err
	}

	tokenUsage := extractTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Float64("output.total_score", output.TotalScore),
		attribute.String("output.recommendation", string(output.Recommendation)),
	)

	return output, tokenUsage, nil
}

// Close implements AIProvider interface
func (g *GeminiProvider) Close() error {
	// Gemini client doesn't have a Close method in current single-shot usage
	return nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	stats := map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetModelStats(),
	}
	stats["overall_healthy"] = g.circuitBreaker.IsHealthy() && g.modelBreaker.IsModelHealthy()
	return stats
}

// buildPrompts renders the system and user prompts with the job and
// profile serialized as JSON.
func (g *GeminiProvider) buildPrompts(job *types.JobDescription, profile *types.UserProfile) (string, string, error) {
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", "", jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringFailed,
			"Failed to serialize job description", err)
	}
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", "", jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringFailed,
			"Failed to serialize candidate profile", err)
	}

	systemPrompt := g.config.CustomPrompts.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	userTemplate := g.config.CustomPrompts.UserPrompt
	if userTemplate == "" {
		userTemplate = DefaultUserPromptTemplate
	}

	return systemPrompt, fmt.Sprintf(userTemplate, string(jobJSON), string(profileJSON)), nil
}

// buildFitSchema creates the structured-output schema for fit evaluation
func (g *GeminiProvider) buildFitSchema() *genai.GenerateContentConfig {
	genaiConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"totalScore": {
					Type:        genai.TypeNumber,
					Description: "Overall fit score between 0.0 and 1.0",
				},
				"recommendation": {
					Type: genai.TypeString,
					Enum: []string{"apply", "review", "skip"},
				},
				"reasoning": {Type: genai.TypeString},
			},
			Required: []string{"totalScore", "recommendation", "reasoning"},
		},
	}

	if *g.config.Temperature > 0 {
		genaiConfig.Temperature = g.config.Temperature
	}

	if budget := thinkingBudget(g.config.ReasoningEffort); budget > 0 {
		genaiConfig.ThinkingConfig = &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr[int32](budget),
		}
	}

	return genaiConfig
}

// thinkingBudget maps the configured reasoning effort onto a Gemini
// thinking token budget. Unknown or empty values disable thinking.
func thinkingBudget(effort string) int32 {
	switch effort {
	case "low":
		return 512
	case "medium":
		return 2048
	case "high":
		return 8192
	default:
		return 0
	}
}

// responsePayload extracts the textual payload from a Gemini response.
// Structured output normally arrives as text; some models route it
// through a function call instead, in which case the call arguments are
// the payload.
func responsePayload(result *genai.GenerateContentResponse) string {
	if text := result.Text(); text != "" {
		return text
	}

	for _, call := range result.FunctionCalls() {
		if len(call.Args) == 1 {
			for _, v := range call.Args {
				if s, ok := v.(string); ok {
					return s
				}
			}
		}
		if encoded, err := json.Marshal(call.Args); err == nil {
			return string(encoded)
		}
	}

	return ""
}

// validateEvaluation rejects decoded responses that violate the output
// contract.
func validateEvaluation(eval types.LLMFitEvaluation) error {
	if !eval.Recommendation.Valid() {
		return jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringValidation,
			fmt.Sprintf("Model returned unknown recommendation %q", eval.Recommendation), nil)
	}
	if eval.TotalScore < 0 || eval.TotalScore > 1 {
		return jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringValidation,
			fmt.Sprintf("Model returned out-of-range total score %v", eval.TotalScore), nil)
	}
	return nil
}

// wrapScoringError ensures a scoring-typed error reaches the caller.
// Errors already carrying the scoring taxonomy, including those minted by
// the retry layer, pass through unchanged.
func wrapScoringError(err error) error {
	var appErr *jobfitErrors.AppError
	if errors.As(err, &appErr) && appErr.Type == jobfitErrors.ErrorTypeScoring {
		return err
	}
	return jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringFailed,
		"Fit evaluation request failed", err)
}

// extractTokenUsage extracts token usage information from a Gemini response
func extractTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}

	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}
