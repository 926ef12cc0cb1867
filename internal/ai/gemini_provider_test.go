package ai

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	jobfitErrors "jobfit/internal/errors"
	"jobfit/internal/types"

	"google.golang.org/genai"
)

func TestValidateEvaluation(t *testing.T) {
	tests := []struct {
		name    string
		eval    types.LLMFitEvaluation
		wantErr bool
	}{
		{
			name: "valid apply",
			eval: types.LLMFitEvaluation{
				TotalScore:     0.85,
				Recommendation: types.RecommendationApply,
				Reasoning:      "strong overlap",
			},
			wantErr: false,
		},
		{
			name: "boundary scores accepted",
			eval: types.LLMFitEvaluation{
				TotalScore:     0.0,
				Recommendation: types.RecommendationSkip,
			},
			wantErr: false,
		},
		{
			name: "unknown recommendation",
			eval: types.LLMFitEvaluation{
				TotalScore:     0.5,
				Recommendation: types.Recommendation("maybe"),
			},
			wantErr: true,
		},
		{
			name: "score above one",
			eval: types.LLMFitEvaluation{
				TotalScore:     1.2,
				Recommendation: types.RecommendationApply,
			},
			wantErr: true,
		},
		{
			name: "negative score",
			eval: types.LLMFitEvaluation{
				TotalScore:     -0.1,
				Recommendation: types.RecommendationSkip,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEvaluation(tt.eval)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateEvaluation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			var appErr *jobfitErrors.AppError
			if !stderrors.As(err, &appErr) {
				t.Fatalf("validation failure is not an AppError: %v", err)
			}
			if appErr.Code != jobfitErrors.ErrCodeScoringValidation {
				t.Errorf("error code = %q, want %q", appErr.Code, jobfitErrors.ErrCodeScoringValidation)
			}
		})
	}
}

func TestThinkingBudget(t *testing.T) {
	tests := []struct {
		effort string
		want   int32
	}{
		{"low", 512},
		{"medium", 2048},
		{"high", 8192},
		{"", 0},
		{"extreme", 0},
	}

	for _, tt := range tests {
		if got := thinkingBudget(tt.effort); got != tt.want {
			t.Errorf("thinkingBudget(%q) = %d, want %d", tt.effort, got, tt.want)
		}
	}
}

func TestWrapScoringErrorPassthrough(t *testing.T) {
	original := jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringTimeout,
		"LLM request timed out; consider raising ai.timeout", nil)
	if got := wrapScoringError(original); got != error(original) {
		t.Errorf("wrapScoringError() rewrapped a scoring error: %v", got)
	}

	wrapped := wrapScoringError(stderrors.New("breaker open"))
	var appErr *jobfitErrors.AppError
	if !stderrors.As(wrapped, &appErr) {
		t.Fatalf("wrapScoringError() = %v, want AppError", wrapped)
	}
	if appErr.Type != jobfitErrors.ErrorTypeScoring {
		t.Errorf("error type = %v, want %v", appErr.Type, jobfitErrors.ErrorTypeScoring)
	}
}

// A model that routes structured output through a function call must
// yield the same verdict as one that returns it as plain text.
func TestResponsePayloadToolCallFallback(t *testing.T) {
	const verdict = `{"totalScore":0.82,"recommendation":"apply","reasoning":"strong skill overlap"}`

	direct := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: verdict}}},
		}},
	}
	singleArgCall := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				FunctionCall: &genai.FunctionCall{
					Name: "emit_fit_evaluation",
					Args: map[string]any{"evaluation": verdict},
				},
			}}},
		}},
	}
	structuredArgsCall := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				FunctionCall: &genai.FunctionCall{
					Name: "emit_fit_evaluation",
					Args: map[string]any{
						"totalScore":     0.82,
						"recommendation": "apply",
						"reasoning":      "strong skill overlap",
					},
				},
			}}},
		}},
	}

	var want types.LLMFitEvaluation
	if err := json.Unmarshal([]byte(ExtractJSON(responsePayload(direct))), &want); err != nil {
		t.Fatalf("Failed to parse direct payload: %v", err)
	}

	tests := []struct {
		name   string
		result *genai.GenerateContentResponse
	}{
		{"single string argument", singleArgCall},
		{"structured arguments", structuredArgsCall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got types.LLMFitEvaluation
			payload := ExtractJSON(responsePayload(tt.result))
			if err := json.Unmarshal([]byte(payload), &got); err != nil {
				t.Fatalf("Failed to parse tool-call payload %q: %v", payload, err)
			}
			if got != want {
				t.Errorf("Tool-call verdict = %+v, want %+v", got, want)
			}
		})
	}

	empty := &genai.GenerateContentResponse{}
	if got := responsePayload(empty); got != "" {
		t.Errorf("Expected empty payload for empty response, got %q", got)
	}
}
