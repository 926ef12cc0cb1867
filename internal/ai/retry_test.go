package ai

import (
	"context"
	stderrors "errors"
	"testing"

	jobfitErrors "jobfit/internal/errors"

	"google.golang.org/genai"
)

func TestExecuteWithRetryEventualSuccess(t *testing.T) {
	attempts := 0
	want := &genai.GenerateContentResponse{}

	result, err := executeWithRetry(context.Background(), nil, "evaluate_fit", 2, func() (*genai.GenerateContentResponse, error) {
		attempts++
		if attempts < 3 {
			return nil, stderrors.New("connection reset")
		}
		return want, nil
	})
	if err != nil {
		t.Fatalf("executeWithRetry() error = %v, want nil", err)
	}
	if result != want {
		t.Error("executeWithRetry() did not return the successful response")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestExecuteWithRetryBudgetExhausted(t *testing.T) {
	attempts := 0

	_, err := executeWithRetry(context.Background(), nil, "evaluate_fit", 2, func() (*genai.GenerateContentResponse, error) {
		attempts++
		return nil, stderrors.New("connection refused")
	})
	if err == nil {
		t.Fatal("executeWithRetry() error = nil, want transport error")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (maxRetries+1)", attempts)
	}

	var appErr *jobfitErrors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.Type != jobfitErrors.ErrorTypeScoring {
		t.Errorf("error type = %v, want %v", appErr.Type, jobfitErrors.ErrorTypeScoring)
	}
	if appErr.Code != jobfitErrors.ErrCodeScoringTransport {
		t.Errorf("error code = %q, want %q", appErr.Code, jobfitErrors.ErrCodeScoringTransport)
	}
}

func TestExecuteWithRetryTimeoutIsFatal(t *testing.T) {
	attempts := 0

	_, err := executeWithRetry(context.Background(), nil, "evaluate_fit", 3, func() (*genai.GenerateContentResponse, error) {
		attempts++
		return nil, context.DeadlineExceeded
	})
	if err == nil {
		t.Fatal("executeWithRetry() error = nil, want timeout error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (timeouts are not retried)", attempts)
	}

	var appErr *jobfitErrors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("error is not an AppError: %v", err)
	}
	if appErr.Code != jobfitErrors.ErrCodeScoringTimeout {
		t.Errorf("error code = %q, want %q", appErr.Code, jobfitErrors.ErrCodeScoringTimeout)
	}
}

func TestExecuteWithRetryScoringErrorPropagatesUnchanged(t *testing.T) {
	original := jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringValidation,
		"Model returned malformed response", nil)
	attempts := 0

	_, err := executeWithRetry(context.Background(), nil, "evaluate_fit", 3, func() (*genai.GenerateContentResponse, error) {
		attempts++
		return nil, original
	})
	if !stderrors.Is(err, original) {
		t.Errorf("executeWithRetry() error = %v, want the original scoring error unchanged", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (scoring errors are not retried)", attempts)
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errorKind
	}{
		{"deadline exceeded", context.DeadlineExceeded, errKindTimeout},
		{"generic error", stderrors.New("boom"), errKindTransport},
		{"wrapped deadline", stderrors.Join(stderrors.New("call failed"), context.DeadlineExceeded), errKindTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyError(tt.err); got != tt.want {
				t.Errorf("classifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}
