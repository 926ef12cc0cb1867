package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	jobfitErrors "jobfit/internal/errors"

	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

const (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 8 * time.Second
)

// errorKind tags a provider failure so retry policy can be decided by the
// tag alone: transport errors are retried, timeouts and invalid responses
// are fatal immediately.
type errorKind int

const (
	errKindTransport errorKind = iota
	errKindTimeout
)

// classifyError maps a raw provider error onto an errorKind.
func classifyError(err error) errorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return errKindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errKindTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusRequestTimeout {
		return errKindTimeout
	}

	// Everything else - connection failures, provider 429/5xx responses,
	// unknown transport conditions - is treated as a retryable transport
	// failure.
	return errKindTransport
}

// executeWithRetry runs one LLM call with sequential retries and
// exponential backoff. The attempt budget is maxRetries+1 total attempts.
// A timeout is surfaced immediately without retry, advising the caller to
// raise the timeout configuration; repeated timeouts rarely resolve on
// retry and would waste the budget. A scoring error from a prior stage
// propagates unchanged. Exhausting the budget yields a fatal transport
// scoring error carrying the last underlying cause.
func executeWithRetry(ctx context.Context, logger *jobfitErrors.Logger, operation string, maxRetries int, fn func() (*genai.GenerateContentResponse, error)) (*genai.GenerateContentResponse, error) {
	var lastErr error
	delay := retryBaseDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if logger != nil {
				logger.Warn("Retrying LLM operation",
					"operation", operation,
					"attempt", attempt,
					"max_retries", maxRetries,
					"backoff", delay.String(),
					"error", lastErr.Error())
			}

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringTimeout,
					"LLM evaluation canceled while waiting to retry; consider raising ai.timeout", ctx.Err())
			}

			delay = min(delay*2, retryMaxDelay)
		}

		result, err := fn()
		if err == nil {
			if attempt > 0 && logger != nil {
				logger.Info("LLM operation succeeded after retry",
					"operation", operation,
					"successful_attempt", attempt+1)
			}
			return result, nil
		}

		// Errors already classified as scoring errors by a prior stage
		// propagate unchanged rather than being re-wrapped.
		var appErr *jobfitErrors.AppError
		if errors.As(err, &appErr) && appErr.Type == jobfitErrors.ErrorTypeScoring {
			return nil, err
		}

		if classifyError(err) == errKindTimeout {
			return nil, jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringTimeout,
				"LLM request timed out; consider raising ai.timeout", err).
				WithContext("operation", operation)
		}

		lastErr = err
	}

	if logger != nil {
		logger.LogError(lastErr, "LLM operation failed after all retry attempts",
			"operation", operation,
			"total_attempts", maxRetries+1)
	}

	return nil, jobfitErrors.NewScoringError(jobfitErrors.ErrCodeScoringTransport,
		fmt.Sprintf("operation %q failed after %d attempts", operation, maxRetries+1), lastErr)
}
