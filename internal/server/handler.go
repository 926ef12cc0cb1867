package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"jobfit/internal/ai"
	"jobfit/internal/config"
	"jobfit/internal/observability"
	"jobfit/internal/scoring"
	"jobfit/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// createEvaluateHandler wraps the evaluate handler with observability
func (s *Server) createEvaluateHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("jobfit.api")
		ctx, span := tracer.Start(ctx, "api.evaluate")
		defer span.End()

		// Parse request
		var req EvaluateRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		// Validation
		if req.Job.Title == "" && req.Job.Company == "" && len(req.Job.RequiredSkills) == 0 {
			err := fmt.Errorf("missing job description")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job field is required", http.StatusBadRequest)
			return
		}
		if len(req.Profile.Skills) == 0 && req.Profile.Name == "" {
			err := fmt.Errorf("missing candidate profile")
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing candidate profile", "profile field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.String("job.company", req.Job.Company),
			attribute.String("job.title", req.Job.Title),
			attribute.Int("request.required_skills", len(req.Job.RequiredSkills)),
			attribute.Int("request.profile_skills", len(req.Profile.Skills)),
			attribute.String("operation", "evaluate"),
			attribute.String("scoring.mode", s.AppConfig.Scoring.Mode),
		)

		scoringService, aiService, err := s.buildScoringService()
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create scoring service", err.Error(), http.StatusInternalServerError)
			return
		}

		// Track the scoring operation with observability
		metrics := om.GetMetrics()
		var result *types.FitResult
		err = metrics.TrackScoringOperation(ctx, "evaluate", func(ctx context.Context) *observability.ScoringOperationResult {
			fitResult, evalErr := scoringService.Evaluate(ctx, &req.Job, &req.Profile)
			result = fitResult
			opResult := &observability.ScoringOperationResult{Error: evalErr}
			if aiService != nil {
				opResult.TokenUsage = (*observability.TokenUsage)(aiService.LastTokenUsage())
			}
			return opResult
		})

		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "scoring"))
			metrics.RecordFitEvaluation(ctx, s.AppConfig.Scoring.Mode, "", false)
			writeErrorResponse(w, "Failed to evaluate fit", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics.RecordFitEvaluation(ctx, s.AppConfig.Scoring.Mode, string(result.Recommendation), true)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("response.total_score", result.FitScore.TotalScore),
			attribute.String("response.recommendation", string(result.Recommendation)),
			attribute.Bool("response.constraints_passed", result.Constraints.Passed),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// buildScoringService assembles a scoring service for the configured mode.
// LLM mode additionally wires the provider-backed evaluator, returned
// alongside so callers can read token usage; nil in deterministic mode.
func (s *Server) buildScoringService() (*scoring.Service, *ai.Service, error) {
	var aiService *ai.Service
	var evaluator scoring.FitEvaluator
	if s.AppConfig.Scoring.Mode == config.ScoringModeLLM {
		fitConfig := s.AppConfig.GetFitConfig()
		svc, err := ai.NewService(&fitConfig, s.Logger)
		if err != nil {
			return nil, nil, err
		}
		aiService = svc
		evaluator = svc
	}

	scoringService, err := scoring.NewService(&s.AppConfig.Scoring, evaluator, s.Logger)
	if err != nil {
		return nil, nil, err
	}
	return scoringService, aiService, nil
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordRateLimitHit(r.Context(),
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
