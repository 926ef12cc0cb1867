package scoring

import (
	"testing"

	"jobfit/internal/types"
)

func TestClassify(t *testing.T) {
	const threshold, margin = 0.75, 0.05

	tests := []struct {
		name   string
		score  float64
		passed bool
		want   types.Recommendation
	}{
		{"above threshold", 0.80, true, types.RecommendationApply},
		{"at threshold", 0.75, true, types.RecommendationApply},
		{"grey zone", 0.72, true, types.RecommendationReview},
		{"at margin boundary", 0.70, true, types.RecommendationReview},
		{"below margin", 0.60, true, types.RecommendationSkip},
		{"perfect score but constraints failed", 1.0, false, types.RecommendationSkip},
		{"grey zone but constraints failed", 0.72, false, types.RecommendationSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.score, tt.passed, threshold, margin)
			if got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.score, tt.passed, got, tt.want)
			}
		})
	}
}

func TestClassifyZeroMargin(t *testing.T) {
	// With no margin the review zone collapses away.
	if got := Classify(0.74, true, 0.75, 0.0); got != types.RecommendationSkip {
		t.Errorf("Classify just below threshold with zero margin = %v, want skip", got)
	}
}
