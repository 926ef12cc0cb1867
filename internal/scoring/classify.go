package scoring

import (
	"jobfit/internal/types"
)

// Classify maps a total score and constraint outcome into a recommendation.
// The ordering is significant: constraint failure is checked first and is
// unconditional, then threshold, then the review grey zone just below it.
func Classify(totalScore float64, constraintsPassed bool, threshold, margin float64) types.Recommendation {
	if !constraintsPassed {
		return types.RecommendationSkip
	}
	if totalScore >= threshold {
		return types.RecommendationApply
	}
	if totalScore >= threshold-margin {
		return types.RecommendationReview
	}
	return types.RecommendationSkip
}
