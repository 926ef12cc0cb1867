package scoring

import (
	"strings"
)

// Similarity computes a normalized textual similarity between two skill
// strings in [0,1]. It is symmetric, case-insensitive and whitespace
// normalized: 1.0 for an exact (case-insensitive) match, 0.0 for fully
// disjoint strings, and a Levenshtein ratio in between. Pure and
// deterministic, so results are reproducible across calls.
func Similarity(a, b string) float64 {
	na := normalizeSkill(a)
	nb := normalizeSkill(b)

	if na == nb {
		if na == "" {
			return 0.0
		}
		return 1.0
	}
	if na == "" || nb == "" {
		return 0.0
	}

	dist := levenshtein(na, nb)
	longest := max(len([]rune(na)), len([]rune(nb)))
	return 1.0 - float64(dist)/float64(longest)
}

// normalizeSkill lowercases and collapses internal whitespace.
func normalizeSkill(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// levenshtein computes the edit distance between two strings using the
// two-row dynamic programming formulation.
func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)

	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
