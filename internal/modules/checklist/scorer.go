package checklist

import "github.com/tradecraft/journal/internal/utils"

// ScoreEntry computes the completeness score for a readiness capture.
// All eight flags carry equal weight; the result is in [0,100] rounded to
// one decimal. Total function: no inputs are rejected.
func ScoreEntry(e Entry) float64 {
	count := 0
	for _, set := range e.flags() {
		if set {
			count++
		}
	}
	return utils.Round1(100 * float64(count) / flagCount)
}
