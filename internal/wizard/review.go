package wizard

import (
	"math"
	"strings"
)

// GenerationThreshold is the minimum review completeness percentage required
// before a generation attempt is started.
const GenerationThreshold = 80

// Completeness scores the review screen: six sub-checks, each worth an equal
// share, rounded to a whole percentage.
func Completeness(s State) int {
	checks := []bool{
		len(s.SelectedClients) > 0,
		s.LegalArea != "" && s.HasPieceType(),
		strings.TrimSpace(s.Facts) != "",
		strings.TrimSpace(s.ProcessNumber) != "" ||
			strings.TrimSpace(s.CourtDivision) != "" ||
			strings.TrimSpace(s.Jurisdiction) != "",
		len(s.Theses) > 0 || len(s.Jurisprudences) > 0,
		len(s.AdverseParties) > 0,
	}

	done := 0
	for _, ok := range checks {
		if ok {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(checks)) * 100))
}

// ReadyToGenerate gates the generation entry point on review completeness.
// Step gating itself stays predicate-based; this threshold only guards the
// final generate action.
func ReadyToGenerate(s State) bool {
	return Completeness(s) >= GenerationThreshold
}
