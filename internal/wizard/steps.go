package wizard

import "strings"

// The wizard is a fixed linear chain of steps. Indices are part of the API
// surface: review screens and the gateway address steps by these values.
const (
	StepClients = iota
	StepAreaPiece
	StepFacts
	StepProcess
	StepTheses
	StepReview
	StepGenerate

	StepCount
)

// StepComplete evaluates the fixed completion predicate for a step.
// Review and Generate are terminal and gating-exempt: always complete.
func StepComplete(s State, step int) bool {
	switch step {
	case StepClients:
		return len(s.SelectedClients) > 0
	case StepAreaPiece:
		return s.LegalArea != "" && s.HasPieceType()
	case StepFacts:
		return strings.TrimSpace(s.Facts) != ""
	case StepProcess:
		// Processual data is optional-but-any: one filled field suffices.
		return strings.TrimSpace(s.ProcessNumber) != "" ||
			strings.TrimSpace(s.CourtDivision) != "" ||
			strings.TrimSpace(s.Jurisdiction) != ""
	case StepTheses:
		return len(s.Theses) > 0 || len(s.Jurisprudences) > 0
	case StepReview, StepGenerate:
		return true
	default:
		return false
	}
}

// StepAccessible reports whether the user may sit on a step: the first step
// always, any later step only once every predecessor is complete. The chain
// is strictly linear; a later step being independently satisfiable does not
// unlock it.
func StepAccessible(s State, step int) bool {
	if step < 0 || step >= StepCount {
		return false
	}
	for i := 0; i < step; i++ {
		if !StepComplete(s, i) {
			return false
		}
	}
	return true
}

// Next advances to the following step when the current one is complete.
// Rejected transitions are silent no-ops: the unchanged state is returned,
// matching the disabled-control UX, so repeated invalid calls are idempotent.
func Next(s State) State {
	if s.CurrentStep >= StepCount-1 {
		return s
	}
	if !StepComplete(s, s.CurrentStep) {
		return s
	}
	s.CurrentStep++
	return s
}

// Prev moves back one step, floored at the first. Always permitted.
func Prev(s State) State {
	if s.CurrentStep > 0 {
		s.CurrentStep--
	}
	return s
}

// JumpTo moves directly to a target step if it is accessible; otherwise a
// silent no-op.
func JumpTo(s State, target int) State {
	if !StepAccessible(s, target) {
		return s
	}
	s.CurrentStep = target
	return s
}
