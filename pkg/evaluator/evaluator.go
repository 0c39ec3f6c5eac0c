// Package evaluator compares a placement against the correct ordering.
package evaluator

import "github.com/aretw0/strata/pkg/domain"

// Verdict is the outcome of a check.
type Verdict string

const (
	Incomplete Verdict = "incomplete"
	Duplicate  Verdict = "duplicate"
	Correct    Verdict = "correct"
	Incorrect  Verdict = "incorrect"
)

// Result carries the verdict and the status message shown to the player.
type Result struct {
	Verdict Verdict `json:"verdict"`
	Message string  `json:"message"`
}

// Messages shown for each verdict.
const (
	MessageIncomplete = "Place all pieces before checking."
	MessageDuplicate  = "Each slot must contain a unique piece."
	MessageCorrect    = "Correct! Well done."
	MessageIncorrect  = "Not quite. Try rearranging and check again."
)

// Check evaluates p against solution. Only an exact match is correct.
func Check(p domain.Placement, solution []domain.PieceID) Result {
	if len(p.Placed()) < len(solution) || !p.AllSlotsFilled() {
		return Result{Verdict: Incomplete, Message: MessageIncomplete}
	}
	// Unreachable through the controller, which never duplicates a piece.
	if !p.IsValidAssignment() {
		return Result{Verdict: Duplicate, Message: MessageDuplicate}
	}
	if len(p) != len(solution) {
		return Result{Verdict: Incorrect, Message: MessageIncorrect}
	}
	for i, id := range solution {
		if p[i] != id {
			return Result{Verdict: Incorrect, Message: MessageIncorrect}
		}
	}
	return Result{Verdict: Correct, Message: MessageCorrect}
}
