package searcher

import (
	"math"
	"pokey/game"
)

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// score maps a simulated position to a reward in [Loss, Win]. Decided
// positions score Win or Loss by the sign of the result, the others by how
// far the evaluation moved away from the root's baseline.
func score(state game.State, baseline float64, evaluate game.Evaluate) float64 {
	if result := state.Terminal(); result > 0 {
		return Win
	} else if result < 0 {
		return Loss
	}
	return sigmoid(SigmoidScale * (evaluate(state) - baseline))
}
