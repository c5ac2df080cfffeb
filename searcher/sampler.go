package searcher

import (
	"math"
	"pokey/game"

	"golang.org/x/exp/rand"
)

// SampleOutcome draws one outcome in proportion to its weight. Degenerate
// weights fall back to the first outcome and an empty list yields the zero
// Outcome, so sampling never fails.
func SampleOutcome(outcomes []game.Outcome, rng *rand.Rand) game.Outcome {
	switch len(outcomes) {
	case 0:
		return game.Outcome{}
	case 1:
		return outcomes[0]
	}

	total := 0.0
	for _, o := range outcomes {
		if o.Weight < 0 || math.IsNaN(o.Weight) || math.IsInf(o.Weight, 0) {
			return outcomes[0]
		}
		total += o.Weight
	}
	if total <= 0 {
		return outcomes[0]
	}

	sampled := rng.Float64() * total
	cumulative := 0.0
	for _, o := range outcomes {
		cumulative += o.Weight
		if sampled < cumulative {
			return o
		}
	}
	return outcomes[len(outcomes)-1] // Rounding errors
}
