package agent

import (
	"math"
	"pokey/experiments/metrics"
	"pokey/game"
	"pokey/searcher"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play. It samples its moves
// from the search policy sharpened by temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1
	}
	if seed == 0 {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(state game.State) (Move, metrics.SearchMetric) {
	policy, metric := a.mcts.SearchPolicy(state)
	if len(policy.Entries) == 0 {
		return Move{Action: fallback(state)}, metric
	}
	entries := adjustTemperature(policy.Entries, a.temperature)
	entry := sample(entries, a.rng)
	return Move{Action: entry.Action, Confidence: entry.Probability}, metric
}

func adjustTemperature(entries []searcher.PolicyEntry, temperature float64) []searcher.PolicyEntry {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]searcher.PolicyEntry, len(entries))
	for i, entry := range entries {
		entry.Probability = math.Pow(entry.Probability, exponent)
		sum += entry.Probability
		adjusted[i] = entry
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i].Probability /= sum
	}
	return adjusted
}

func sample(entries []searcher.PolicyEntry, rng *rand.Rand) searcher.PolicyEntry {
	sampled := rng.Float64()
	cumulative := 0.0
	for _, entry := range entries {
		cumulative += entry.Probability
		if sampled < cumulative {
			return entry
		}
	}
	return entries[len(entries)-1] // Fallback in case of rounding errors
}
