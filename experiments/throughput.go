package experiments

import (
	"pokey/experiments/metrics"
	"pokey/game"
	"time"

	"github.com/rs/zerolog/log"
)

// Throughput is the search speed reached with a number of workers.
type Throughput struct {
	Workers         int
	Visits          int
	Duration        time.Duration
	VisitsPerSecond float64
}

// RunThroughputExperiment searches state once per worker count under the
// same time budget and reports the simulation rate of each.
func RunThroughputExperiment(state game.State, budget time.Duration, workers ...int) []Throughput {
	log.Info().Msg("starting throughput experiment...")

	results := make([]Throughput, 0, len(workers))
	for _, w := range workers {
		mcts := CreateMCTS(metrics.AgentConfig{Workers: w, Duration: budget}, 0)
		decision, metric := mcts.Search(state)

		result := Throughput{Workers: w, Visits: decision.Visits, Duration: metric.Duration}
		if metric.Duration > 0 {
			result.VisitsPerSecond = float64(decision.Visits) / metric.Duration.Seconds()
		}
		results = append(results, result)

		log.Info().Msgf("workers=%d visits=%d rate=%.0f/s", w, result.Visits, result.VisitsPerSecond)
	}

	log.Info().Msg("completed throughput experiment")
	return results
}
