package engine

import "pokey/experiments/metrics"

const MaxTurns = 500

type Engine interface {
	// Run plays a game till there's a winner or a max number of turns is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
