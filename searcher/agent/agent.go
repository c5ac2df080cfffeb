package agent

import (
	"pokey/experiments/metrics"
	"pokey/game"
)

// Move is an agent's choice for one turn.
type Move struct {
	Action     game.Action
	Confidence float64 // Estimated reward or policy probability of Action
}

type Agent interface {
	// FindMove returns the chosen move and performance metrics (if collected) from the search process
	FindMove(state game.State) (Move, metrics.SearchMetric)
}

// fallback is played when a search yields nothing, e.g. on a decided state.
func fallback(state game.State) game.Action {
	own, _ := state.Options()
	if len(own) == 0 {
		return game.Pass
	}
	return own[0]
}
