package searcher

import (
	"math"
	"pokey/game"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// OpponentStats tracks how an opponent action fared at a node. Value holds
// own-side rewards, so the opponent prefers low values.
type OpponentStats struct {
	Visits    int
	Value     float64
	LastScore float64 // Latest selection score, diagnostic only
}

func opponentUCB(stats *OpponentStats, total int) float64 {
	if stats.Visits == 0 {
		return math.Inf(1)
	}

	n := float64(stats.Visits)
	return 1 - stats.Value/n + math.Sqrt(CSquared*math.Log(float64(total))/n)
}

// SelectOpponent guesses the opponent's action at the node. Every action is
// tried once, in random order, before the statistics are compared.
func (n *Node) SelectOpponent(actions []game.Action, state game.State, rng *rand.Rand) game.Action {
	if len(actions) == 0 {
		return game.Pass
	}
	entity := state.Active(game.SideTwo)

	n.Lock()
	defer n.Unlock()

	unseen := lo.Filter(actions, func(action game.Action, _ int) bool {
		_, ok := n.opponent[fingerprint(action, entity)]
		return !ok
	})
	if len(unseen) > 0 {
		action := unseen[rng.Intn(len(unseen))]
		n.opponent[fingerprint(action, entity)] = &OpponentStats{}
		return action
	}

	total := lo.SumBy(lo.Values(n.opponent), func(stats *OpponentStats) int {
		return stats.Visits
	})
	best := actions[0]
	bestScore := math.Inf(-1)
	for _, action := range actions {
		stats := n.opponent[fingerprint(action, entity)]
		score := opponentUCB(stats, total)
		stats.LastScore = score
		if score > bestScore {
			best = action
			bestScore = score
		}
	}
	return best
}

// OpponentStats returns a copy of the statistics recorded for a fingerprint.
func (n *Node) OpponentStats(key Fingerprint) (OpponentStats, bool) {
	n.Lock()
	defer n.Unlock()

	stats, ok := n.opponent[key]
	if !ok {
		return OpponentStats{}, false
	}
	return *stats, true
}
