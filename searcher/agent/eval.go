package agent

import (
	"pokey/experiments/metrics"
	"pokey/game"
	"pokey/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State) (Move, metrics.SearchMetric) {
	decision, metric := a.mcts.Search(state)
	if !decision.Found {
		return Move{Action: fallback(state)}, metric
	}
	return Move{Action: decision.Action, Confidence: decision.Confidence}, metric
}
