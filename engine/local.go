package engine

import (
	"pokey/experiments/metrics"
	"pokey/game"
	"pokey/gamemaster"
	"pokey/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Local plays a duel between two in-process agents. Side two's agent sees
// the duel mirrored so that every agent plays side one.
type Local struct {
	referee  *gamemaster.Referee
	agents   [2]agent.Agent
	maxTurns int
}

func LocalEngine(agents [2]agent.Agent, duel *game.Duel, seed uint64, maxTurns int) *Local {
	if agents[0] == nil || agents[1] == nil {
		panic("need an agent for each side")
	}
	if maxTurns <= 0 {
		maxTurns = MaxTurns
	}
	return &Local{
		referee:  gamemaster.NewReferee(duel, seed),
		agents:   agents,
		maxTurns: maxTurns,
	}
}

func (e *Local) Referee() *gamemaster.Referee {
	return e.referee
}

// Run executes the game loop until a winner is found or the turn cap is hit.
func (e *Local) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	for turn := 1; turn <= e.maxTurns && !e.referee.GameOver(); turn++ {
		state := e.referee.State()
		views := [2]*game.Duel{state, state.Mirror()}

		var actions [2]game.Action
		for side, a := range e.agents {
			move, searchMetric := a.FindMove(views[side])
			actions[side] = legalize(views[side], move.Action)
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         turn,
				Side:         game.Side(side).String(),
				Action:       actions[side].String(),
				Confidence:   move.Confidence,
				SearchMetric: searchMetric,
			})
		}

		update, err := e.referee.Play(actions[game.SideOne], actions[game.SideTwo])
		if err != nil {
			log.Error().Err(err).Int("turn", turn).Msg("failed to resolve turn")
			break
		}
		log.Debug().
			Int("turn", update.Turn).
			Stringer("one", update.One).
			Stringer("two", update.Two).
			Uint64("hash", update.Hash).
			Msg("turn resolved")
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Winner = e.referee.Winner()
	gameMetric.TotalTurns = len(e.referee.Updates())
	return gameMetric.Winner, gameMetric, moveMetrics
}

// legalize replaces an action the agent cannot play with its first legal one.
func legalize(view *game.Duel, action game.Action) game.Action {
	own, _ := view.Options()
	if len(own) == 0 || lo.Contains(own, action) {
		return action
	}
	log.Warn().Stringer("action", action).Msg("agent returned an illegal action, falling back")
	return own[0]
}
