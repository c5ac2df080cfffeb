package searcher

import (
	"pokey/experiments/metrics"
	"pokey/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type PolicyEntry struct {
	Action      game.Action
	Label       string
	Probability float64 // Share of root visits
}

// Policy lists the expanded root actions in legal order. Actions that were
// never expanded are left out and have probability 0.
type Policy struct {
	Entries []PolicyEntry
	Visits  int
}

// Probability returns the share of root visits spent on action.
func (p Policy) Probability(action game.Action) float64 {
	entry, ok := lo.Find(p.Entries, func(e PolicyEntry) bool {
		return e.Action == action
	})
	if !ok {
		return 0
	}
	return entry.Probability
}

// SearchPolicy grows a single tree from state, checking the limits after
// every simulation, and returns the visit distribution over root actions.
func (m *MCTS) SearchPolicy(state game.State) (Policy, metrics.SearchMetric) {
	m.metrics.Start(1, 1)
	lim := newLimits(m.iterations, m.duration, 1)
	baseline := m.evaluate(state)
	depths := &depthTracker{}
	local := state.Clone()
	t := newTree(local, m.rng(0), depths)

	reason := lim.check(0)
	for reason == StopNone {
		t.simulate(local.Clone(), baseline, m.evaluate)
		m.metrics.AddEpisode()
		reason = lim.check(t.root.Visits())
	}

	own, _ := state.Options()
	policy := extractPolicy(t.root, own)
	metric := m.metrics.Complete(policy.Visits, depths.Max(), reason.String())

	log.Debug().
		Int("actions", len(policy.Entries)).
		Int("visits", policy.Visits).
		Int("max_depth", metric.MaxDepth).
		Stringer("stop", reason).
		Msg("policy search completed")
	return policy, metric
}

func extractPolicy(root *Node, own []game.Action) Policy {
	visits := root.Visits()
	policy := Policy{Visits: visits}
	if visits == 0 {
		return policy
	}
	for _, action := range lo.Uniq(own) {
		child := root.Child(action)
		if child == nil {
			continue
		}
		policy.Entries = append(policy.Entries, PolicyEntry{
			Action:      action,
			Label:       action.String(),
			Probability: float64(child.Visits()) / float64(visits),
		})
	}
	return policy
}
