package searcher

import (
	"pokey/game"
	"sync/atomic"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"
)

// tree is the search tree of one worker together with its random source.
type tree struct {
	root   *Node
	rng    *rand.Rand
	depths *depthTracker // Shared by every tree of a search
}

func newTree(state game.State, rng *rand.Rand, depths *depthTracker) *tree {
	return &tree{
		root:   newNode(nil, game.Action{}, state),
		rng:    rng,
		depths: depths,
	}
}

// simulate runs one walk over state, which it mutates, and backs up its score.
func (t *tree) simulate(state game.State, baseline float64, evaluate game.Evaluate) {
	leaf, path := t.selectThenExpand(state)
	backup(leaf, score(state, baseline, evaluate), path)
}

// selectThenExpand descends from the root until it expands a new child or
// reaches a leaf, resolving both sides' actions on state along the way.
func (t *tree) selectThenExpand(state game.State) (*Node, []PathEntry) {
	node := t.root
	path := make([]PathEntry, 0, 8)
	for {
		t.depths.observe(node.depth)

		// Decided positions are leaves, the root included
		if state.Terminal() != 0 {
			return node, path
		}
		own, opp := state.Options()
		if len(own) == 0 && len(opp) == 0 && node.parent != nil {
			return node, path
		}
		validOwn := validOwnActions(own)
		validOpp := validOpponentActions(own, opp)

		if action, ok := node.untried(validOwn); ok {
			entry := t.resolve(node, action, validOpp, state)
			child := node.addChild(action, entry.fingerprint(), state)
			return child, append(path, entry)
		}

		action, child, ok := node.selectChild(validOwn)
		if !ok {
			return node, path
		}
		entry := t.resolve(node, action, validOpp, state)
		child.setPlayed(entry.fingerprint())
		path = append(path, entry)
		node = child
	}
}

// resolve picks the opponent's action at node, then applies one sampled
// outcome of the action pair to state.
func (t *tree) resolve(node *Node, own game.Action, validOpp []game.Action, state game.State) PathEntry {
	opp := t.opponentAction(node, validOpp, state)
	entry := PathEntry{Opponent: opp, Active: state.Active(game.SideTwo)}
	state.Apply(SampleOutcome(state.Outcomes(own, opp, true), t.rng))
	return entry
}

func (t *tree) opponentAction(node *Node, valid []game.Action, state game.State) game.Action {
	if len(valid) == 0 {
		return game.Pass
	}
	// A switch-only choice needs no modelling
	if lo.EveryBy(valid, game.Action.IsSwitch) {
		return valid[0]
	}
	return node.SelectOpponent(valid, state, t.rng)
}

// validOwnActions keeps a pass when one is legal, otherwise every real action.
func validOwnActions(own []game.Action) []game.Action {
	if lo.ContainsBy(own, game.Action.IsNone) {
		return []game.Action{game.Pass}
	}
	return lo.Reject(own, func(action game.Action, _ int) bool {
		return action.IsNone()
	})
}

// validOpponentActions narrows the opponent's legal actions. A forced switch
// comes before passing, and the opponent passes while the own side can only
// switch.
func validOpponentActions(own, opp []game.Action) []game.Action {
	if lo.ContainsBy(opp, game.Action.IsNone) {
		switches := lo.Filter(opp, func(action game.Action, _ int) bool {
			return action.IsSwitch()
		})
		if len(switches) > 0 {
			return switches
		}
		return []game.Action{game.Pass}
	}
	if lo.EveryBy(own, game.Action.IsSwitch) {
		return []game.Action{game.Pass}
	}
	return lo.Reject(opp, func(action game.Action, _ int) bool {
		return action.IsNone()
	})
}

// depthTracker keeps the deepest node depth seen by any walk.
type depthTracker struct {
	max atomic.Int64
}

func (d *depthTracker) observe(depth int) {
	for {
		current := d.max.Load()
		if int64(depth) <= current || d.max.CompareAndSwap(current, int64(depth)) {
			return
		}
	}
}

func (d *depthTracker) Max() int {
	return int(d.max.Load())
}
