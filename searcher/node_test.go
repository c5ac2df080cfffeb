package searcher

import (
	"math"
	"pokey/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestUCB1(t *testing.T) {
	t.Run("unvisited node scores infinity", func(t *testing.T) {
		node := newNode(nil, game.Action{}, game.NewStandardDuel())

		for _, parentVisits := range []int{0, 1, 10, 1000} {
			require.True(t, math.IsInf(node.UCB1(parentVisits), 1), "Unvisited node should always be selected first")
		}
	})

	t.Run("computing UCB1 value", func(t *testing.T) {
		got := ucb1(5.0, 10, 100)

		expected := 5.0/10 + math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001, "Should compute q/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		require.Greater(t, ucb1(5.0, 10, 100), ucb1(5.0, 20, 100), "More child visits should decrease exploration term")
	})
}

func TestSelectChild(t *testing.T) {
	flare, inferno := game.UseTechnique("flare"), game.UseTechnique("inferno")

	t.Run("selecting max UCB1 child", func(t *testing.T) {
		node := &Node{visits: 2, children: map[game.Action]*Node{
			flare:   {visits: 1, value: 0},
			inferno: {visits: 1, value: 1},
		}}

		action, child, ok := node.selectChild([]game.Action{flare, inferno})

		require.True(t, ok)
		require.Equal(t, inferno, action, "Node should select child with max UCB1 value")
		require.Same(t, node.children[inferno], child)
	})

	t.Run("breaking ties by valid order", func(t *testing.T) {
		node := &Node{visits: 2, children: map[game.Action]*Node{
			flare:   {visits: 1, value: 0.5},
			inferno: {visits: 1, value: 0.5},
		}}

		action, _, _ := node.selectChild([]game.Action{inferno, flare})
		require.Equal(t, inferno, action, "Ties should go to the earliest valid action")
	})

	t.Run("ignoring children of invalid actions", func(t *testing.T) {
		node := &Node{visits: 1, children: map[game.Action]*Node{
			flare: {visits: 1, value: 1},
		}}

		_, _, ok := node.selectChild([]game.Action{game.Pass})
		require.False(t, ok, "No child should qualify")
	})
}

func TestExpansion(t *testing.T) {
	d := game.NewStandardDuel()
	node := newNode(nil, game.Action{}, d)
	flare, inferno := game.UseTechnique("flare"), game.UseTechnique("inferno")

	action, ok := node.untried([]game.Action{flare, inferno})
	require.True(t, ok)
	require.Equal(t, flare, action, "Should expand the first untried action")

	played := fingerprint(game.UseTechnique("tackle"), "boulder")
	child := node.addChild(flare, played, d)
	require.Equal(t, 1, child.Depth())
	require.Same(t, node, child.Parent())
	require.Equal(t, played, child.Played())
	require.Same(t, child, node.addChild(flare, played, d), "Expanding twice should keep the first child")

	action, ok = node.untried([]game.Action{flare, inferno})
	require.True(t, ok)
	require.Equal(t, inferno, action)

	node.addChild(inferno, played, d)
	_, ok = node.untried([]game.Action{flare, inferno})
	require.False(t, ok, "Fully expanded node has no untried action")
}

func TestSelectOpponent(t *testing.T) {
	d := game.NewStandardDuel()
	actions := []game.Action{
		game.UseTechnique("tackle"),
		game.UseTechnique("quake"),
		game.SwitchTo("volt"),
	}

	t.Run("trying every action once", func(t *testing.T) {
		node := newNode(nil, game.Action{}, d)
		rng := rand.New(rand.NewSource(3))

		seen := map[game.Action]bool{}
		for range actions {
			action := node.SelectOpponent(actions, d, rng)
			require.False(t, seen[action], "Each call should return an action not returned before")
			seen[action] = true

			_, ok := node.OpponentStats(fingerprint(action, "boulder"))
			require.True(t, ok, "Selected action should be registered")
		}
		require.Len(t, seen, len(actions))
	})

	t.Run("preferring actions bad for the own side", func(t *testing.T) {
		node := newNode(nil, game.Action{}, d)
		node.opponent[fingerprint(actions[0], "boulder")] = &OpponentStats{Visits: 10, Value: 9}
		node.opponent[fingerprint(actions[1], "boulder")] = &OpponentStats{Visits: 10, Value: 1}
		node.opponent[fingerprint(actions[2], "boulder")] = &OpponentStats{Visits: 10, Value: 5}

		got := node.SelectOpponent(actions, d, rand.New(rand.NewSource(1)))

		require.Equal(t, actions[1], got, "Opponent should pick the action with the lowest own-side value")
		stats, _ := node.OpponentStats(fingerprint(actions[1], "boulder"))
		expected := 1 - 0.1 + math.Sqrt(2.0*math.Log(30)/10)
		require.InDelta(t, expected, stats.LastScore, 0.0001, "Should keep the latest score")
	})

	t.Run("telling apart the same action of another combatant", func(t *testing.T) {
		node := newNode(nil, game.Action{}, d)
		node.opponent[fingerprint(actions[0], "thorn")] = &OpponentStats{Visits: 10, Value: 1}

		got := node.SelectOpponent(actions[:1], d, rand.New(rand.NewSource(1)))

		require.Equal(t, actions[0], got)
		_, ok := node.OpponentStats(fingerprint(actions[0], "boulder"))
		require.True(t, ok, "Action of the fielded combatant should be registered separately")
	})

	t.Run("passing without legal actions", func(t *testing.T) {
		node := newNode(nil, game.Action{}, d)

		require.Equal(t, game.Pass, node.SelectOpponent(nil, d, rand.New(rand.NewSource(1))))
	})
}

func TestBackup(t *testing.T) {
	d := game.NewStandardDuel()
	tackle := PathEntry{Opponent: game.UseTechnique("tackle"), Active: "boulder"}
	quake := PathEntry{Opponent: game.UseTechnique("quake"), Active: "boulder"}

	setup := func() (*Node, *Node, *Node) {
		root := newNode(nil, game.Action{}, d)
		child := root.addChild(game.UseTechnique("flare"), tackle.fingerprint(), d)
		leaf := child.addChild(game.UseTechnique("inferno"), quake.fingerprint(), d)
		return root, child, leaf
	}

	t.Run("recording on every ancestor", func(t *testing.T) {
		root, child, leaf := setup()

		backup(leaf, 0.75, []PathEntry{tackle, quake})

		for _, node := range []*Node{root, child, leaf} {
			visits, value := node.Stats()
			require.Equal(t, 1, visits)
			require.Equal(t, 0.75, value)
		}
		require.Equal(t, 0.75, leaf.lastScore, "Leaf should keep the simulation score")

		stats, ok := root.OpponentStats(tackle.fingerprint())
		require.True(t, ok)
		require.Equal(t, OpponentStats{Visits: 1, Value: 0.75}, stats, "Root should record the opponent's first action")
		stats, ok = child.OpponentStats(quake.fingerprint())
		require.True(t, ok)
		require.Equal(t, OpponentStats{Visits: 1, Value: 0.75}, stats, "Child should record the opponent's second action")
		_, ok = leaf.OpponentStats(quake.fingerprint())
		require.False(t, ok, "Leaf has no opponent action yet")
	})

	t.Run("stopping when the path runs out", func(t *testing.T) {
		root, child, leaf := setup()

		backup(leaf, 1, []PathEntry{quake})

		require.Equal(t, 1, leaf.Visits())
		require.Equal(t, 1, child.Visits())
		require.Equal(t, 0, root.Visits(), "Root should not be reached with a short path")
	})

	t.Run("stopping at the root", func(t *testing.T) {
		root, child, _ := setup()

		backup(child, 1, []PathEntry{tackle, quake, tackle})

		require.Equal(t, 1, child.Visits())
		require.Equal(t, 1, root.Visits())
		stats, _ := root.OpponentStats(tackle.fingerprint())
		require.Equal(t, 1, stats.Visits, "Only the matching entry should be recorded")
	})
}
