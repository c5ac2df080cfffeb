package agent

import (
	"pokey/game"
	"pokey/searcher"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEvaluationAgent(t *testing.T) {
	t.Run("playing the search decision", func(t *testing.T) {
		d := game.NewStandardDuel()
		d.Teams[game.SideTwo].Members[0].HP = 1
		d.Teams[game.SideTwo].Members[1].HP = 0
		d.Teams[game.SideTwo].Members[2].HP = 0
		a := NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithIterations(200), searcher.WithSeed(1)))

		move, _ := a.FindMove(d)

		require.Equal(t, game.UseTechnique("flare"), move.Action)
		require.Equal(t, 1.0, move.Confidence)
	})

	t.Run("falling back without a decision", func(t *testing.T) {
		d := game.NewStandardDuel()
		for i := range d.Teams[game.SideTwo].Members {
			d.Teams[game.SideTwo].Members[i].HP = 0
		}
		a := NewEvaluationAgent(searcher.NewMCTS(1, searcher.WithIterations(1)))

		move, _ := a.FindMove(d)

		require.Equal(t, game.Pass, move.Action, "Decided state has nothing to play")
	})
}

func TestTrainingAgent(t *testing.T) {
	t.Run("sampling a legal move", func(t *testing.T) {
		d := game.NewStandardDuel()
		a := NewTrainingAgent(searcher.NewMCTS(1, searcher.WithIterations(50), searcher.WithSeed(1)), 1, 9)

		move, metric := a.FindMove(d)

		own, _ := d.Options()
		require.Contains(t, own, move.Action)
		require.Greater(t, move.Confidence, 0.0)
		require.Equal(t, 50, metric.Visits)
	})
}

func TestAdjustTemperature(t *testing.T) {
	entries := []searcher.PolicyEntry{
		{Label: "a", Probability: 0.25},
		{Label: "b", Probability: 0.75},
	}

	t.Run("unit temperature keeps the policy", func(t *testing.T) {
		got := adjustTemperature(entries, 1)
		require.InDelta(t, 0.25, got[0].Probability, 1e-9)
		require.InDelta(t, 0.75, got[1].Probability, 1e-9)
	})

	t.Run("low temperature sharpens the policy", func(t *testing.T) {
		got := adjustTemperature(entries, 0.5)
		require.InDelta(t, 0.1, got[0].Probability, 1e-9)
		require.InDelta(t, 0.9, got[1].Probability, 1e-9)
		require.Equal(t, 0.25, entries[0].Probability, "Input should not change")
	})
}

func TestSample(t *testing.T) {
	entries := []searcher.PolicyEntry{
		{Label: "a", Probability: 0},
		{Label: "b", Probability: 1},
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		require.Equal(t, "b", sample(entries, rng).Label)
	}
}
