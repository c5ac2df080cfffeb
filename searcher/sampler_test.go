package searcher

import (
	"math"
	"pokey/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSampleOutcome(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	first := game.Outcome{Weight: 0, Effects: []game.Effect{{Kind: game.Damage, Amount: 1}}}
	second := game.Outcome{Weight: 0, Effects: []game.Effect{{Kind: game.Damage, Amount: 2}}}

	t.Run("returning the only outcome", func(t *testing.T) {
		only := game.Outcome{Weight: 0.3, Effects: first.Effects}
		for i := 0; i < 10; i++ {
			require.Equal(t, only, SampleOutcome([]game.Outcome{only}, rng))
		}
	})

	t.Run("falling back to the first outcome on zero weights", func(t *testing.T) {
		require.Equal(t, first, SampleOutcome([]game.Outcome{first, second}, rng))
	})

	t.Run("falling back to the first outcome on malformed weights", func(t *testing.T) {
		negative := game.Outcome{Weight: -1}
		nan := game.Outcome{Weight: math.NaN()}
		require.Equal(t, first, SampleOutcome([]game.Outcome{first, negative}, rng))
		require.Equal(t, first, SampleOutcome([]game.Outcome{first, nan}, rng))
	})

	t.Run("returning the zero outcome on an empty list", func(t *testing.T) {
		require.Equal(t, game.Outcome{}, SampleOutcome(nil, rng))
	})

	t.Run("never drawing zero-weight outcomes", func(t *testing.T) {
		sure := game.Outcome{Weight: 1, Effects: second.Effects}
		for i := 0; i < 100; i++ {
			require.Equal(t, sure, SampleOutcome([]game.Outcome{first, sure}, rng))
		}
	})

	t.Run("drawing in proportion to weights", func(t *testing.T) {
		likely := game.Outcome{Weight: 0.75, Effects: first.Effects}
		unlikely := game.Outcome{Weight: 0.25, Effects: second.Effects}

		count := 0
		for i := 0; i < 4000; i++ {
			if SampleOutcome([]game.Outcome{likely, unlikely}, rng).Effects[0].Amount == 1 {
				count++
			}
		}
		require.InDelta(t, 3000, count, 200)
	})
}

func TestScore(t *testing.T) {
	t.Run("sigmoid of a zero gain is one half", func(t *testing.T) {
		d := game.NewStandardDuel()
		require.Equal(t, 0.5, score(d, d.Evaluate(), game.EvaluateState))
	})

	t.Run("large gains saturate near Win", func(t *testing.T) {
		d := game.NewStandardDuel()
		evaluate := func(game.State) float64 { return 200 }

		got := score(d, 0, evaluate)
		require.InDelta(t, 1/(1+math.Exp(-2.5)), got, 1e-9)
		require.Greater(t, got, 0.9)
		require.Less(t, score(d, 200, func(game.State) float64 { return 0 }), 0.1)
	})
}

func TestLimits(t *testing.T) {
	t.Run("splitting iterations", func(t *testing.T) {
		l := newLimits(10, 0, 4)
		require.Equal(t, StopNone, l.check(1))
		require.Equal(t, StopIterations, l.check(2), "Remainder of the split should be dropped")
	})

	t.Run("stopping a zero share at once", func(t *testing.T) {
		require.Equal(t, StopIterations, newLimits(3, 0, 4).check(0))
	})

	t.Run("applying the ceiling without budgets", func(t *testing.T) {
		l := newLimits(0, 0, 1)
		require.Equal(t, StopNone, l.check(MaxVisits-1))
		require.Equal(t, StopCeiling, l.check(MaxVisits))
	})

	t.Run("reporting combined reasons", func(t *testing.T) {
		got := newLimits(MaxVisits, 0, 1).check(MaxVisits)
		require.Equal(t, StopIterations|StopCeiling, got)
		require.Equal(t, "iterations|ceiling", got.String())
	})

	t.Run("stopping on the deadline", func(t *testing.T) {
		l := newLimits(0, time.Millisecond, 1)
		time.Sleep(2 * time.Millisecond)
		require.Equal(t, StopMovetime, l.check(0))
	})
}
