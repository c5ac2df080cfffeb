package searcher

import (
	"math"
	"pokey/experiments/metrics"
	"pokey/game"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	workers    int
	batchSize  int
	iterations int
	duration   time.Duration
	seed       uint64
	seeded     bool
	evaluate   game.Evaluate
	metrics    metrics.Collector
}

// WithIterations sets the total simulation budget, split evenly across workers.
func WithIterations(iterations int) Option {
	return func(m *MCTS) {
		if iterations > 0 {
			m.iterations = iterations
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithBatchSize(size int) Option {
	return func(m *MCTS) {
		if size > 0 {
			m.batchSize = size
		}
	}
}

// WithSeed makes searches reproducible for a fixed worker count. Worker i
// draws from a source seeded with seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
		m.seeded = true
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS returns a searcher running workers independent trees. Without an
// iteration or time budget a search only stops at MaxVisits.
func NewMCTS(workers int, options ...Option) *MCTS {
	if workers < 1 {
		panic("MCTS needs at least one worker")
	}
	m := &MCTS{ // Default values
		workers:   workers,
		batchSize: DefaultBatchSize,
		evaluate:  game.EvaluateState,
		metrics:   metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *MCTS) Workers() int {
	return m.workers
}

// Candidate is the merged root statistics of one own action.
type Candidate struct {
	Action game.Action
	Label  string
	Visits int
	Value  float64
}

// Decision is the outcome of a multi-worker search. Found is false when no
// action was ever visited, in which case Label is "none".
type Decision struct {
	Action     game.Action
	Label      string
	Confidence float64 // Average reward of the chosen action, in [Loss, Win]
	Visits     int     // Root visits summed over every tree
	Found      bool
	Candidates []Candidate
}

// Search runs one independent tree per worker from state and merges their
// root statistics. The chosen action is the most visited one.
func (m *MCTS) Search(state game.State) (Decision, metrics.SearchMetric) {
	m.metrics.Start(m.workers, m.batchSize)
	lim := newLimits(m.iterations, m.duration, m.workers)
	baseline := m.evaluate(state)
	depths := &depthTracker{}

	trees := make([]*tree, m.workers)
	reasons := make([]StopReason, m.workers)
	var g errgroup.Group
	for i := range trees {
		i := i
		local := state.Clone()
		trees[i] = newTree(local, m.rng(i), depths)
		g.Go(func() error {
			reasons[i] = m.work(trees[i], local, baseline, lim)
			return nil
		})
	}
	_ = g.Wait() // Workers never fail

	own, _ := state.Options()
	decision := merge(trees, own)
	reason := lo.Reduce(reasons, func(agg StopReason, r StopReason, _ int) StopReason {
		return agg | r
	}, StopNone)
	metric := m.metrics.Complete(decision.Visits, depths.Max(), reason.String())

	log.Debug().
		Str("action", decision.Label).
		Float64("confidence", decision.Confidence).
		Int("visits", decision.Visits).
		Int("workers", m.workers).
		Int("max_depth", metric.MaxDepth).
		Stringer("stop", reason).
		Msg("search completed")
	return decision, metric
}

// work runs batches of simulations on a worker's tree until one of its
// limits is reached. Limits are only checked between batches.
func (m *MCTS) work(t *tree, state game.State, baseline float64, lim limits) StopReason {
	for {
		if reason := lim.check(t.root.Visits()); reason != StopNone {
			return reason
		}
		for i := 0; i < m.batchSize; i++ {
			t.simulate(state.Clone(), baseline, m.evaluate)
			m.metrics.AddEpisode()
		}
	}
}

// merge sums the root children of every tree per legal own action, in legal
// order, and picks the most visited action. Ties go to the earliest action.
func merge(trees []*tree, own []game.Action) Decision {
	decision := Decision{Label: game.Pass.String()}
	best := 0
	bestValue := 0.0
	for _, action := range lo.Uniq(own) {
		candidate := Candidate{Action: action, Label: action.String()}
		for _, t := range trees {
			if child := t.root.Child(action); child != nil {
				visits, value := child.Stats()
				candidate.Visits += visits
				candidate.Value += value
			}
		}
		decision.Candidates = append(decision.Candidates, candidate)
		if candidate.Visits > best {
			best = candidate.Visits
			bestValue = candidate.Value
			decision.Action = action
			decision.Label = candidate.Label
			decision.Found = true
		}
	}
	if decision.Found {
		decision.Confidence = bestValue / float64(best)
	}
	decision.Visits = lo.SumBy(trees, func(t *tree) int {
		return t.root.Visits()
	})
	return decision
}

func (m *MCTS) rng(worker int) *rand.Rand {
	seed := m.seed
	if !m.seeded {
		seed = frand.Uint64n(math.MaxUint64)
	}
	return rand.New(rand.NewSource(seed + uint64(worker)))
}
