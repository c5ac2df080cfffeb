package experiments

import (
	"fmt"
	"pokey/engine"
	"pokey/experiments/metrics"
	"pokey/game"
	"pokey/searcher"
	"pokey/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Experiment pits agent configurations against each other, NumGames per
// match up. Sides alternate between games.
type Experiment struct {
	Name     string
	Games    int
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	MaxTurns int
	Seed     uint64
}

type Result struct {
	Games   []metrics.GameRecord
	Moves   []metrics.MoveRecord
	Summary []metrics.Summary
}

// WorkerScaling pairs agents with growing worker counts against a single
// worker baseline under the same time budget.
func WorkerScaling(games int, budget time.Duration, workers ...int) Experiment {
	if len(workers) == 0 {
		workers = []int{1, 2, 4, 8, 16}
	}
	baseline := metrics.AgentConfig{ID: 0, Workers: 1, Duration: budget}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, w := range workers {
		config := metrics.AgentConfig{ID: i + 1, Workers: w, Duration: budget}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: "worker_scaling", Games: games, Configs: configs, MatchUps: matchUps}
}

// PolicyVersusSearch pairs a policy sampling agent against a multi-worker
// search agent with the same iteration budget.
func PolicyVersusSearch(games, iterations, workers int) Experiment {
	search := metrics.AgentConfig{ID: 0, Workers: workers, Iterations: iterations}
	policy := metrics.AgentConfig{ID: 1, Workers: 1, Iterations: iterations, Policy: true, Temperature: 1}
	return Experiment{
		Name:     "policy_vs_search",
		Games:    games,
		Configs:  []metrics.AgentConfig{search, policy},
		MatchUps: [][2]metrics.AgentConfig{{search, policy}},
	}
}

// Run plays every match up and summarizes each agent's results.
func Run(exp Experiment) Result {
	games := exp.Games
	if games <= 0 {
		games = NumGames
	}
	result := Result{}
	tallies := map[int]*tally{}
	for _, config := range exp.Configs {
		tallies[config.ID] = &tally{}
	}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	count := 0
	for mi, matchUp := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < games; i++ {
			count++
			seed := exp.Seed + uint64(count)
			sides := matchUp
			if i%2 == 1 { // Alternate sides
				sides = [2]metrics.AgentConfig{matchUp[1], matchUp[0]}
			}

			winner, gameMetric, moveMetrics := runGame(sides, exp.MaxTurns, seed)
			result.Games = append(result.Games, metrics.GameRecord{
				ID:         count,
				Agent1:     sides[0].ID,
				Agent2:     sides[1].ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				result.Moves = append(result.Moves, metrics.MoveRecord{Game: count, MoveMetric: mm})
				side := sides[0]
				if mm.Side == game.SideTwo.String() {
					side = sides[1]
				}
				tallies[side.ID].add(mm.SearchMetric)
			}
			for s, config := range sides {
				t := tallies[config.ID]
				t.games++
				if winner == game.Side(s).String() {
					t.wins++
				}
			}

			log.Info().Msgf("completed matchup %d of %d game %d of %d with winner: %q", mi+1, len(exp.MatchUps), i+1, games, winner)
		}
	}

	for _, config := range exp.Configs {
		result.Summary = append(result.Summary, tallies[config.ID].summarize(config.ID))
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return result
}

// Store writes the experiment's records under root and returns the run
// directory.
func Store(root string, exp Experiment, result Result) (string, error) {
	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteManifest(metrics.Manifest{
		Experiment: exp.Name,
		StartedAt:  startOf(result),
		Games:      len(result.Games),
		Agents:     exp.Configs,
		Summary:    result.Summary,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store manifest: %w", err)
	}

	err = writer.WriteAgentConfigs(exp.Configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(result.Games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(result.Moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

func startOf(result Result) time.Time {
	if len(result.Games) == 0 {
		return time.Now().UTC()
	}
	return result.Games[0].StartTime.UTC()
}

// SelfPlay lets a policy sampling agent play against itself.
func SelfPlay(games int, config metrics.AgentConfig) Experiment {
	config.Policy = true
	return Experiment{
		Name:     "selfplay",
		Games:    games,
		Configs:  []metrics.AgentConfig{config},
		MatchUps: [][2]metrics.AgentConfig{{config, config}},
	}
}

// runGame executes a single game between two agents and returns the winner
func runGame(configs [2]metrics.AgentConfig, maxTurns int, seed uint64) (string, metrics.GameMetric, []metrics.MoveMetric) {
	agents := [2]agent.Agent{
		CreateAgent(configs[0], seed*2),
		CreateAgent(configs[1], seed*2+1),
	}
	e := engine.LocalEngine(agents, game.NewStandardDuel(), seed, maxTurns)
	return e.Run()
}

// CreateAgent builds the agent described by config. Policy agents sample
// their moves, the others play the search decision.
func CreateAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	mcts := CreateMCTS(config, seed)
	if config.Policy {
		return agent.NewTrainingAgent(mcts, config.Temperature, seed)
	}
	return agent.NewEvaluationAgent(mcts)
}

func CreateMCTS(config metrics.AgentConfig, seed uint64) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if seed != 0 {
		options = append(options, searcher.WithSeed(seed))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(max(config.Workers, 1), options...)
}

// tally collects one agent's results over an experiment.
type tally struct {
	games  int
	wins   int
	visits []float64
	depths []float64
}

func (t *tally) add(metric metrics.SearchMetric) {
	t.visits = append(t.visits, float64(metric.Visits))
	t.depths = append(t.depths, float64(metric.MaxDepth))
}

func (t *tally) summarize(id int) metrics.Summary {
	summary := metrics.Summary{Agent: id, Games: t.games, Wins: t.wins}
	if len(t.visits) == 0 {
		return summary
	}
	summary.MeanVisits, summary.StdDevVisits = stat.MeanStdDev(t.visits, nil)
	if len(t.visits) == 1 {
		summary.StdDevVisits = 0
	}
	summary.MeanDepth = stat.Mean(t.depths, nil)
	return summary
}
