package main

import (
	"flag"
	"fmt"
	"os"
	"pokey/config"
	"pokey/experiments"
	"pokey/experiments/metrics"
	"pokey/game"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: pokey [flags] <command>

commands:
  search      pick the best action for side one of the standard duel
  policy      print the visit distribution over side one's actions
  selfplay    play policy agents against each other and store the records
  experiment  run an experiment: scaling, policy or throughput

flags:
`

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Int("workers", 0, "number of search workers")
	flag.Int("batch-size", 0, "simulations between two stop checks")
	flag.Int("iterations", 0, "simulations per search, 0 for no limit")
	flag.Duration("duration", 0, "time budget per search, 0 for no limit")
	flag.Uint64("seed", 0, "random seed, 0 for a fresh one")
	flag.String("log-level", "", "log level")
	flag.Int("games", 0, "games per match up")
	flag.Int("max-turns", 0, "turn cap per game")
	flag.String("output-dir", "", "directory for experiment records")
	flag.Float64("temperature", 0, "policy temperature of self-play agents")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg, err := config.Load(*configPath, overrides())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	command := flag.Arg(0)
	if command == "" {
		command = "search"
	}
	switch command {
	case "search":
		runSearch(cfg)
	case "policy":
		runPolicy(cfg)
	case "selfplay":
		runSelfPlay(cfg)
	case "experiment":
		runExperiment(cfg, flag.Arg(1))
	default:
		flag.Usage()
		os.Exit(2)
	}
}

// overrides collects the flags set on the command line as config keys.
func overrides() map[string]any {
	values := map[string]any{}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		values[key] = f.Value.(flag.Getter).Get()
	})
	return values
}

func runSearch(cfg *config.Config) {
	decision, metric := cfg.NewMCTS().Search(game.NewStandardDuel())
	if !decision.Found {
		log.Warn().Msg("search found no action")
	}
	for _, c := range decision.Candidates {
		fmt.Printf("%-14s visits=%-8d value=%.2f\n", c.Label, c.Visits, c.Value)
	}
	fmt.Printf("best: %s confidence=%.4f visits=%d depth=%d time=%s stop=%s\n",
		decision.Label, decision.Confidence, decision.Visits, metric.MaxDepth, metric.Duration, metric.StopReason)
}

func runPolicy(cfg *config.Config) {
	policy, metric := cfg.NewMCTS().SearchPolicy(game.NewStandardDuel())
	for _, entry := range policy.Entries {
		fmt.Printf("%-14s %.4f\n", entry.Label, entry.Probability)
	}
	fmt.Printf("visits=%d depth=%d time=%s stop=%s\n", policy.Visits, metric.MaxDepth, metric.Duration, metric.StopReason)
}

func runSelfPlay(cfg *config.Config) {
	exp := experiments.SelfPlay(cfg.Games, agentConfig(cfg))
	store(cfg, exp, experiments.Run(withRun(cfg, exp)))
}

func runExperiment(cfg *config.Config, name string) {
	var exp experiments.Experiment
	switch name {
	case "scaling":
		budget := cfg.Duration
		if budget <= 0 {
			budget = experiments.TimeBudget
		}
		exp = experiments.WorkerScaling(cfg.Games, budget)
	case "policy":
		exp = experiments.PolicyVersusSearch(cfg.Games, cfg.Iterations, cfg.Workers)
	case "throughput":
		budget := cfg.Duration
		if budget <= 0 {
			budget = time.Second
		}
		for _, r := range experiments.RunThroughputExperiment(game.NewStandardDuel(), budget, 1, 2, 4, 8, 16) {
			fmt.Printf("workers=%-3d visits=%-9d rate=%.0f/s\n", r.Workers, r.Visits, r.VisitsPerSecond)
		}
		return
	default:
		log.Fatal().Str("experiment", name).Msg("unknown experiment, want scaling, policy or throughput")
	}
	store(cfg, exp, experiments.Run(withRun(cfg, exp)))
}

func agentConfig(cfg *config.Config) metrics.AgentConfig {
	return metrics.AgentConfig{
		Workers:     cfg.Workers,
		Iterations:  cfg.Iterations,
		Duration:    cfg.Duration,
		Temperature: cfg.Temperature,
	}
}

func withRun(cfg *config.Config, exp experiments.Experiment) experiments.Experiment {
	exp.MaxTurns = cfg.MaxTurns
	exp.Seed = cfg.Seed
	return exp
}

func store(cfg *config.Config, exp experiments.Experiment, result experiments.Result) {
	dir, err := experiments.Store(cfg.OutputDir, exp, result)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store experiment")
	}
	for _, s := range result.Summary {
		fmt.Printf("agent=%d wins=%d/%d visits=%.0f±%.0f depth=%.1f\n", s.Agent, s.Wins, s.Games, s.MeanVisits, s.StdDevVisits, s.MeanDepth)
	}
	log.Info().Str("dir", dir).Msg("stored experiment records")
}
