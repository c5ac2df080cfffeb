package config

import (
	"errors"
	"fmt"
	"pokey/searcher"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("invalid config")

// Config gathers the settings of every command. Values come from defaults,
// then an optional YAML file, then POKEY_* environment variables, then
// command-line overrides.
type Config struct {
	Workers     int           `mapstructure:"workers"`
	BatchSize   int           `mapstructure:"batch_size"`
	Iterations  int           `mapstructure:"iterations"`
	Duration    time.Duration `mapstructure:"duration"`
	Seed        uint64        `mapstructure:"seed"` // 0 draws fresh seeds
	LogLevel    string        `mapstructure:"log_level"`
	Games       int           `mapstructure:"games"`
	MaxTurns    int           `mapstructure:"max_turns"`
	OutputDir   string        `mapstructure:"output_dir"`
	Temperature float64       `mapstructure:"temperature"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 4)
	v.SetDefault("batch_size", searcher.DefaultBatchSize)
	v.SetDefault("iterations", 2000)
	v.SetDefault("duration", time.Duration(0))
	v.SetDefault("seed", uint64(0))
	v.SetDefault("log_level", "info")
	v.SetDefault("games", 10)
	v.SetDefault("max_turns", 500)
	v.SetDefault("output_dir", "experiments")
	v.SetDefault("temperature", 1.0)
}

// Load reads the config file at path, if any, and applies overrides on top.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("pokey")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	for key, value := range overrides {
		v.Set(key, value)
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive, got %d", ErrInvalid, c.Workers)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalid, c.BatchSize)
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations cannot be negative, got %d", ErrInvalid, c.Iterations)
	case c.Duration < 0:
		return fmt.Errorf("%w: duration cannot be negative, got %s", ErrInvalid, c.Duration)
	case c.Temperature <= 0:
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrInvalid, c.Temperature)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Level returns the configured log level, info if it does not parse.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// SearchOptions translates the search settings into searcher options.
func (c *Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithBatchSize(c.BatchSize),
		searcher.WithIterations(c.Iterations),
		searcher.WithDuration(c.Duration),
		searcher.WithMetrics(),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}

// NewMCTS returns a searcher configured by c.
func (c *Config) NewMCTS() *searcher.MCTS {
	return searcher.NewMCTS(c.Workers, c.SearchOptions()...)
}
