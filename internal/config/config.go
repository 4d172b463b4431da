package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the simulator binaries.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Web        WebConfig        `mapstructure:"web"`
}

// SimulationConfig controls the batch run.
type SimulationConfig struct {
	// Runs is the number of games in a batch.
	Runs int `mapstructure:"runs"`
	// Seed is the base seed; per-game seeds are derived from it.
	Seed uint64 `mapstructure:"seed"`
	// Workers is the goroutine pool size; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers"`
	// DeckPath points at a deck list file; empty uses the built-in list.
	DeckPath string `mapstructure:"deck_path"`
	// TurnLimit caps each game; 0 keeps the engine default.
	TurnLimit int `mapstructure:"turn_limit"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DatabaseConfig configures the optional results sink.
type DatabaseConfig struct {
	// URL is a pgx connection string; empty disables persistence.
	URL string `mapstructure:"url"`
}

// WebConfig configures the live-progress server.
type WebConfig struct {
	Address string `mapstructure:"address"`
}

// Load reads configuration from the given YAML file, applying defaults and
// GOLDFISH_-prefixed environment overrides. A missing file is not an error;
// defaults and environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("simulation.runs", 1000)
	v.SetDefault("simulation.seed", 1)
	v.SetDefault("simulation.workers", 0)
	v.SetDefault("simulation.deck_path", "")
	v.SetDefault("simulation.turn_limit", 0)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.url", "")
	v.SetDefault("web.address", ":8080")

	v.SetEnvPrefix("GOLDFISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.Runs < 1 {
		return fmt.Errorf("simulation.runs must be positive, got %d", c.Simulation.Runs)
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers must not be negative, got %d", c.Simulation.Workers)
	}
	if c.Simulation.TurnLimit < 0 {
		return fmt.Errorf("simulation.turn_limit must not be negative, got %d", c.Simulation.TurnLimit)
	}
	return nil
}
