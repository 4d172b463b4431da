package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/goldfish-go/internal/card"
	"github.com/magefree/goldfish-go/internal/config"
	"github.com/magefree/goldfish-go/internal/sim"
	"github.com/magefree/goldfish-go/internal/storage"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	runs       = flag.Int("runs", 0, "number of games (overrides config)")
	seed       = flag.Uint64("seed", 0, "base seed (overrides config)")
	workers    = flag.Int("workers", 0, "worker pool size (overrides config)")
	deckPath   = flag.String("deck", "", "deck list file (overrides config)")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg)

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting goldfish simulator",
		zap.String("version", version),
		zap.Int("runs", cfg.Simulation.Runs),
		zap.Uint64("seed", cfg.Simulation.Seed),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	catalog, err := card.LoadEmbedded()
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}

	deck, err := loadDeck(cfg.Simulation.DeckPath, catalog)
	if err != nil {
		logger.Fatal("failed to load deck", zap.Error(err))
	}
	logger.Info("deck loaded", zap.Int("cards", len(deck)))

	runner := &sim.Runner{
		Deck:      deck,
		Catalog:   catalog,
		BaseSeed:  cfg.Simulation.Seed,
		Runs:      cfg.Simulation.Runs,
		Workers:   cfg.Simulation.Workers,
		TurnLimit: cfg.Simulation.TurnLimit,
		Logger:    logger,
	}

	batch, err := runner.Run(ctx)
	if err != nil {
		logger.Fatal("batch failed", zap.Error(err))
	}

	report := sim.Aggregate(batch.Results)
	fmt.Print(report.String())

	if cfg.Database.URL != "" {
		store, err := storage.New(ctx, cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer store.Close()
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal("failed to ensure schema", zap.Error(err))
		}
		if err := store.SaveBatch(ctx, batch); err != nil {
			logger.Fatal("failed to persist batch", zap.Error(err))
		}
	}
}

func applyFlagOverrides(cfg *config.Config) {
	if *runs > 0 {
		cfg.Simulation.Runs = *runs
	}
	if *seed > 0 {
		cfg.Simulation.Seed = *seed
	}
	if *workers > 0 {
		cfg.Simulation.Workers = *workers
	}
	if *deckPath != "" {
		cfg.Simulation.DeckPath = *deckPath
	}
}

func loadDeck(path string, catalog *card.Catalog) ([]card.Card, error) {
	if path == "" {
		return card.ParseDeckList(card.SampleDeckList, catalog)
	}
	return card.LoadDeckFile(path, catalog)
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
