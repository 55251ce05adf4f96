// Package main is the entry point for the duel.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/duel/internal/config"
	"github.com/samdwyer/duel/internal/dice"
	"github.com/samdwyer/duel/internal/game"
	"github.com/samdwyer/duel/internal/observability"
	"github.com/samdwyer/duel/internal/telemetry"
	"github.com/samdwyer/duel/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty uses defaults and DUEL_ environment variables")
	mode := flag.String("mode", "", "game mode: versus or bot (overrides config)")
	seed := flag.Int64("seed", 0, "random seed for reproducible matches; 0 uses a fresh random source (overrides config)")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *mode != "" {
		cfg.Game.Mode = *mode
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Game.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tracer trace.Tracer
	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	switch {
	case errors.Is(err, telemetry.ErrDisabled):
		tracer = telemetry.NoopTracer()
	case err != nil:
		// Continue without telemetry - the game still works
		logger.Warn("telemetry setup failed", zap.Error(err))
		tracer = telemetry.NoopTracer()
	default:
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("shutting down telemetry", zap.Error(err))
			}
		}()
		tracer = telemetry.Tracer("game")
	}

	roller := dice.NewRoller(dice.NewSource(cfg.Game.Seed), logger)

	screen, err := ui.NewScreen()
	if err != nil {
		logger.Fatal("initializing screen", zap.Error(err))
	}

	g, err := game.New(screen, game.Options{
		Config: cfg,
		Dice:   roller,
		Logger: logger,
		Tracer: tracer,
	})
	if err != nil {
		screen.Close()
		logger.Fatal("initializing game", zap.Error(err))
	}

	logger.Info("starting duel",
		zap.String("mode", cfg.Game.Mode),
		zap.Int64("seed", cfg.Game.Seed),
		zap.Int("frame_rate", cfg.Game.FrameRate),
	)
	if err := g.Run(ctx); err != nil {
		logger.Fatal("game error", zap.Error(err))
	}
}
