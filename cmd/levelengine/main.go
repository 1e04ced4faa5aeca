// Command levelengine runs the grid level rule engine as an HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/playproof/levelengine/internal/config"
	"github.com/playproof/levelengine/internal/generate"
	"github.com/playproof/levelengine/internal/golden"
	"github.com/playproof/levelengine/internal/httpapi"
	"github.com/playproof/levelengine/internal/orchestrate"
	"github.com/playproof/levelengine/internal/sanitize"
	"github.com/playproof/levelengine/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	// Optional .env for local runs; ignore absence.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("engine exited")
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	store, err := golden.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Seed(context.Background()); err != nil {
		return err
	}

	if cfg.GeneratorURL == "" {
		logger.Warn().Msg("generator_url is empty; all requests will fall back to golden levels")
	}
	generator := generate.NewClient(cfg.GeneratorURL, cfg.GeneratorTimeout())

	sims := sim.NewRegistry()
	orch := orchestrate.New(generator, sanitize.PassThrough{}, store, sims, logger)
	orch.MaxAttempts = cfg.MaxAttempts

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.New(orch, sims, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.ListenAddr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
