package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"imageprocessor/internal/infra"
	"imageprocessor/internal/jobs"
	"imageprocessor/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	repo := jobs.NewPostgresRepository(infra.NewSQLRunner(pool, logger))
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to apply jobs schema")
	}

	awsCfg, err := infra.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to load aws config")
	}
	handler, err := pipeline.NewFromConfig(cfg, awsCfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to build pipeline")
	}

	worker := jobs.NewWorker(repo, handler, logger, cfg.WorkerPollInterval)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}
