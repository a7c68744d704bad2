package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"imageprocessor/internal/http/handlers"
	httpapi "imageprocessor/internal/http/httpapi"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/jobs"
	"imageprocessor/internal/pipeline"
	"imageprocessor/internal/storage"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	awsCfg, err := infra.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load aws config")
	}

	handler, err := pipeline.NewFromConfig(cfg, awsCfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build pipeline")
	}
	app := handlers.NewApp(handler, logger)

	// Jobs need Postgres; without DATABASE_URL only the synchronous endpoint is served.
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()

		repo := jobs.NewPostgresRepository(infra.NewSQLRunner(dbpool, logger))
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply jobs schema")
		}
		app.Jobs = jobs.NewService(repo)
	}
	if cfg.UploadBucket != "" {
		app.Uploads = storage.NewUploadPresignerFromConfig(awsCfg, cfg.UploadBucket, cfg.PresignTTL)
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	})
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("detector", cfg.Detector).
			Str("storage", cfg.StorageBackend).
			Bool("jobs", app.Jobs != nil).
			Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
