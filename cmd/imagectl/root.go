package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"imageprocessor/internal/detector"
	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/pipeline"
)

// Version is the CLI version.
const Version = "0.1.0"

type processor interface {
	Process(ctx context.Context, req domain.ProcessingRequest) domain.ProcessingResponse
}

// builders construct the heavy dependencies lazily so that --help and flag
// errors never touch configuration or AWS.
type builders struct {
	processor func(ctx context.Context, verbose bool) (processor, error)
	detector  func(ctx context.Context, verbose bool) (detector.Detector, error)
}

func defaultBuilders() builders {
	return builders{
		processor: func(ctx context.Context, verbose bool) (processor, error) {
			cfg, logger, err := loadRuntime(verbose)
			if err != nil {
				return nil, err
			}
			awsCfg, err := infra.LoadAWSConfig(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return pipeline.NewFromConfig(cfg, awsCfg, &logger)
		},
		detector: func(ctx context.Context, verbose bool) (detector.Detector, error) {
			cfg, logger, err := loadRuntime(verbose)
			if err != nil {
				return nil, err
			}
			awsCfg, err := infra.LoadAWSConfig(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return detector.New(cfg, awsCfg, &logger)
		},
	}
}

// loadRuntime reads .env and the environment. Logs go to stderr so that
// stdout stays machine readable.
func loadRuntime(verbose bool) (*infra.Config, infra.Logger, error) {
	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		return nil, infra.NopLogger(), err
	}
	logger := infra.NopLogger()
	if verbose {
		logger = infra.NewLoggerTo(cfg.AppEnv, os.Stderr)
	}
	return cfg, logger, nil
}

func newRootCmd(b builders) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "imagectl",
		Short:         "Run the image detection pipeline from the command line",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline activity to stderr")

	root.AddCommand(
		newProcessCmd(b, &verbose),
		newDetectCmd(b, &verbose),
	)
	return root
}
