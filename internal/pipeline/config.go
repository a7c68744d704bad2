package pipeline

import (
	"github.com/aws/aws-sdk-go-v2/aws"

	"imageprocessor/internal/detector"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/notify"
	"imageprocessor/internal/storage"
)

// NewFromConfig assembles a Handler from configuration: the storage backend,
// the detector backend and the Pinpoint notifier.
func NewFromConfig(cfg *infra.Config, awsCfg aws.Config, logger *infra.Logger) (*Handler, error) {
	getter, err := storage.NewGetterFromConfig(cfg, awsCfg)
	if err != nil {
		return nil, err
	}
	det, err := detector.New(cfg, awsCfg, logger)
	if err != nil {
		return nil, err
	}
	return New(Options{
		Fetcher:  storage.NewFetcher(getter),
		Detector: det,
		Notifier: notify.NewPinpointNotifierFromConfig(awsCfg, cfg.PinpointAppID),
		Logger:   logger,
		Timeout:  cfg.PipelineTimeout,
	}), nil
}
