package detector

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"imageprocessor/internal/infra"
)

// New selects a detector backend from configuration. awsCfg is only used for
// the sagemaker backend.
func New(cfg *infra.Config, awsCfg aws.Config, logger *infra.Logger) (Detector, error) {
	if cfg == nil {
		return NewStubDetector(DefaultStubDelay), nil
	}
	switch cfg.Detector {
	case "", "stub":
		return NewStubDetector(cfg.DetectorDelay), nil
	case "sagemaker":
		if cfg.SageMakerEndpoint == "" {
			return nil, ErrMissingEndpoint
		}
		return NewSageMakerDetectorFromConfig(awsCfg, cfg.SageMakerEndpoint), nil
	case "http":
		return NewHTTPDetector(HTTPOptions{
			URL:            cfg.InferenceURL,
			Logger:         logger,
			RequestTimeout: cfg.PipelineTimeout,
		})
	default:
		return nil, fmt.Errorf("detector: unsupported backend %q", cfg.Detector)
	}
}
