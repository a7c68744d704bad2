package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"

	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/pipeline"
)

// event is the resolver-style payload: {"arguments": {"imageUrl", "userId"}}.
type event struct {
	Arguments domain.ProcessingRequest `json:"arguments"`
}

type processor interface {
	Process(ctx context.Context, req domain.ProcessingRequest) domain.ProcessingResponse
}

func newHandler(p processor, logger infra.Logger) func(context.Context, event) (domain.ProcessingResponse, error) {
	return func(ctx context.Context, ev event) (domain.ProcessingResponse, error) {
		log := logger.With().Str("user_id", ev.Arguments.UserID).Logger()
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			log = log.With().Str("aws_request_id", lc.AwsRequestID).Logger()
		}
		log.Info().Str("image_url", ev.Arguments.ImageURL).Msg("lambda: invocation received")
		return p.Process(ctx, ev.Arguments), nil
	}
}

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	awsCfg, err := infra.LoadAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("lambda: failed to load aws config")
	}
	handler, err := pipeline.NewFromConfig(cfg, awsCfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("lambda: failed to build pipeline")
	}

	lambda.Start(newHandler(handler, logger))
}
