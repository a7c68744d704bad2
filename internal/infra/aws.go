package infra

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
)

// LoadAWSConfig resolves SDK credentials from the default chain, pinned to the
// configured region.
func LoadAWSConfig(ctx context.Context, cfg *Config) (aws.Config, error) {
	region := "us-east-1"
	if cfg != nil && cfg.AWSRegion != "" {
		region = cfg.AWSRegion
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return awsCfg, nil
}
