package detector

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sagemakerruntime"

	"imageprocessor/internal/domain"
)

// ErrMissingEndpoint indicates SageMaker was selected without an endpoint name.
var ErrMissingEndpoint = errors.New("sagemaker: endpoint name is required")

type sagemakerInvoker interface {
	InvokeEndpoint(ctx context.Context, params *sagemakerruntime.InvokeEndpointInput, optFns ...func(*sagemakerruntime.Options)) (*sagemakerruntime.InvokeEndpointOutput, error)
}

// SageMakerDetector sends raw image bytes to a SageMaker inference endpoint
// that answers with a JSON array of {label, confidence, bbox}.
type SageMakerDetector struct {
	client   sagemakerInvoker
	endpoint string
}

// NewSageMakerDetector wires a runtime client to the named endpoint.
func NewSageMakerDetector(client sagemakerInvoker, endpoint string) *SageMakerDetector {
	return &SageMakerDetector{client: client, endpoint: strings.TrimSpace(endpoint)}
}

// NewSageMakerDetectorFromConfig builds the SDK client from an aws.Config.
func NewSageMakerDetectorFromConfig(cfg aws.Config, endpoint string) *SageMakerDetector {
	return NewSageMakerDetector(sagemakerruntime.NewFromConfig(cfg), endpoint)
}

func (d *SageMakerDetector) Detect(ctx context.Context, image []byte) ([]domain.DetectionResult, error) {
	if d == nil || d.client == nil {
		return nil, detectionError("sagemaker", errors.New("client not configured"))
	}
	if d.endpoint == "" {
		return nil, detectionError("sagemaker", ErrMissingEndpoint)
	}
	out, err := d.client.InvokeEndpoint(ctx, &sagemakerruntime.InvokeEndpointInput{
		EndpointName: aws.String(d.endpoint),
		ContentType:  aws.String("application/x-image"),
		Accept:       aws.String("application/json"),
		Body:         image,
	})
	if err != nil {
		return nil, detectionError("sagemaker", err)
	}
	detections, err := decodePredictions(out.Body)
	if err != nil {
		return nil, detectionError("sagemaker", err)
	}
	return detections, nil
}

var _ Detector = (*SageMakerDetector)(nil)
