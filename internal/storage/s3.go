package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store reads objects from Amazon S3.
type S3Store struct {
	client s3API
}

// NewS3Store wraps an S3 client. A nil client yields an unusable store.
func NewS3Store(client s3API) *S3Store {
	return &S3Store{client: client}
}

// NewS3StoreFromConfig builds the SDK client from an aws.Config.
func NewS3StoreFromConfig(cfg aws.Config) *S3Store {
	return NewS3Store(s3.NewFromConfig(cfg))
}

// GetObject implements ObjectGetter.
func (s *S3Store) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("storage: s3 client not configured")
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			if apiErr.ErrorCode() == "NoSuchKey" || apiErr.ErrorCode() == "NotFound" {
				return nil, fmt.Errorf("%w: s3://%s/%s", ErrObjectNotFound, bucket, key)
			}
			return nil, fmt.Errorf("s3 %s: %w", apiErr.ErrorCode(), err)
		}
		return nil, err
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 body: %w", err)
	}
	return data, nil
}

var _ ObjectGetter = (*S3Store)(nil)
