package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultPresignTTL = time.Hour

type putPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// PresignedUpload describes a signed PUT the client performs directly against S3.
type PresignedUpload struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Bucket    string    `json:"bucket"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadPresigner issues signed upload URLs under uploads/YYYY/MM/DD/.
type UploadPresigner struct {
	presigner putPresigner
	bucket    string
	ttl       time.Duration
	now       func() time.Time
	newID     func() string
}

// NewUploadPresigner constructs a presigner for bucket. ttl<=0 means one hour.
func NewUploadPresigner(presigner putPresigner, bucket string, ttl time.Duration) *UploadPresigner {
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}
	return &UploadPresigner{
		presigner: presigner,
		bucket:    strings.TrimSpace(bucket),
		ttl:       ttl,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// NewUploadPresignerFromConfig builds the SDK presign client from an aws.Config.
func NewUploadPresignerFromConfig(cfg aws.Config, bucket string, ttl time.Duration) *UploadPresigner {
	return NewUploadPresigner(s3.NewPresignClient(s3.NewFromConfig(cfg)), bucket, ttl)
}

// Presign returns a signed PUT for a new object named after filename.
func (p *UploadPresigner) Presign(ctx context.Context, filename, contentType string) (*PresignedUpload, error) {
	if p == nil || p.presigner == nil {
		return nil, errors.New("storage: presigner not configured")
	}
	if p.bucket == "" {
		return nil, errors.New("storage: upload bucket not configured")
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := p.uploadKey(filename)
	req, err := p.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(p.ttl))
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &PresignedUpload{
		URL:       req.URL,
		Method:    req.Method,
		Bucket:    p.bucket,
		Key:       key,
		ExpiresAt: p.now().Add(p.ttl).UTC(),
	}, nil
}

func (p *UploadPresigner) uploadKey(filename string) string {
	id := p.newID()
	name := strings.TrimSpace(strings.ReplaceAll(filename, "\\", "/"))
	name = path.Base(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		name = id + ".jpg"
	}
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("uploads/%s/%s-%s", p.now().UTC().Format("2006/01/02"), id, name)
}
