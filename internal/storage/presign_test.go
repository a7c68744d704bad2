package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type stubPresigner struct {
	input   *s3.PutObjectInput
	expires time.Duration
	err     error
}

func (s *stubPresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	s.input = params
	var opts s3.PresignOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	s.expires = opts.Expires
	if s.err != nil {
		return nil, s.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://signed.example.com/" + *params.Key, Method: "PUT"}, nil
}

func newTestPresigner(stub *stubPresigner) *UploadPresigner {
	p := NewUploadPresigner(stub, "uploads-bucket", 0)
	p.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	p.newID = func() string { return "0d6f1c1e-1111-2222-3333-444455556666" }
	return p
}

func TestUploadPresignerBuildsDatedKey(t *testing.T) {
	stub := &stubPresigner{}
	p := newTestPresigner(stub)

	upload, err := p.Presign(context.Background(), "holiday photo.jpg", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantKey := "uploads/2024/03/09/0d6f1c1e-1111-2222-3333-444455556666-holiday_photo.jpg"
	if upload.Key != wantKey {
		t.Fatalf("key = %q, want %q", upload.Key, wantKey)
	}
	if upload.Bucket != "uploads-bucket" || upload.Method != "PUT" {
		t.Fatalf("unexpected upload: %#v", upload)
	}
	if *stub.input.ContentType != "image/jpeg" {
		t.Fatalf("content type = %q, want image/jpeg", *stub.input.ContentType)
	}
	if stub.expires != time.Hour {
		t.Fatalf("expires = %s, want 1h", stub.expires)
	}
	if !upload.ExpiresAt.Equal(time.Date(2024, 3, 9, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("expiresAt = %s", upload.ExpiresAt)
	}
}

func TestUploadPresignerStripsDirectories(t *testing.T) {
	p := newTestPresigner(&stubPresigner{})
	upload, err := p.Presign(context.Background(), "../../etc/passwd", "text/plain")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(upload.Key, "-passwd") || strings.Contains(upload.Key, "..") {
		t.Fatalf("key = %q", upload.Key)
	}
}

func TestUploadPresignerDefaultsFilename(t *testing.T) {
	p := newTestPresigner(&stubPresigner{})
	upload, err := p.Presign(context.Background(), "", "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(upload.Key, "-0d6f1c1e-1111-2222-3333-444455556666.jpg") {
		t.Fatalf("key = %q", upload.Key)
	}
}

func TestUploadPresignerRequiresBucket(t *testing.T) {
	p := NewUploadPresigner(&stubPresigner{}, "", time.Minute)
	if _, err := p.Presign(context.Background(), "a.jpg", ""); err == nil {
		t.Fatalf("expected error without bucket")
	}
}

func TestUploadPresignerWrapsSDKError(t *testing.T) {
	cause := errors.New("no credentials")
	p := newTestPresigner(&stubPresigner{err: cause})
	if _, err := p.Presign(context.Background(), "a.jpg", ""); !errors.Is(err, cause) {
		t.Fatalf("error = %v, want wrapped cause", err)
	}
}
