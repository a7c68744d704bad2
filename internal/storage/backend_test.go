package storage

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"imageprocessor/internal/infra"
)

func TestNewGetterFromConfig(t *testing.T) {
	dir := t.TempDir()

	getter, err := NewGetterFromConfig(&infra.Config{StorageBackend: "file", StoragePath: dir}, aws.Config{})
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if fs, ok := getter.(*FileStore); !ok || fs.BasePath() != dir {
		t.Fatalf("expected FileStore rooted at %s, got %#v", dir, getter)
	}

	getter, err = NewGetterFromConfig(&infra.Config{StorageBackend: "s3"}, aws.Config{Region: "us-east-1"})
	if err != nil {
		t.Fatalf("s3 backend: %v", err)
	}
	if _, ok := getter.(*S3Store); !ok {
		t.Fatalf("expected S3Store, got %T", getter)
	}

	if _, err := NewGetterFromConfig(&infra.Config{StorageBackend: "gcs"}, aws.Config{}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
