package storage

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"imageprocessor/internal/infra"
)

// NewGetterFromConfig selects the object backend named by STORAGE_BACKEND.
func NewGetterFromConfig(cfg *infra.Config, awsCfg aws.Config) (ObjectGetter, error) {
	switch cfg.StorageBackend {
	case "", "s3":
		return NewS3StoreFromConfig(awsCfg), nil
	case "file":
		return NewFileStore(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("storage: unsupported backend %q", cfg.StorageBackend)
	}
}
