package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	DBMaxConns         int
	AWSRegion          string
	PinpointAppID      string
	SageMakerEndpoint  string
	Detector           string
	DetectorDelay      time.Duration
	InferenceURL       string
	StorageBackend     string
	StoragePath        string
	UploadBucket       string
	PresignTTL         time.Duration
	PipelineTimeout    time.Duration
	WorkerPollInterval time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getEnvInt("DB_MAX_CONNS", 10),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		PinpointAppID:      strings.TrimSpace(os.Getenv("PINPOINT_APP_ID")),
		SageMakerEndpoint:  strings.TrimSpace(os.Getenv("SAGEMAKER_ENDPOINT_NAME")),
		Detector:           strings.ToLower(getEnv("DETECTOR", "stub")),
		DetectorDelay:      time.Millisecond * time.Duration(getEnvInt("DETECTOR_DELAY_MS", 2000)),
		InferenceURL:       os.Getenv("INFERENCE_URL"),
		StorageBackend:     strings.ToLower(getEnv("STORAGE_BACKEND", "s3")),
		StoragePath:        getEnv("STORAGE_PATH", "./storage"),
		UploadBucket:       os.Getenv("S3_BUCKET"),
		PresignTTL:         time.Second * time.Duration(getEnvInt("PRESIGN_TTL_SECONDS", 3600)),
		PipelineTimeout:    time.Second * time.Duration(getEnvInt("PIPELINE_TIMEOUT_SECONDS", 30)),
		WorkerPollInterval: time.Millisecond * time.Duration(getEnvInt("WORKER_POLL_INTERVAL_MS", 2000)),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}

	switch cfg.Detector {
	case "stub", "sagemaker", "http":
	default:
		return nil, fmt.Errorf("DETECTOR %q is not supported", cfg.Detector)
	}
	switch cfg.StorageBackend {
	case "s3", "file":
	default:
		return nil, fmt.Errorf("STORAGE_BACKEND %q is not supported", cfg.StorageBackend)
	}
	if cfg.Detector == "http" && strings.TrimSpace(cfg.InferenceURL) == "" {
		return nil, fmt.Errorf("INFERENCE_URL is required when DETECTOR=http")
	}

	return cfg, nil
}

// RequireDatabase reports an error when DATABASE_URL is unset.
func (c *Config) RequireDatabase() error {
	if c == nil || strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
