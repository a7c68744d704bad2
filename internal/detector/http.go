package detector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
)

// maxResponseBytes caps how much of an inference response is read.
const maxResponseBytes = 4 << 20

// HTTPOptions configures an HTTPDetector.
type HTTPOptions struct {
	URL            string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// HTTPDetector posts the image as multipart form data to an inference
// service and decodes its predictions.
type HTTPDetector struct {
	url        string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewHTTPDetector constructs a detector with sane defaults.
func NewHTTPDetector(opts HTTPOptions) (*HTTPDetector, error) {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		return nil, errors.New("detector: inference url is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &HTTPDetector{url: url, httpClient: httpClient, logger: opts.Logger}, nil
}

func (d *HTTPDetector) Detect(ctx context.Context, image []byte) ([]domain.DetectionResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, detectionError("http", fmt.Errorf("create form file: %w", err))
	}
	if _, err := part.Write(image); err != nil {
		return nil, detectionError("http", fmt.Errorf("write image: %w", err))
	}
	if err := writer.Close(); err != nil {
		return nil, detectionError("http", fmt.Errorf("close multipart: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, body)
	if err != nil {
		return nil, detectionError("http", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, detectionError("http", fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, detectionError("http", fmt.Errorf("read response: %w", err))
	}
	if d.logger != nil {
		d.logger.Debug().
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(start)).
			Int("image_bytes", len(image)).
			Msg("detector: inference call finished")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, detectionError("http", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}
	detections, err := decodePredictions(raw)
	if err != nil {
		return nil, detectionError("http", err)
	}
	return detections, nil
}

var _ Detector = (*HTTPDetector)(nil)
