package detector

import (
	"context"
	"time"

	"imageprocessor/internal/domain"
)

// DefaultStubDelay mirrors the latency of a real model round-trip.
const DefaultStubDelay = 2 * time.Second

var stubDetections = []domain.DetectionResult{
	{Label: "person", Confidence: 0.95, BoundingBox: domain.BoundingBox{100, 150, 300, 500}},
	{Label: "car", Confidence: 0.87, BoundingBox: domain.BoundingBox{400, 200, 600, 350}},
	{Label: "building", Confidence: 0.78, BoundingBox: domain.BoundingBox{50, 50, 700, 400}},
}

// StubDetector ignores its input and returns a fixed set of detections after
// Delay. It stands in for a model during development.
type StubDetector struct {
	Delay time.Duration
}

// NewStubDetector returns a stub with the given delay; negative means none.
func NewStubDetector(delay time.Duration) *StubDetector {
	if delay < 0 {
		delay = 0
	}
	return &StubDetector{Delay: delay}
}

// Detect waits for Delay or until ctx is done.
func (s *StubDetector) Detect(ctx context.Context, _ []byte) ([]domain.DetectionResult, error) {
	if s != nil && s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, detectionError("stub", ctx.Err())
		case <-timer.C:
		}
	}
	return domain.CloneDetections(stubDetections), nil
}

var _ Detector = (*StubDetector)(nil)
