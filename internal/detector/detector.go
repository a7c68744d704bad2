// Package detector provides object-detection backends behind a single
// interface so the request pipeline never depends on a concrete model.
package detector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"imageprocessor/internal/domain"
)

// Detector turns image bytes into an ordered list of detections.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]domain.DetectionResult, error)
}

// prediction is the wire shape returned by inference endpoints.
type prediction struct {
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

// decodePredictions accepts either a bare JSON array or an object with a
// "detections" array and maps entries 1:1, preserving order. Any other shape,
// including null or an object without "detections", is an error.
func decodePredictions(body []byte) ([]domain.DetectionResult, error) {
	var preds *[]prediction
	if err := json.Unmarshal(body, &preds); err != nil {
		var wrapped struct {
			Detections *[]prediction `json:"detections"`
		}
		if werr := json.Unmarshal(body, &wrapped); werr != nil {
			return nil, fmt.Errorf("decode predictions: %w", err)
		}
		preds = wrapped.Detections
	}
	if preds == nil {
		return nil, errMissingDetections
	}
	out := make([]domain.DetectionResult, 0, len(*preds))
	for i, p := range *preds {
		if len(p.BBox) != 4 {
			return nil, fmt.Errorf("prediction %d: bbox has %d values, want 4", i, len(p.BBox))
		}
		var box domain.BoundingBox
		for j, v := range p.BBox {
			box[j] = int(v)
		}
		out = append(out, domain.DetectionResult{
			Label:       p.Label,
			Confidence:  p.Confidence,
			BoundingBox: box,
		})
	}
	return out, nil
}

var errMissingDetections = errors.New("decode predictions: missing detections array")

func detectionError(backend string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrDetection, backend, err)
}
