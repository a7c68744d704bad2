package domain

import (
	"encoding/json"
	"strings"
)

// BoundingBox holds pixel coordinates as x1, y1, x2, y2.
type BoundingBox [4]int

// DetectionResult is one labeled, confidence-scored region reported by a detector.
type DetectionResult struct {
	Label       string      `json:"label"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bbox"`
}

// ProcessingRequest is the inbound invocation payload.
type ProcessingRequest struct {
	ImageURL string `json:"imageUrl"`
	UserID   string `json:"userId"`
}

// Validate reports which required fields are empty. Whitespace counts as a value.
func (r ProcessingRequest) Validate() error {
	var missing []string
	if r.ImageURL == "" {
		missing = append(missing, "imageUrl")
	}
	if r.UserID == "" {
		missing = append(missing, "userId")
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}

// ValidationError names the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required parameters: " + strings.Join(e.Fields, " and ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ProcessingResponse is returned for every invocation, successful or not.
type ProcessingResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Detections []DetectionResult `json:"detections"`
	ImageID    *string           `json:"imageId"`
}

// MarshalJSON keeps detections as an array even when the slice is nil.
func (r ProcessingResponse) MarshalJSON() ([]byte, error) {
	type alias ProcessingResponse
	out := alias(r)
	if out.Detections == nil {
		out.Detections = []DetectionResult{}
	}
	return json.Marshal(out)
}

// CloneDetections returns a copy that callers may retain without aliasing src.
func CloneDetections(src []DetectionResult) []DetectionResult {
	if src == nil {
		return nil
	}
	return append([]DetectionResult(nil), src...)
}
