package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestProcessingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ProcessingRequest
		wantErr string
	}{
		{name: "complete", req: ProcessingRequest{ImageURL: "https://b.s3.amazonaws.com/k", UserID: "u1"}},
		{name: "missing both", req: ProcessingRequest{}, wantErr: "missing required parameters: imageUrl and userId"},
		{name: "missing url", req: ProcessingRequest{UserID: "u1"}, wantErr: "missing required parameters: imageUrl"},
		{name: "missing user", req: ProcessingRequest{ImageURL: "https://b.host/k"}, wantErr: "missing required parameters: userId"},
		{name: "whitespace user is present", req: ProcessingRequest{ImageURL: "https://b.host/k", UserID: "  "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error %q", tc.wantErr)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error should wrap ErrValidation: %v", err)
			}
			if err.Error() != tc.wantErr {
				t.Fatalf("error = %q, want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestProcessingResponseJSONShape(t *testing.T) {
	data, err := json.Marshal(ProcessingResponse{Success: false, Message: "boom"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"detections":[]`) {
		t.Fatalf("detections should encode as empty array: %s", got)
	}
	if !strings.Contains(got, `"imageId":null`) {
		t.Fatalf("imageId should encode as null: %s", got)
	}

	id := "abc_1"
	data, err = json.Marshal(ProcessingResponse{
		Success:    true,
		Detections: []DetectionResult{{Label: "car", Confidence: 0.5, BoundingBox: BoundingBox{1, 2, 3, 4}}},
		ImageID:    &id,
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got = string(data)
	if !strings.Contains(got, `"bbox":[1,2,3,4]`) {
		t.Fatalf("bbox should encode as array: %s", got)
	}
	if !strings.Contains(got, `"imageId":"abc_1"`) {
		t.Fatalf("unexpected imageId encoding: %s", got)
	}
}
