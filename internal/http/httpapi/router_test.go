package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"imageprocessor/internal/domain"
	"imageprocessor/internal/http/handlers"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/storage"
)

type stubProcessor struct {
	resp domain.ProcessingResponse
	req  domain.ProcessingRequest
}

func (s *stubProcessor) Process(ctx context.Context, req domain.ProcessingRequest) domain.ProcessingResponse {
	s.req = req
	return s.resp
}

type stubJobs struct {
	job     *domain.Job
	err     error
	urls    []string
	userID  string
	getArgs string
}

func (s *stubJobs) Enqueue(ctx context.Context, userID string, imageURLs []string, metadata map[string]any) (*domain.Job, error) {
	s.userID = userID
	s.urls = imageURLs
	if s.err != nil {
		return nil, s.err
	}
	return s.job, nil
}

func (s *stubJobs) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	s.getArgs = jobID
	if s.err != nil {
		return nil, s.err
	}
	return s.job, nil
}

type stubPresigner struct {
	filename    string
	contentType string
}

func (s *stubPresigner) Presign(ctx context.Context, filename, contentType string) (*storage.PresignedUpload, error) {
	s.filename = filename
	s.contentType = contentType
	return &storage.PresignedUpload{URL: "https://signed", Method: "PUT", Bucket: "b", Key: "uploads/x"}, nil
}

func newTestRouter(app *handlers.App) http.Handler {
	return NewRouter(app, Options{Logger: infra.NopLogger()})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(handlers.NewApp(&stubProcessor{}, infra.NopLogger())), http.MethodGet, "/v1/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestProcessImageReturnsPipelineResponse(t *testing.T) {
	id := "abc_1"
	proc := &stubProcessor{resp: domain.ProcessingResponse{
		Success:    true,
		Message:    "Image processed successfully",
		Detections: []domain.DetectionResult{{Label: "person", Confidence: 0.95, BoundingBox: domain.BoundingBox{100, 150, 300, 500}}},
		ImageID:    &id,
	}}
	rec := do(t, newTestRouter(handlers.NewApp(proc, infra.NopLogger())), http.MethodPost, "/v1/images/process",
		`{"imageUrl":"https://mybucket.s3.amazonaws.com/photos/cat.jpg","userId":"u1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if proc.req.ImageURL != "https://mybucket.s3.amazonaws.com/photos/cat.jpg" || proc.req.UserID != "u1" {
		t.Fatalf("pipeline received %#v", proc.req)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["success"] != true || body["imageId"] != "abc_1" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestProcessImageFailureKeepsUniformShape(t *testing.T) {
	proc := &stubProcessor{resp: domain.ProcessingResponse{Message: "Error processing image: missing required parameters: imageUrl and userId"}}
	rec := do(t, newTestRouter(handlers.NewApp(proc, infra.NopLogger())), http.MethodPost, "/v1/images/process", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"detections":[]`) || !strings.Contains(rec.Body.String(), `"imageId":null`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestProcessImageRejectsInvalidJSON(t *testing.T) {
	rec := do(t, newTestRouter(handlers.NewApp(&stubProcessor{}, infra.NopLogger())), http.MethodPost, "/v1/images/process", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestJobRoutesOnlyMountedWithService(t *testing.T) {
	rec := do(t, newTestRouter(handlers.NewApp(&stubProcessor{}, infra.NopLogger())), http.MethodPost, "/v1/jobs", `{}`)
	if rec.Code != http.StatusNotFound && rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want jobs routes to be absent", rec.Code)
	}
}

func TestEnqueueJob(t *testing.T) {
	jobs := &stubJobs{job: &domain.Job{
		ID:        "4a8f0a36-2a0e-4f55-9a53-4d2f2f8b6a11",
		Status:    domain.JobStatusPending,
		ImageURLs: []string{"https://b.host/a", "https://b.host/b"},
	}}
	app := handlers.NewApp(&stubProcessor{}, infra.NopLogger())
	app.Jobs = jobs

	rec := do(t, newTestRouter(app), http.MethodPost, "/v1/jobs", `{"imageUrls":["https://b.host/a","https://b.host/b"],"userId":"u1"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["jobId"] != "4a8f0a36-2a0e-4f55-9a53-4d2f2f8b6a11" || body["status"] != "PENDING" || body["imageCount"] != float64(2) {
		t.Fatalf("unexpected body: %v", body)
	}
	if body["message"] != "Job created for 2 image(s)" {
		t.Fatalf("message = %v", body["message"])
	}
	if jobs.userID != "u1" || len(jobs.urls) != 2 {
		t.Fatalf("service received user=%q urls=%v", jobs.userID, jobs.urls)
	}
}

func TestEnqueueJobValidation(t *testing.T) {
	app := handlers.NewApp(&stubProcessor{}, infra.NopLogger())
	app.Jobs = &stubJobs{err: domain.ErrValidation}
	rec := do(t, newTestRouter(app), http.MethodPost, "/v1/jobs", `{"imageUrls":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGetJob(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	jobs := &stubJobs{job: &domain.Job{
		ID:        "4a8f0a36-2a0e-4f55-9a53-4d2f2f8b6a11",
		Status:    domain.JobStatusCompleted,
		ImageURLs: []string{"https://b.host/a"},
		Results:   []domain.ImageResult{{ImageURL: "https://b.host/a", DetectionCount: 1, Detections: []domain.DetectionResult{{Label: "car"}}}},
		Message:   "Processed 1 images successfully",
		CreatedAt: now,
		UpdatedAt: now,
	}}
	app := handlers.NewApp(&stubProcessor{}, infra.NopLogger())
	app.Jobs = jobs

	rec := do(t, newTestRouter(app), http.MethodGet, "/v1/jobs/4a8f0a36-2a0e-4f55-9a53-4d2f2f8b6a11", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if jobs.getArgs != "4a8f0a36-2a0e-4f55-9a53-4d2f2f8b6a11" {
		t.Fatalf("service received id %q", jobs.getArgs)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["status"] != "COMPLETED" || body["imageCount"] != float64(1) {
		t.Fatalf("unexpected body: %v", body)
	}
	if dets, ok := body["detections"].([]any); !ok || len(dets) != 1 {
		t.Fatalf("detections = %v", body["detections"])
	}
}

func TestGetJobNotFound(t *testing.T) {
	app := handlers.NewApp(&stubProcessor{}, infra.NopLogger())
	app.Jobs = &stubJobs{err: domain.ErrNotFound}
	rec := do(t, newTestRouter(app), http.MethodGet, "/v1/jobs/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	app.Jobs = &stubJobs{err: errors.New("db down")}
	rec = do(t, newTestRouter(app), http.MethodGet, "/v1/jobs/x", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestPresignUploadAcceptsSnakeCase(t *testing.T) {
	presigner := &stubPresigner{}
	app := handlers.NewApp(&stubProcessor{}, infra.NopLogger())
	app.Uploads = presigner

	rec := do(t, newTestRouter(app), http.MethodPost, "/v1/uploads/presign", `{"file_name":"cat.png","content_type":"image/png"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if presigner.filename != "cat.png" || presigner.contentType != "image/png" {
		t.Fatalf("presigner received %q %q", presigner.filename, presigner.contentType)
	}
	if !strings.Contains(rec.Body.String(), `"url":"https://signed"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
