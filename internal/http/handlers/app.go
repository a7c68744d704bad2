package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/storage"
)

// Processor runs the single-image pipeline.
type Processor interface {
	Process(ctx context.Context, req domain.ProcessingRequest) domain.ProcessingResponse
}

// JobService queues and looks up multi-image jobs.
type JobService interface {
	Enqueue(ctx context.Context, userID string, imageURLs []string, metadata map[string]any) (*domain.Job, error)
	Get(ctx context.Context, jobID string) (*domain.Job, error)
}

// Presigner issues signed upload URLs.
type Presigner interface {
	Presign(ctx context.Context, filename, contentType string) (*storage.PresignedUpload, error)
}

// App carries the dependencies shared by HTTP handlers. Jobs and Uploads are
// optional; their routes are only mounted when set.
type App struct {
	Pipeline Processor
	Jobs     JobService
	Uploads  Presigner
	Logger   infra.Logger
}

// NewApp builds an App around the pipeline.
func NewApp(pipeline Processor, logger infra.Logger) *App {
	return &App{Pipeline: pipeline, Logger: logger}
}

const maxBodyBytes = 1 << 20

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]any{"success": false, "error": kind, "message": message})
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

// log prefers the request-scoped logger installed by the logging middleware.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}
