package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
)

const defaultPollInterval = 2 * time.Second

// Analyzer fetches and runs detection on one image.
type Analyzer interface {
	Analyze(ctx context.Context, imageURL string) ([]domain.DetectionResult, error)
}

// Worker drains the job queue one job at a time.
type Worker struct {
	repo         domain.JobRepository
	analyzer     Analyzer
	logger       infra.Logger
	pollInterval time.Duration
}

// NewWorker builds a worker. pollInterval<=0 uses two seconds.
func NewWorker(repo domain.JobRepository, analyzer Analyzer, logger infra.Logger, pollInterval time.Duration) *Worker {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &Worker{repo: repo, analyzer: analyzer, logger: logger, pollInterval: pollInterval}
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info().Dur("poll_interval", w.pollInterval).Msg("worker: started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessNext(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error().Err(err).Msg("worker: failed to process job")
		}
		if processed && err == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.pollInterval):
		}
	}
}

// ProcessNext claims and processes at most one job. It reports whether a job
// was claimed.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	job, err := w.repo.ClaimNext(ctx)
	if err != nil {
		if errors.Is(err, ErrNoJobAvailable) {
			return false, nil
		}
		return false, fmt.Errorf("claim job: %w", err)
	}
	w.handleJob(ctx, job)
	return true, nil
}

func (w *Worker) handleJob(ctx context.Context, job *domain.Job) {
	w.logger.Info().Str("job_id", job.ID).Int("images", len(job.ImageURLs)).Msg("worker: picked job")

	results := make([]domain.ImageResult, 0, len(job.ImageURLs))
	for idx, imageURL := range job.ImageURLs {
		if ctx.Err() != nil {
			break
		}
		w.logger.Debug().Str("job_id", job.ID).Int("index", idx).Str("image_url", imageURL).Msg("worker: processing image")
		result := domain.ImageResult{ImageURL: imageURL, ImageIndex: idx, Detections: []domain.DetectionResult{}}
		detections, err := w.analyzer.Analyze(ctx, imageURL)
		if err != nil {
			w.logger.Warn().Err(err).Str("job_id", job.ID).Str("image_url", imageURL).Msg("worker: image failed")
			result.Error = err.Error()
		} else {
			result.Detections = detections
			result.DetectionCount = len(detections)
		}
		results = append(results, result)
	}

	// Status updates must land even when the worker is shutting down.
	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := ctx.Err(); err != nil {
		w.fail(persistCtx, job.ID, "worker stopped before completing job")
		return
	}
	message := fmt.Sprintf("Processed %d images successfully", len(job.ImageURLs))
	if err := w.repo.Complete(persistCtx, job.ID, results, message); err != nil {
		w.logger.Error().Err(err).Str("job_id", job.ID).Msg("worker: complete job failed")
		w.fail(persistCtx, job.ID, err.Error())
		return
	}
	w.logger.Info().Str("job_id", job.ID).Msg("worker: job completed")
}

func (w *Worker) fail(ctx context.Context, jobID, message string) {
	if err := w.repo.Fail(ctx, jobID, message); err != nil {
		w.logger.Error().Err(err).Str("job_id", jobID).Msg("worker: update status failed")
	}
}
