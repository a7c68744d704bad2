package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"imageprocessor/internal/domain"
)

type enqueueJobRequest struct {
	ImageURLs []string       `json:"imageUrls"`
	UserID    string         `json:"userId"`
	Metadata  map[string]any `json:"metadata"`
}

type enqueueJobResponse struct {
	Success    bool   `json:"success"`
	JobID      string `json:"jobId"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	ImageCount int    `json:"imageCount"`
}

type jobStatusResponse struct {
	JobID      string               `json:"jobId"`
	Status     string               `json:"status"`
	ImageCount int                  `json:"imageCount"`
	Detections []domain.ImageResult `json:"detections"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
	Message    string               `json:"message"`
}

func (a *App) EnqueueJob(w http.ResponseWriter, r *http.Request) {
	var req enqueueJobRequest
	if !a.decode(w, r, &req) {
		return
	}
	job, err := a.Jobs.Enqueue(r.Context(), req.UserID, req.ImageURLs, req.Metadata)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			a.error(w, http.StatusBadRequest, "No image URLs provided", "Please provide imageUrls array")
			return
		}
		a.log(r).Error().Err(err).Msg("http: enqueue job failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		return
	}
	a.json(w, http.StatusAccepted, enqueueJobResponse{
		Success:    true,
		JobID:      job.ID,
		Status:     string(job.Status),
		Message:    fmt.Sprintf("Job created for %d image(s)", len(job.ImageURLs)),
		ImageCount: len(job.ImageURLs),
	})
}

func (a *App) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := a.Jobs.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			a.error(w, http.StatusNotFound, "not_found", "Job not found")
		case errors.Is(err, domain.ErrValidation):
			a.error(w, http.StatusBadRequest, "bad_request", "Job ID required")
		default:
			a.log(r).Error().Err(err).Str("job_id", id).Msg("http: load job failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load job")
		}
		return
	}
	results := job.Results
	if results == nil {
		results = []domain.ImageResult{}
	}
	a.json(w, http.StatusOK, jobStatusResponse{
		JobID:      job.ID,
		Status:     string(job.Status),
		ImageCount: len(job.ImageURLs),
		Detections: results,
		CreatedAt:  job.CreatedAt,
		UpdatedAt:  job.UpdatedAt,
		Message:    job.Message,
	})
}
