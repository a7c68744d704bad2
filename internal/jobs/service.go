// Package jobs queues multi-image detection runs and processes them in a
// background worker.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"imageprocessor/internal/domain"
)

// ErrNoJobAvailable signals an empty queue.
var ErrNoJobAvailable = errors.New("no job available")

// Service creates and looks up jobs.
type Service struct {
	repo  domain.JobRepository
	newID func() string
}

// NewService wires a Service to a repository.
func NewService(repo domain.JobRepository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// Enqueue stores a PENDING job for the given images.
func (s *Service) Enqueue(ctx context.Context, userID string, imageURLs []string, metadata map[string]any) (*domain.Job, error) {
	urls := make([]string, 0, len(imageURLs))
	for _, u := range imageURLs {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		urls = append(urls, u)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("%w: no image URLs provided", domain.ErrValidation)
	}
	job := &domain.Job{
		ID:        s.newID(),
		UserID:    strings.TrimSpace(userID),
		Status:    domain.JobStatusPending,
		ImageURLs: urls,
		Metadata:  metadata,
		Message:   fmt.Sprintf("Job created for %d image(s)", len(urls)),
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// Get returns the job or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, jobID string) (*domain.Job, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, fmt.Errorf("%w: job id required", domain.ErrValidation)
	}
	return s.repo.GetByID(ctx, jobID)
}
