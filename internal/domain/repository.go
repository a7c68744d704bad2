package domain

import "context"

// JobRepository defines persistence for job entities.
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, jobID string) (*Job, error)
	ClaimNext(ctx context.Context) (*Job, error)
	Complete(ctx context.Context, jobID string, results []ImageResult, message string) error
	Fail(ctx context.Context, jobID string, message string) error
}
