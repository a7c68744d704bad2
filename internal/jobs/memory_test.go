package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"imageprocessor/internal/domain"
)

// memoryRepo is an in-process JobRepository used by the tests.
type memoryRepo struct {
	mu        sync.Mutex
	jobs      map[string]*domain.Job
	order     []string
	createErr error
	claimErr  error
	doneErr   error
	failed    map[string]string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{jobs: map[string]*domain.Job{}, failed: map[string]string{}}
}

func (m *memoryRepo) Create(ctx context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	now := time.Now()
	job.CreatedAt, job.UpdatedAt = now, now
	cp := *job
	m.jobs[job.ID] = &cp
	m.order = append(m.order, job.ID)
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *memoryRepo) ClaimNext(ctx context.Context) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return nil, m.claimErr
	}
	for _, id := range m.order {
		job := m.jobs[id]
		if job.Status == domain.JobStatusPending {
			job.Status = domain.JobStatusRunning
			cp := *job
			return &cp, nil
		}
	}
	return nil, ErrNoJobAvailable
}

func (m *memoryRepo) Complete(ctx context.Context, jobID string, results []domain.ImageResult, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doneErr != nil {
		return m.doneErr
	}
	job, ok := m.jobs[jobID]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = domain.JobStatusCompleted
	job.Results = results
	job.Message = message
	return nil
}

func (m *memoryRepo) Fail(ctx context.Context, jobID string, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return errors.New("missing job")
	}
	job.Status = domain.JobStatusFailed
	job.Message = message
	m.failed[jobID] = message
	return nil
}

var _ domain.JobRepository = (*memoryRepo)(nil)
