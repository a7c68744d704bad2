package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/sqlinline"
)

// PostgresRepository stores jobs in the image_jobs table.
type PostgresRepository struct {
	sql infra.SQLExecutor
}

// NewPostgresRepository wraps a SQL executor.
func NewPostgresRepository(sql infra.SQLExecutor) *PostgresRepository {
	return &PostgresRepository{sql: sql}
}

// EnsureSchema creates the jobs table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, q := range []string{sqlinline.QCreateImageJobsTable, sqlinline.QCreateImageJobsStatusIndex} {
		if _, err := r.sql.Exec(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, job *domain.Job) error {
	id, err := uuid.Parse(job.ID)
	if err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	urls, err := json.Marshal(job.ImageURLs)
	if err != nil {
		return fmt.Errorf("encode image urls: %w", err)
	}
	metadata := job.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	meta, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertImageJob, id, job.UserID, urls, meta, job.Message)
	if err := row.Scan(&job.CreatedAt, &job.UpdatedAt); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	job.Status = domain.JobStatusPending
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, jobID string) (*domain.Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	job, err := scanJob(r.sql.QueryRow(ctx, sqlinline.QSelectImageJob, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ClaimNext moves the oldest pending job to RUNNING. It returns
// ErrNoJobAvailable when the queue is empty.
func (r *PostgresRepository) ClaimNext(ctx context.Context) (*domain.Job, error) {
	job, err := scanJob(r.sql.QueryRow(ctx, sqlinline.QClaimImageJob))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, ErrNoJobAvailable
		}
		return nil, err
	}
	return job, nil
}

func (r *PostgresRepository) Complete(ctx context.Context, jobID string, results []domain.ImageResult, message string) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	if results == nil {
		results = []domain.ImageResult{}
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QCompleteImageJob, id, raw, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Fail(ctx context.Context, jobID string, message string) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return fmt.Errorf("job id: %w", err)
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QFailImageJob, id, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job                   domain.Job
		status                string
		urls, meta, resultRaw []byte
	)
	if err := row.Scan(&job.ID, &job.UserID, &status, &urls, &meta, &resultRaw, &job.Message, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	if len(urls) > 0 {
		if err := json.Unmarshal(urls, &job.ImageURLs); err != nil {
			return nil, fmt.Errorf("decode image urls: %w", err)
		}
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &job.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
	}
	if len(resultRaw) > 0 {
		if err := json.Unmarshal(resultRaw, &job.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
	}
	return &job, nil
}

var _ domain.JobRepository = (*PostgresRepository)(nil)
