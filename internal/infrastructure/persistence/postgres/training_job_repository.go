package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.TrainingJobRepository = (*TrainingJobRepository)(nil)

// TrainingJobRepository implements port.TrainingJobRepository using
// PostgreSQL, so job status survives a process restart and stays pollable.
type TrainingJobRepository struct {
	pool *pgxpool.Pool
}

// NewTrainingJobRepository creates a new PostgreSQL-backed job repository.
func NewTrainingJobRepository(pool *pgxpool.Pool) *TrainingJobRepository {
	return &TrainingJobRepository{pool: pool}
}

// Save inserts a newly submitted job.
func (r *TrainingJobRepository) Save(ctx context.Context, job *model.TrainingJob) error {
	query := `
		INSERT INTO training_jobs (
			id, model_family, status, error_message, version_id,
			submitted_at, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		job.ID(),
		job.Family().String(),
		string(job.Status()),
		job.Error(),
		nullableUUID(job.VersionID()),
		job.SubmittedAt(),
		job.StartedAt(),
		job.FinishedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save training job: %w", err)
	}

	return nil
}

// Update persists a job state transition.
func (r *TrainingJobRepository) Update(ctx context.Context, job *model.TrainingJob) error {
	query := `
		UPDATE training_jobs
		SET status = $2, error_message = $3, version_id = $4, started_at = $5, finished_at = $6
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		job.ID(),
		string(job.Status()),
		job.Error(),
		nullableUUID(job.VersionID()),
		job.StartedAt(),
		job.FinishedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to update training job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrJobNotFound
	}

	return nil
}

// FindByID retrieves a job by its unique identifier.
func (r *TrainingJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingJob, error) {
	query := `
		SELECT id, model_family, status, error_message, version_id,
			submitted_at, started_at, finished_at
		FROM training_jobs
		WHERE id = $1
	`

	var (
		jobID       uuid.UUID
		familyStr   string
		statusStr   string
		errMsg      string
		versionID   *uuid.UUID
		submittedAt time.Time
		startedAt   *time.Time
		finishedAt  *time.Time
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&jobID, &familyStr, &statusStr, &errMsg, &versionID,
		&submittedAt, &startedAt, &finishedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, port.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to scan training job: %w", err)
	}

	family, err := valueobject.ModelFamilyFromString(familyStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model family: %w", err)
	}

	return model.ReconstructTrainingJob(
		jobID, family, model.JobStatus(statusStr), errMsg,
		derefUUID(versionID), submittedAt, startedAt, finishedAt,
	), nil
}
