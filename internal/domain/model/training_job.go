package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// JobStatus tracks a training job through its lifecycle.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// TrainingJob records one asynchronous training run so callers can poll its
// progress and find the version it produced.
type TrainingJob struct {
	submittedAt time.Time
	startedAt   *time.Time
	finishedAt  *time.Time
	status      JobStatus
	errMsg      string
	family      valueobject.ModelFamily
	versionID   uuid.UUID
	id          uuid.UUID
}

// NewTrainingJob creates a pending job for the given model family.
func NewTrainingJob(family valueobject.ModelFamily, now time.Time) (*TrainingJob, error) {
	if family.IsZero() {
		return nil, fmt.Errorf("model family is required")
	}
	return &TrainingJob{
		id:          uuid.New(),
		family:      family,
		status:      JobStatusPending,
		submittedAt: now,
	}, nil
}

// Start marks the job as running.
func (j *TrainingJob) Start(now time.Time) error {
	if j.status != JobStatusPending {
		return fmt.Errorf("cannot start job in status %s", j.status)
	}
	j.status = JobStatusRunning
	startedAt := now
	j.startedAt = &startedAt
	return nil
}

// Complete marks the job as completed, recording the version it produced.
func (j *TrainingJob) Complete(versionID uuid.UUID, now time.Time) error {
	if j.status != JobStatusRunning {
		return fmt.Errorf("cannot complete job in status %s", j.status)
	}
	if versionID == uuid.Nil {
		return fmt.Errorf("version ID is required")
	}
	j.status = JobStatusCompleted
	j.versionID = versionID
	finishedAt := now
	j.finishedAt = &finishedAt
	return nil
}

// Fail marks the job as failed with the reason callers will see when polling.
func (j *TrainingJob) Fail(reason string, now time.Time) error {
	if j.status != JobStatusPending && j.status != JobStatusRunning {
		return fmt.Errorf("cannot fail job in status %s", j.status)
	}
	j.status = JobStatusFailed
	j.errMsg = reason
	finishedAt := now
	j.finishedAt = &finishedAt
	return nil
}

// ReconstructTrainingJob rebuilds a TrainingJob from persisted data.
func ReconstructTrainingJob(
	id uuid.UUID,
	family valueobject.ModelFamily,
	status JobStatus,
	errMsg string,
	versionID uuid.UUID,
	submittedAt time.Time,
	startedAt, finishedAt *time.Time,
) *TrainingJob {
	return &TrainingJob{
		id:          id,
		family:      family,
		status:      status,
		errMsg:      errMsg,
		versionID:   versionID,
		submittedAt: submittedAt,
		startedAt:   startedAt,
		finishedAt:  finishedAt,
	}
}

// --- Accessors ---

func (j *TrainingJob) ID() uuid.UUID                       { return j.id }
func (j *TrainingJob) Family() valueobject.ModelFamily     { return j.family }
func (j *TrainingJob) Status() JobStatus                   { return j.status }
func (j *TrainingJob) Error() string                       { return j.errMsg }
func (j *TrainingJob) VersionID() uuid.UUID                { return j.versionID }
func (j *TrainingJob) SubmittedAt() time.Time              { return j.submittedAt }
func (j *TrainingJob) StartedAt() *time.Time               { return j.startedAt }
func (j *TrainingJob) FinishedAt() *time.Time              { return j.finishedAt }

// IsTerminal reports whether the job has finished, successfully or not.
func (j *TrainingJob) IsTerminal() bool {
	return j.status == JobStatusCompleted || j.status == JobStatusFailed
}
