package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/model"
)

// TrainModelRequest is the input DTO for submitting a training run.
// MinSamples 0 and AutoApprove nil fall back to the configured defaults.
type TrainModelRequest struct {
	AutoApprove *bool  `json:"auto_approve,omitempty"`
	ModelFamily string `json:"model_family"`
	Description string `json:"description,omitempty"`
	MinSamples  int    `json:"min_samples,omitempty"`
}

// TrainModelResponse acknowledges a submitted training run.
type TrainModelResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// GetTrainingJobRequest is the input DTO for polling a training run.
type GetTrainingJobRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

// TrainingJobResponse is the output DTO for a training job record.
type TrainingJobResponse struct {
	SubmittedAt time.Time  `json:"submitted_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	JobID       uuid.UUID  `json:"job_id"`
	VersionID   uuid.UUID  `json:"version_id"`
	ModelFamily string     `json:"model_family"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
}

// JobFromModel maps a training job aggregate to the response DTO.
func JobFromModel(j *model.TrainingJob) TrainingJobResponse {
	return TrainingJobResponse{
		JobID:       j.ID(),
		VersionID:   j.VersionID(),
		ModelFamily: j.Family().String(),
		Status:      string(j.Status()),
		Error:       j.Error(),
		SubmittedAt: j.SubmittedAt(),
		StartedAt:   j.StartedAt(),
		FinishedAt:  j.FinishedAt(),
	}
}

// TrainingReadinessResponse reports whether enough labeled outcomes exist to
// train, and what the labeled population looks like.
type TrainingReadinessResponse struct {
	Outcomes        map[string]int `json:"outcomes"`
	TotalRecords    int            `json:"total_records"`
	UsableRows      int            `json:"usable_rows"`
	SkippedRows     int            `json:"skipped_rows"`
	MinimumRequired int            `json:"minimum_required"`
	Ready           bool           `json:"ready"`
	ContractValue   string         `json:"contract_value"`
	LossAmount      string         `json:"loss_amount"`
}
