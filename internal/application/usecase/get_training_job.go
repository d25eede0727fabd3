package usecase

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

// GetTrainingJob is the use case for polling a training run.
type GetTrainingJob struct {
	jobRepo port.TrainingJobRepository
}

// NewGetTrainingJob creates a new GetTrainingJob use case.
func NewGetTrainingJob(jobRepo port.TrainingJobRepository) *GetTrainingJob {
	return &GetTrainingJob{jobRepo: jobRepo}
}

// Execute retrieves one job record by ID.
func (uc *GetTrainingJob) Execute(ctx context.Context, req dto.GetTrainingJobRequest) (dto.TrainingJobResponse, error) {
	job, err := uc.jobRepo.FindByID(ctx, req.JobID)
	if err != nil {
		return dto.TrainingJobResponse{}, fmt.Errorf("failed to get training job: %w", err)
	}
	return dto.JobFromModel(job), nil
}
