package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/service"
)

// GetTrainingReadiness is the use case for checking whether enough labeled
// outcomes have accumulated to train. It runs the same dataset assembly as a
// real training run, so the numbers it reports are the numbers training
// would see.
type GetTrainingReadiness struct {
	builder *service.DatasetBuilder
}

// NewGetTrainingReadiness creates a new GetTrainingReadiness use case.
func NewGetTrainingReadiness(builder *service.DatasetBuilder) *GetTrainingReadiness {
	return &GetTrainingReadiness{builder: builder}
}

// Execute assembles the dataset and reports the labeled population. Too few
// rows is not an error here, it is the answer.
func (uc *GetTrainingReadiness) Execute(ctx context.Context) (dto.TrainingReadinessResponse, error) {
	_, summary, err := uc.builder.Build(ctx, 0)
	if err != nil && !errors.Is(err, service.ErrInsufficientData) {
		return dto.TrainingReadinessResponse{}, fmt.Errorf("failed to assemble dataset: %w", err)
	}

	return dto.TrainingReadinessResponse{
		Ready:           err == nil,
		TotalRecords:    summary.TotalRecords,
		UsableRows:      summary.UsableRows,
		SkippedRows:     summary.SkippedRows,
		MinimumRequired: uc.builder.MinSamples(),
		Outcomes:        summary.ByOutcome,
		ContractValue:   summary.ContractValue.String(),
		LossAmount:      summary.LossAmount.String(),
	}, nil
}
