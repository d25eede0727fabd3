package usecase

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

// GetAssessment is the use case for reading one assessment from the history.
type GetAssessment struct {
	assessmentRepo port.AssessmentRepository
}

// NewGetAssessment creates a new GetAssessment use case.
func NewGetAssessment(assessmentRepo port.AssessmentRepository) *GetAssessment {
	return &GetAssessment{assessmentRepo: assessmentRepo}
}

// Execute retrieves one assessment by ID.
func (uc *GetAssessment) Execute(ctx context.Context, req dto.GetAssessmentRequest) (dto.AssessmentResponse, error) {
	assessment, err := uc.assessmentRepo.FindByID(ctx, req.AssessmentID)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to get assessment: %w", err)
	}
	return dto.AssessmentFromModel(assessment), nil
}
