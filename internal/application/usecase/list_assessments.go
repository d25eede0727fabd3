package usecase

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

// ListAssessments is the use case for browsing a supplier's assessment
// history.
type ListAssessments struct {
	assessmentRepo port.AssessmentRepository
}

// NewListAssessments creates a new ListAssessments use case.
func NewListAssessments(assessmentRepo port.AssessmentRepository) *ListAssessments {
	return &ListAssessments{assessmentRepo: assessmentRepo}
}

// Execute lists the supplier's assessments, newest first.
func (uc *ListAssessments) Execute(ctx context.Context, req dto.ListAssessmentsRequest) (dto.ListAssessmentsResponse, error) {
	assessments, err := uc.assessmentRepo.FindBySupplier(ctx, req.SupplierID, req.Limit, req.Offset)
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("failed to list assessments: %w", err)
	}

	out := make([]dto.AssessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, dto.AssessmentFromModel(a))
	}
	return dto.ListAssessmentsResponse{Assessments: out}, nil
}
