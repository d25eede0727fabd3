package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/application/usecase"
	"github.com/FluentFlier/aegis/internal/domain/model"
)

func TestListAssessments_Execute(t *testing.T) {
	t.Run("passes paging through and maps results", func(t *testing.T) {
		supplierID := uuid.New()
		newer := scoredAssessment(t, supplierID, 70)
		older := scoredAssessment(t, supplierID, 30)
		var gotLimit, gotOffset int
		assessments := &mockAssessmentRepository{
			findBySupplierFunc: func(ctx context.Context, id uuid.UUID, limit, offset int) ([]*model.Assessment, error) {
				gotLimit, gotOffset = limit, offset
				return []*model.Assessment{newer, older}, nil
			},
		}
		uc := usecase.NewListAssessments(assessments)

		resp, err := uc.Execute(context.Background(), dto.ListAssessmentsRequest{
			SupplierID: supplierID,
			Limit:      10,
			Offset:     20,
		})

		require.NoError(t, err)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 20, gotOffset)
		require.Len(t, resp.Assessments, 2)
		assert.Equal(t, 70.00, resp.Assessments[0].Composite)
		assert.Equal(t, "NEGOTIATE", resp.Assessments[0].Recommendation)
		assert.Equal(t, 30.00, resp.Assessments[1].Composite)
		assert.Equal(t, "PROCEED", resp.Assessments[1].Recommendation)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		assessments := &mockAssessmentRepository{
			findBySupplierFunc: func(ctx context.Context, id uuid.UUID, limit, offset int) ([]*model.Assessment, error) {
				return nil, fmt.Errorf("history table unreachable")
			},
		}
		uc := usecase.NewListAssessments(assessments)

		_, err := uc.Execute(context.Background(), dto.ListAssessmentsRequest{SupplierID: uuid.New()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to list assessments")
	})
}
