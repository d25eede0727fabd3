package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/application/usecase"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

func TestGetAssessment_Execute(t *testing.T) {
	t.Run("maps a stored assessment", func(t *testing.T) {
		supplierID := uuid.New()
		stored := scoredAssessment(t, supplierID, 85)
		assessments := &mockAssessmentRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
				return stored, nil
			},
		}
		uc := usecase.NewGetAssessment(assessments)

		resp, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: stored.ID()})

		require.NoError(t, err)
		assert.Equal(t, stored.ID(), resp.AssessmentID)
		assert.Equal(t, supplierID, resp.SupplierID)
		assert.Equal(t, 85.00, resp.Composite)
		assert.Equal(t, "REPLACE", resp.Recommendation)
		assert.Equal(t, "critical", resp.AlertSeverity)
		assert.Equal(t, model.BootstrapVersionTag, resp.VersionTag)
		assert.Equal(t, 50.0, resp.Scores["legal"])
	})

	t.Run("unknown assessment fails", func(t *testing.T) {
		uc := usecase.NewGetAssessment(&mockAssessmentRepository{})

		_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{AssessmentID: uuid.New()})

		require.ErrorIs(t, err, port.ErrAssessmentNotFound)
	})
}
