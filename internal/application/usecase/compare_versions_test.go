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

func TestCompareVersions_Execute(t *testing.T) {
	t.Run("diffs weights and metrics in canonical order", func(t *testing.T) {
		// A carries equal weights at accuracy 0.85 / AUC 0.9; B skews
		// financial to 0.3 at accuracy 0.91 / AUC 0.95.
		a := draftVersion(t)
		b := registryVersion(t, skewedWeights())
		versions := &mockVersionRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.WeightVersion, error) {
				switch id {
				case a.ID():
					return a, nil
				case b.ID():
					return b, nil
				default:
					return model.WeightVersion{}, port.ErrVersionNotFound
				}
			},
		}
		uc := usecase.NewCompareVersions(versions)

		resp, err := uc.Execute(context.Background(), dto.CompareVersionsRequest{
			VersionA: a.ID(),
			VersionB: b.ID(),
		})

		require.NoError(t, err)
		assert.Equal(t, a.ID(), resp.VersionA.ID)
		assert.Equal(t, b.ID(), resp.VersionB.ID)

		require.Len(t, resp.Deltas, 8)
		financial := resp.Deltas[0]
		assert.Equal(t, "financial", financial.Category)
		assert.Equal(t, 0.125, financial.WeightA)
		assert.Equal(t, 0.3, financial.WeightB)
		assert.Equal(t, 0.175, financial.Delta)
		assert.Equal(t, 140.00, financial.PctChange)

		legal := resp.Deltas[1]
		assert.Equal(t, "legal", legal.Category)
		assert.Equal(t, -0.025, legal.Delta)
		assert.Equal(t, -20.00, legal.PctChange)

		assert.InDelta(t, 0.06, resp.AccuracyDelta, 1e-9)
		assert.InDelta(t, 0.05, resp.AUCDelta, 1e-9)
	})

	t.Run("zero base weight reports no percentage", func(t *testing.T) {
		zeroFinancial := skewedWeights()
		zeroFinancial["financial"] = 0
		zeroFinancial["legal"] = 0.4
		a := registryVersion(t, zeroFinancial)
		b := registryVersion(t, skewedWeights())
		versions := &mockVersionRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.WeightVersion, error) {
				if id == a.ID() {
					return a, nil
				}
				return b, nil
			},
		}
		uc := usecase.NewCompareVersions(versions)

		resp, err := uc.Execute(context.Background(), dto.CompareVersionsRequest{
			VersionA: a.ID(),
			VersionB: b.ID(),
		})

		require.NoError(t, err)
		financial := resp.Deltas[0]
		assert.Equal(t, 0.3, financial.Delta)
		assert.Equal(t, 0.00, financial.PctChange)
	})

	t.Run("unknown version fails", func(t *testing.T) {
		a := draftVersion(t)
		versions := &mockVersionRepository{
			findByIDFunc: func(ctx context.Context, id uuid.UUID) (model.WeightVersion, error) {
				if id == a.ID() {
					return a, nil
				}
				return model.WeightVersion{}, port.ErrVersionNotFound
			},
		}
		uc := usecase.NewCompareVersions(versions)

		_, err := uc.Execute(context.Background(), dto.CompareVersionsRequest{
			VersionA: a.ID(),
			VersionB: uuid.New(),
		})

		require.ErrorIs(t, err, port.ErrVersionNotFound)
		assert.Contains(t, err.Error(), "version B")
	})
}
