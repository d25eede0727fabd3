package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/application/usecase"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

func TestListVersions_Execute(t *testing.T) {
	t.Run("maps the filter and the results", func(t *testing.T) {
		a := draftVersion(t)
		b := approvedVersion(t)
		var captured port.VersionFilter
		versions := &mockVersionRepository{
			listFunc: func(ctx context.Context, filter port.VersionFilter) ([]model.WeightVersion, error) {
				captured = filter
				return []model.WeightVersion{b, a}, nil
			},
		}
		uc := usecase.NewListVersions(versions)

		resp, err := uc.Execute(context.Background(), dto.ListVersionsRequest{
			States: []string{"DRAFT", "APPROVED"},
			Limit:  20,
			Offset: 40,
		})

		require.NoError(t, err)
		assert.Equal(t, []valueobject.VersionState{
			valueobject.VersionStateDraft,
			valueobject.VersionStateApproved,
		}, captured.States)
		assert.Equal(t, 20, captured.Limit)
		assert.Equal(t, 40, captured.Offset)

		require.Len(t, resp.Versions, 2)
		assert.Equal(t, b.ID(), resp.Versions[0].ID)
		assert.Equal(t, a.ID(), resp.Versions[1].ID)
		assert.Equal(t, "logistic", resp.Versions[0].ModelFamily)
	})

	t.Run("rejects an unknown state", func(t *testing.T) {
		uc := usecase.NewListVersions(&mockVersionRepository{})

		_, err := uc.Execute(context.Background(), dto.ListVersionsRequest{States: []string{"PUBLISHED"}})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid version state")
	})

	t.Run("empty ledger lists empty", func(t *testing.T) {
		uc := usecase.NewListVersions(&mockVersionRepository{})

		resp, err := uc.Execute(context.Background(), dto.ListVersionsRequest{})

		require.NoError(t, err)
		assert.Empty(t, resp.Versions)
	})
}
