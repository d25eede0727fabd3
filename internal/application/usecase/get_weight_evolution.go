package usecase

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// GetWeightEvolution is the use case for reading how the learned weights
// moved across versions over time. Drafts are excluded: only versions that
// passed approval are part of the weight history.
type GetWeightEvolution struct {
	versionRepo port.VersionRepository
}

// NewGetWeightEvolution creates a new GetWeightEvolution use case.
func NewGetWeightEvolution(versionRepo port.VersionRepository) *GetWeightEvolution {
	return &GetWeightEvolution{versionRepo: versionRepo}
}

// Execute returns the weight series, oldest first. A category narrows each
// point to that category's weight; otherwise points carry full vectors.
func (uc *GetWeightEvolution) Execute(ctx context.Context, req dto.WeightEvolutionRequest) (dto.WeightEvolutionResponse, error) {
	var category valueobject.Category
	narrow := req.Category != ""
	if narrow {
		c, err := valueobject.CategoryFromString(req.Category)
		if err != nil {
			return dto.WeightEvolutionResponse{}, err
		}
		category = c
	}

	versions, err := uc.versionRepo.List(ctx, port.VersionFilter{
		States: []valueobject.VersionState{
			valueobject.VersionStateApproved,
			valueobject.VersionStateActive,
			valueobject.VersionStateInactive,
		},
	})
	if err != nil {
		return dto.WeightEvolutionResponse{}, fmt.Errorf("failed to list versions: %w", err)
	}

	// The ledger lists newest first; the series reads oldest first.
	points := make([]dto.EvolutionPoint, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		p := dto.EvolutionPoint{
			VersionID:  v.ID(),
			VersionTag: v.VersionTag(),
			State:      v.State().String(),
			Accuracy:   v.Provenance().Accuracy,
			ROCAUC:     v.Provenance().ROCAUC,
			CreatedAt:  v.CreatedAt(),
		}
		if narrow {
			w := v.Weights().Get(category)
			p.Weight = &w
		} else {
			p.Weights = v.Weights().StringMap()
		}
		points = append(points, p)
	}

	return dto.WeightEvolutionResponse{
		Category: req.Category,
		Points:   points,
	}, nil
}
