package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// CompareVersions is the use case for diffing two ledger entries: how each
// category's weight moved, and how the model metrics moved with it.
type CompareVersions struct {
	versionRepo port.VersionRepository
}

// NewCompareVersions creates a new CompareVersions use case.
func NewCompareVersions(versionRepo port.VersionRepository) *CompareVersions {
	return &CompareVersions{versionRepo: versionRepo}
}

// Execute diffs version A against version B. Deltas are B minus A, in
// canonical category order; percentage change is reported as zero when A's
// weight is zero.
func (uc *CompareVersions) Execute(ctx context.Context, req dto.CompareVersionsRequest) (dto.CompareVersionsResponse, error) {
	a, err := uc.versionRepo.FindByID(ctx, req.VersionA)
	if err != nil {
		return dto.CompareVersionsResponse{}, fmt.Errorf("failed to get version A: %w", err)
	}
	b, err := uc.versionRepo.FindByID(ctx, req.VersionB)
	if err != nil {
		return dto.CompareVersionsResponse{}, fmt.Errorf("failed to get version B: %w", err)
	}

	deltas := make([]dto.WeightDelta, 0, valueobject.NumCategories)
	for _, c := range valueobject.Categories() {
		wa := a.Weights().Get(c)
		wb := b.Weights().Get(c)
		pct := 0.0
		if wa > 0 {
			pct = round2((wb - wa) / wa * 100)
		}
		deltas = append(deltas, dto.WeightDelta{
			Category:  c.String(),
			WeightA:   wa,
			WeightB:   wb,
			Delta:     round4(wb - wa),
			PctChange: pct,
		})
	}

	return dto.CompareVersionsResponse{
		VersionA:      dto.VersionFromModel(a),
		VersionB:      dto.VersionFromModel(b),
		Deltas:        deltas,
		AccuracyDelta: b.Provenance().Accuracy - a.Provenance().Accuracy,
		AUCDelta:      b.Provenance().ROCAUC - a.Provenance().ROCAUC,
	}, nil
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
