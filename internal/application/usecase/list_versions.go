package usecase

import (
	"context"
	"fmt"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// ListVersions is the use case for browsing the version ledger.
type ListVersions struct {
	versionRepo port.VersionRepository
}

// NewListVersions creates a new ListVersions use case.
func NewListVersions(versionRepo port.VersionRepository) *ListVersions {
	return &ListVersions{versionRepo: versionRepo}
}

// Execute lists ledger entries, newest first.
func (uc *ListVersions) Execute(ctx context.Context, req dto.ListVersionsRequest) (dto.ListVersionsResponse, error) {
	states := make([]valueobject.VersionState, 0, len(req.States))
	for _, s := range req.States {
		state, err := valueobject.VersionStateFromString(s)
		if err != nil {
			return dto.ListVersionsResponse{}, err
		}
		states = append(states, state)
	}

	versions, err := uc.versionRepo.List(ctx, port.VersionFilter{
		States: states,
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return dto.ListVersionsResponse{}, fmt.Errorf("failed to list versions: %w", err)
	}

	out := make([]dto.VersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, dto.VersionFromModel(v))
	}
	return dto.ListVersionsResponse{Versions: out}, nil
}
