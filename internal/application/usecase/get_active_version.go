package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

// GetActiveVersion is the use case for reading the weights that scoring is
// currently using. When no version has ever been activated it serves the
// documented equal-weights bootstrap instead of failing, so scoring works
// from the first request.
type GetActiveVersion struct {
	versionRepo port.VersionRepository
	cache       *ActiveCache
	logger      *slog.Logger
}

// NewGetActiveVersion creates a new GetActiveVersion use case.
func NewGetActiveVersion(
	versionRepo port.VersionRepository,
	cache *ActiveCache,
	logger *slog.Logger,
) *GetActiveVersion {
	return &GetActiveVersion{
		versionRepo: versionRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Execute returns the active version, or the bootstrap fallback.
func (uc *GetActiveVersion) Execute(ctx context.Context) (dto.VersionResponse, error) {
	if v, ok := uc.cache.Get(); ok {
		return dto.VersionFromModel(v), nil
	}

	version, err := uc.versionRepo.FindActive(ctx)
	if errors.Is(err, port.ErrNoActiveVersion) {
		uc.logger.Warn("no active weight version, serving equal-weights bootstrap")
		return dto.BootstrapVersionResponse(), nil
	}
	if err != nil {
		return dto.VersionResponse{}, fmt.Errorf("failed to get active version: %w", err)
	}

	uc.cache.Set(version)
	return dto.VersionFromModel(version), nil
}
