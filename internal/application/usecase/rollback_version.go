package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

// RollbackVersion is the use case for re-activating a previously active
// version. Mechanically it is an activation; it exists as its own command so
// rollbacks are explicit in the audit trail.
type RollbackVersion struct {
	versionRepo port.VersionRepository
	publisher   port.EventPublisher
	cache       *ActiveCache
	logger      *slog.Logger
}

// NewRollbackVersion creates a new RollbackVersion use case.
func NewRollbackVersion(
	versionRepo port.VersionRepository,
	publisher port.EventPublisher,
	cache *ActiveCache,
	logger *slog.Logger,
) *RollbackVersion {
	return &RollbackVersion{
		versionRepo: versionRepo,
		publisher:   publisher,
		cache:       cache,
		logger:      logger,
	}
}

// Execute re-activates the target version and reports which version it
// demoted.
func (uc *RollbackVersion) Execute(ctx context.Context, req dto.ActivateVersionRequest) (dto.ActivateVersionResponse, error) {
	version, err := uc.versionRepo.FindByID(ctx, req.VersionID)
	if err != nil {
		return dto.ActivateVersionResponse{}, fmt.Errorf("failed to get version: %w", err)
	}

	now := time.Now().UTC()

	activated, err := version.Activate(now)
	if err != nil {
		return dto.ActivateVersionResponse{}, fmt.Errorf("cannot roll back to version %s: %w", version.VersionTag(), err)
	}

	previousID, err := uc.versionRepo.ActivateExclusive(ctx, version.ID(), now)
	if err != nil {
		return dto.ActivateVersionResponse{}, fmt.Errorf("failed to activate version: %w", err)
	}

	uc.cache.Set(activated)

	evt := event.NewVersionActivated(activated.ID(), activated.VersionTag(), previousID)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Error("failed to publish domain events",
			"version_id", activated.ID(),
			"error", err,
		)
	}

	uc.logger.Warn("weights rolled back",
		"version_id", activated.ID(),
		"version_tag", activated.VersionTag(),
		"previous_version_id", previousID,
	)

	return dto.ActivateVersionResponse{
		Version:           dto.VersionFromModel(activated),
		PreviousVersionID: previousID,
	}, nil
}
