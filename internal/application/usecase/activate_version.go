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

// ActivateVersion is the use case for promoting an approved version to
// ACTIVE. Promotion and the demotion of the previously active version happen
// in one registry transaction, so scoring never observes zero or two active
// versions.
type ActivateVersion struct {
	versionRepo port.VersionRepository
	publisher   port.EventPublisher
	cache       *ActiveCache
	logger      *slog.Logger
}

// NewActivateVersion creates a new ActivateVersion use case.
func NewActivateVersion(
	versionRepo port.VersionRepository,
	publisher port.EventPublisher,
	cache *ActiveCache,
	logger *slog.Logger,
) *ActivateVersion {
	return &ActivateVersion{
		versionRepo: versionRepo,
		publisher:   publisher,
		cache:       cache,
		logger:      logger,
	}
}

// Execute activates the version and reports which version it demoted.
func (uc *ActivateVersion) Execute(ctx context.Context, req dto.ActivateVersionRequest) (dto.ActivateVersionResponse, error) {
	version, err := uc.versionRepo.FindByID(ctx, req.VersionID)
	if err != nil {
		return dto.ActivateVersionResponse{}, fmt.Errorf("failed to get version: %w", err)
	}

	now := time.Now().UTC()

	// 1. Check the transition against the aggregate before touching the
	// registry.
	activated, err := version.Activate(now)
	if err != nil {
		return dto.ActivateVersionResponse{}, fmt.Errorf("cannot activate version %s: %w", version.VersionTag(), err)
	}

	// 2. Swap in the registry. Demotion of the previous version happens in
	// the same transaction.
	previousID, err := uc.versionRepo.ActivateExclusive(ctx, version.ID(), now)
	if err != nil {
		return dto.ActivateVersionResponse{}, fmt.Errorf("failed to activate version: %w", err)
	}

	// 3. Only now is the cache allowed to see the new version.
	uc.cache.Set(activated)

	// 4. Publish the activation. It is already durable; a broker outage only
	// costs the notification.
	evt := event.NewVersionActivated(activated.ID(), activated.VersionTag(), previousID)
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Error("failed to publish domain events",
			"version_id", activated.ID(),
			"error", err,
		)
	}

	uc.logger.Info("version activated",
		"version_id", activated.ID(),
		"version_tag", activated.VersionTag(),
		"previous_version_id", previousID,
	)

	return dto.ActivateVersionResponse{
		Version:           dto.VersionFromModel(activated),
		PreviousVersionID: previousID,
	}, nil
}
