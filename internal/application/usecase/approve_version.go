package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

// defaultApprover is recorded when the request does not name who approved.
const defaultApprover = "manual"

// ApproveVersion is the use case for promoting a draft version to APPROVED.
type ApproveVersion struct {
	versionRepo port.VersionRepository
	publisher   port.EventPublisher
	logger      *slog.Logger
}

// NewApproveVersion creates a new ApproveVersion use case.
func NewApproveVersion(
	versionRepo port.VersionRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *ApproveVersion {
	return &ApproveVersion{
		versionRepo: versionRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Execute approves the version. Approving a version that already left DRAFT
// is reported, not failed, so retried requests stay safe.
func (uc *ApproveVersion) Execute(ctx context.Context, req dto.ApproveVersionRequest) (dto.ApproveVersionResponse, error) {
	version, err := uc.versionRepo.FindByID(ctx, req.VersionID)
	if err != nil {
		return dto.ApproveVersionResponse{}, fmt.Errorf("failed to get version: %w", err)
	}

	approvedBy := req.ApprovedBy
	if approvedBy == "" {
		approvedBy = defaultApprover
	}

	approved, alreadyApproved := version.Approve(approvedBy, time.Now().UTC())
	if alreadyApproved {
		return dto.ApproveVersionResponse{
			Version:         dto.VersionFromModel(approved),
			AlreadyApproved: true,
		}, nil
	}

	if err := uc.versionRepo.UpdateState(ctx, approved); err != nil {
		return dto.ApproveVersionResponse{}, fmt.Errorf("failed to save approval: %w", err)
	}

	// The approval is already durable; a broker outage only costs the
	// notification.
	evts := approved.DomainEvents()
	if len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			uc.logger.Error("failed to publish domain events",
				"version_id", approved.ID(),
				"error", err,
			)
		}
	}

	uc.logger.Info("version approved",
		"version_id", approved.ID(),
		"version_tag", approved.VersionTag(),
		"approved_by", approvedBy,
	)

	return dto.ApproveVersionResponse{Version: dto.VersionFromModel(approved)}, nil
}
