package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/service"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// ScoreSupplier is the use case for assessing a supplier: weight the category
// scores with the active version, derive the recommendation tier, persist the
// assessment, and raise an alert when the score crosses an alert band.
type ScoreSupplier struct {
	assessmentRepo port.AssessmentRepository
	versionRepo    port.VersionRepository
	scorer         *service.CompositeScorer
	alerts         port.AlertSink
	publisher      port.EventPublisher
	cache          *ActiveCache
	logger         *slog.Logger
}

// NewScoreSupplier creates a new ScoreSupplier use case.
func NewScoreSupplier(
	assessmentRepo port.AssessmentRepository,
	versionRepo port.VersionRepository,
	scorer *service.CompositeScorer,
	alerts port.AlertSink,
	publisher port.EventPublisher,
	cache *ActiveCache,
	logger *slog.Logger,
) *ScoreSupplier {
	return &ScoreSupplier{
		assessmentRepo: assessmentRepo,
		versionRepo:    versionRepo,
		scorer:         scorer,
		alerts:         alerts,
		publisher:      publisher,
		cache:          cache,
		logger:         logger,
	}
}

// Execute scores the supplier and persists the assessment.
func (uc *ScoreSupplier) Execute(ctx context.Context, req dto.ScoreRequest) (dto.ScoreResponse, error) {
	// 1. Validate the category scores.
	scores, err := valueobject.CategoryScoresFromStrings(req.Scores)
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("invalid category scores: %w", err)
	}

	// 2. Resolve the weight vector: the per-request override wins, then the
	// active version, then the equal-weights bootstrap.
	weights, versionID, versionTag, err := uc.resolveWeights(ctx, req.Weights)
	if err != nil {
		return dto.ScoreResponse{}, err
	}

	// 3. Create the assessment aggregate.
	assessment, err := model.NewAssessment(req.SupplierID, req.ContractID, scores)
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}

	// 4. Compute the weighted composite via the domain service.
	composite, err := uc.scorer.Score(scores, weights)
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("failed to compute composite score: %w", err)
	}

	// 5. Apply the score (this derives the recommendation and alert band).
	if err := assessment.Score(composite, versionID, versionTag, req.Confidence); err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("failed to score assessment: %w", err)
	}

	// 6. Persist the assessment.
	if err := uc.assessmentRepo.Save(ctx, assessment); err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("failed to save assessment: %w", err)
	}

	// 7. Raise the alert when the score crossed a band. Delivery is
	// best-effort and never fails the assessment that raised it.
	if severity, ok := assessment.AlertSeverity(); ok {
		alert := port.RiskAlert{
			AssessmentID:   assessment.ID(),
			SupplierID:     assessment.SupplierID(),
			ContractID:     assessment.ContractID(),
			CompositeScore: assessment.Composite(),
			Severity:       severity,
			Recommendation: assessment.Recommendation(),
			EmittedAt:      time.Now().UTC(),
		}
		if err := uc.alerts.EmitRiskAlert(ctx, alert); err != nil {
			uc.logger.Warn("risk alert not delivered",
				"assessment_id", assessment.ID(),
				"supplier_id", assessment.SupplierID(),
				"severity", severity.String(),
				"error", err,
			)
		}
	}

	// 8. Publish domain events.
	evts := assessment.DomainEvents()
	if len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.ScoreResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	contributions, err := uc.scorer.Contributions(scores, weights)
	if err != nil {
		return dto.ScoreResponse{}, fmt.Errorf("failed to compute contributions: %w", err)
	}
	byName := make(map[string]float64, len(contributions))
	for c, v := range contributions {
		byName[c.String()] = v
	}

	return dto.ScoreResponseFromModel(assessment, byName), nil
}

// resolveWeights picks the weight vector for one scoring call and names its
// origin: the registry version ID and tag, or the manual/bootstrap sentinel
// tags with a nil ID.
func (uc *ScoreSupplier) resolveWeights(ctx context.Context, override map[string]float64) (valueobject.Weights, uuid.UUID, string, error) {
	if len(override) > 0 {
		w, err := valueobject.WeightsFromStrings(override)
		if err != nil {
			return valueobject.Weights{}, uuid.Nil, "", fmt.Errorf("invalid weight override: %w", err)
		}
		return w, uuid.Nil, model.ManualWeightsTag, nil
	}

	if v, ok := uc.cache.Get(); ok {
		return v.Weights(), v.ID(), v.VersionTag(), nil
	}

	version, err := uc.versionRepo.FindActive(ctx)
	if errors.Is(err, port.ErrNoActiveVersion) {
		uc.logger.Warn("no active weight version, scoring with equal-weights bootstrap")
		return valueobject.EqualWeights(), uuid.Nil, model.BootstrapVersionTag, nil
	}
	if err != nil {
		return valueobject.Weights{}, uuid.Nil, "", fmt.Errorf("failed to get active version: %w", err)
	}

	uc.cache.Set(version)
	return version.Weights(), version.ID(), version.VersionTag(), nil
}
