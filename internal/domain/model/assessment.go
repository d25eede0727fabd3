package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/pkg/events"
)

// Assessment is the aggregate root for supplier risk assessments. Once scored
// it is append-only: the per-subject history is never rewritten.
type Assessment struct {
	assessedAt     time.Time
	versionTag     string
	scores         valueobject.CategoryScores
	recommendation valueobject.Recommendation
	confidence     *float64
	domainEvents   []events.DomainEvent
	composite      float64
	supplierID     uuid.UUID
	contractID     uuid.UUID
	versionID      uuid.UUID
	id             uuid.UUID
}

// NewAssessment creates a new assessment for a supplier. ContractID may be
// uuid.Nil when the assessment is not tied to a specific contract. The
// assessment starts unscored; call Score() once the composite is computed.
func NewAssessment(
	supplierID uuid.UUID,
	contractID uuid.UUID,
	scores valueobject.CategoryScores,
) (*Assessment, error) {
	if supplierID == uuid.Nil {
		return nil, fmt.Errorf("supplier ID is required")
	}
	if scores.IsZero() {
		return nil, fmt.Errorf("category scores are required")
	}

	return &Assessment{
		id:         uuid.New(),
		supplierID: supplierID,
		contractID: contractID,
		scores:     scores,
	}, nil
}

// Score records the weighted composite and which weight version produced it,
// deriving the recommendation tier. This is the core domain operation; it
// emits AssessmentCompleted, plus HighRiskDetected when the score reaches an
// alert band.
func (a *Assessment) Score(composite float64, versionID uuid.UUID, versionTag string, confidence *float64) error {
	if composite < 0 || composite > 100 {
		return fmt.Errorf("composite score must be between 0 and 100, got %.2f", composite)
	}
	if versionTag == "" {
		return fmt.Errorf("version tag is required")
	}

	a.composite = composite
	a.versionID = versionID
	a.versionTag = versionTag
	a.confidence = confidence
	a.recommendation = valueobject.RecommendationFromScore(composite)
	a.assessedAt = time.Now().UTC()

	a.domainEvents = append(a.domainEvents, event.NewAssessmentCompleted(
		a.id, a.supplierID, a.contractID,
		a.composite, a.recommendation.String(), a.versionID, a.assessedAt,
	))

	if severity, ok := valueobject.AlertSeverityFromScore(composite); ok {
		a.domainEvents = append(a.domainEvents, event.NewHighRiskDetected(
			a.id, a.supplierID, a.contractID,
			a.composite, severity.String(), a.assessedAt,
		))
	}

	return nil
}

// ReconstructAssessment rebuilds an Assessment from persisted data (no validation, no events).
func ReconstructAssessment(
	id, supplierID, contractID uuid.UUID,
	scores valueobject.CategoryScores,
	composite float64,
	recommendation valueobject.Recommendation,
	confidence *float64,
	versionID uuid.UUID,
	versionTag string,
	assessedAt time.Time,
) *Assessment {
	return &Assessment{
		id:             id,
		supplierID:     supplierID,
		contractID:     contractID,
		scores:         scores,
		composite:      composite,
		recommendation: recommendation,
		confidence:     confidence,
		versionID:      versionID,
		versionTag:     versionTag,
		assessedAt:     assessedAt,
		domainEvents:   make([]events.DomainEvent, 0),
	}
}

// --- Accessors ---

func (a *Assessment) ID() uuid.UUID                             { return a.id }
func (a *Assessment) SupplierID() uuid.UUID                     { return a.supplierID }
func (a *Assessment) ContractID() uuid.UUID                     { return a.contractID }
func (a *Assessment) Scores() valueobject.CategoryScores        { return a.scores }
func (a *Assessment) Composite() float64                        { return a.composite }
func (a *Assessment) Recommendation() valueobject.Recommendation { return a.recommendation }
func (a *Assessment) Confidence() *float64                      { return a.confidence }
func (a *Assessment) VersionID() uuid.UUID                      { return a.versionID }
func (a *Assessment) VersionTag() string                        { return a.versionTag }
func (a *Assessment) AssessedAt() time.Time                     { return a.assessedAt }

// AlertSeverity reports the alert band the composite falls in, if any.
func (a *Assessment) AlertSeverity() (valueobject.AlertSeverity, bool) {
	return valueobject.AlertSeverityFromScore(a.composite)
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *Assessment) DomainEvents() []events.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
