package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/pkg/events"
)

const (
	AggregateTypeWeightVersion = "WeightVersion"
	AggregateTypeAssessment    = "Assessment"
	AggregateTypeTrainingJob   = "TrainingJob"
)

const (
	// EventTypeVersionCreated is emitted when a new weight version is persisted in DRAFT.
	EventTypeVersionCreated = "risk.version.created"

	// EventTypeVersionApproved is emitted when a draft version is approved for activation.
	EventTypeVersionApproved = "risk.version.approved"

	// EventTypeVersionActivated is emitted when a version becomes the single active one.
	EventTypeVersionActivated = "risk.version.activated"

	// EventTypeModelTrained is emitted when a training run produces a candidate version.
	EventTypeModelTrained = "risk.model.trained"

	// EventTypeAssessmentCompleted is emitted when a supplier assessment finishes.
	EventTypeAssessmentCompleted = "risk.assessment.completed"

	// EventTypeHighRiskDetected is emitted when a composite score crosses an alert band.
	EventTypeHighRiskDetected = "risk.high_risk.detected"
)

// VersionCreated is published when a new weight version enters the registry.
type VersionCreated struct {
	events.BaseEvent
	VersionID   uuid.UUID `json:"version_id"`
	VersionTag  string    `json:"version_tag"`
	ModelFamily string    `json:"model_family"`
	State       string    `json:"state"`
}

// NewVersionCreated creates a VersionCreated domain event.
func NewVersionCreated(versionID uuid.UUID, versionTag, modelFamily, state string) VersionCreated {
	payload, _ := json.Marshal(struct {
		VersionID   uuid.UUID `json:"version_id"`
		VersionTag  string    `json:"version_tag"`
		ModelFamily string    `json:"model_family"`
		State       string    `json:"state"`
	}{versionID, versionTag, modelFamily, state})

	return VersionCreated{
		BaseEvent:   events.NewBaseEvent(EventTypeVersionCreated, versionID, AggregateTypeWeightVersion, payload),
		VersionID:   versionID,
		VersionTag:  versionTag,
		ModelFamily: modelFamily,
		State:       state,
	}
}

// VersionApproved is published when a version is cleared for activation.
type VersionApproved struct {
	events.BaseEvent
	VersionID  uuid.UUID `json:"version_id"`
	VersionTag string    `json:"version_tag"`
	ApprovedBy string    `json:"approved_by"`
}

// NewVersionApproved creates a VersionApproved domain event.
func NewVersionApproved(versionID uuid.UUID, versionTag, approvedBy string) VersionApproved {
	payload, _ := json.Marshal(struct {
		VersionID  uuid.UUID `json:"version_id"`
		VersionTag string    `json:"version_tag"`
		ApprovedBy string    `json:"approved_by"`
	}{versionID, versionTag, approvedBy})

	return VersionApproved{
		BaseEvent:  events.NewBaseEvent(EventTypeVersionApproved, versionID, AggregateTypeWeightVersion, payload),
		VersionID:  versionID,
		VersionTag: versionTag,
		ApprovedBy: approvedBy,
	}
}

// VersionActivated is published when a version becomes active. PreviousVersionID
// is uuid.Nil when no version was active before.
type VersionActivated struct {
	events.BaseEvent
	VersionID         uuid.UUID `json:"version_id"`
	VersionTag        string    `json:"version_tag"`
	PreviousVersionID uuid.UUID `json:"previous_version_id"`
}

// NewVersionActivated creates a VersionActivated domain event.
func NewVersionActivated(versionID uuid.UUID, versionTag string, previousVersionID uuid.UUID) VersionActivated {
	payload, _ := json.Marshal(struct {
		VersionID         uuid.UUID `json:"version_id"`
		VersionTag        string    `json:"version_tag"`
		PreviousVersionID uuid.UUID `json:"previous_version_id"`
	}{versionID, versionTag, previousVersionID})

	return VersionActivated{
		BaseEvent:         events.NewBaseEvent(EventTypeVersionActivated, versionID, AggregateTypeWeightVersion, payload),
		VersionID:         versionID,
		VersionTag:        versionTag,
		PreviousVersionID: previousVersionID,
	}
}

// ModelTrained is published when a training run completes and its candidate
// version has been stored.
type ModelTrained struct {
	events.BaseEvent
	JobID       uuid.UUID `json:"job_id"`
	VersionID   uuid.UUID `json:"version_id"`
	ModelFamily string    `json:"model_family"`
	Accuracy    float64   `json:"accuracy"`
	ROCAUC      float64   `json:"roc_auc"`
	SampleCount int       `json:"sample_count"`
}

// NewModelTrained creates a ModelTrained domain event.
func NewModelTrained(jobID, versionID uuid.UUID, modelFamily string, accuracy, rocAUC float64, sampleCount int) ModelTrained {
	payload, _ := json.Marshal(struct {
		JobID       uuid.UUID `json:"job_id"`
		VersionID   uuid.UUID `json:"version_id"`
		ModelFamily string    `json:"model_family"`
		Accuracy    float64   `json:"accuracy"`
		ROCAUC      float64   `json:"roc_auc"`
		SampleCount int       `json:"sample_count"`
	}{jobID, versionID, modelFamily, accuracy, rocAUC, sampleCount})

	return ModelTrained{
		BaseEvent:   events.NewBaseEvent(EventTypeModelTrained, jobID, AggregateTypeTrainingJob, payload),
		JobID:       jobID,
		VersionID:   versionID,
		ModelFamily: modelFamily,
		Accuracy:    accuracy,
		ROCAUC:      rocAUC,
		SampleCount: sampleCount,
	}
}

// AssessmentCompleted is published when a supplier contract assessment has been
// scored and persisted.
type AssessmentCompleted struct {
	events.BaseEvent
	AssessmentID   uuid.UUID `json:"assessment_id"`
	SupplierID     uuid.UUID `json:"supplier_id"`
	ContractID     uuid.UUID `json:"contract_id"`
	CompositeScore float64   `json:"composite_score"`
	Recommendation string    `json:"recommendation"`
	VersionID      uuid.UUID `json:"version_id"`
	AssessedAt     time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted creates an AssessmentCompleted domain event.
func NewAssessmentCompleted(
	assessmentID, supplierID, contractID uuid.UUID,
	compositeScore float64,
	recommendation string,
	versionID uuid.UUID,
	assessedAt time.Time,
) AssessmentCompleted {
	payload, _ := json.Marshal(struct {
		AssessmentID   uuid.UUID `json:"assessment_id"`
		SupplierID     uuid.UUID `json:"supplier_id"`
		ContractID     uuid.UUID `json:"contract_id"`
		CompositeScore float64   `json:"composite_score"`
		Recommendation string    `json:"recommendation"`
		VersionID      uuid.UUID `json:"version_id"`
		AssessedAt     time.Time `json:"assessed_at"`
	}{assessmentID, supplierID, contractID, compositeScore, recommendation, versionID, assessedAt})

	return AssessmentCompleted{
		BaseEvent:      events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, AggregateTypeAssessment, payload),
		AssessmentID:   assessmentID,
		SupplierID:     supplierID,
		ContractID:     contractID,
		CompositeScore: compositeScore,
		Recommendation: recommendation,
		VersionID:      versionID,
		AssessedAt:     assessedAt,
	}
}

// HighRiskDetected is published when a composite score reaches the warning or
// critical alert band.
type HighRiskDetected struct {
	events.BaseEvent
	AssessmentID   uuid.UUID `json:"assessment_id"`
	SupplierID     uuid.UUID `json:"supplier_id"`
	ContractID     uuid.UUID `json:"contract_id"`
	CompositeScore float64   `json:"composite_score"`
	Severity       string    `json:"severity"`
	DetectedAt     time.Time `json:"detected_at"`
}

// NewHighRiskDetected creates a HighRiskDetected domain event.
func NewHighRiskDetected(
	assessmentID, supplierID, contractID uuid.UUID,
	compositeScore float64,
	severity string,
	detectedAt time.Time,
) HighRiskDetected {
	payload, _ := json.Marshal(struct {
		AssessmentID   uuid.UUID `json:"assessment_id"`
		SupplierID     uuid.UUID `json:"supplier_id"`
		ContractID     uuid.UUID `json:"contract_id"`
		CompositeScore float64   `json:"composite_score"`
		Severity       string    `json:"severity"`
		DetectedAt     time.Time `json:"detected_at"`
	}{assessmentID, supplierID, contractID, compositeScore, severity, detectedAt})

	return HighRiskDetected{
		BaseEvent:      events.NewBaseEvent(EventTypeHighRiskDetected, assessmentID, AggregateTypeAssessment, payload),
		AssessmentID:   assessmentID,
		SupplierID:     supplierID,
		ContractID:     contractID,
		CompositeScore: compositeScore,
		Severity:       severity,
		DetectedAt:     detectedAt,
	}
}
