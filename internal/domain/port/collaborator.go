package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/pkg/events"
)

// OutcomeSource supplies concluded contract engagements for training.
type OutcomeSource interface {
	// FetchLabeled returns every concluded engagement with its category scores
	// and terminal outcome.
	FetchLabeled(ctx context.Context) ([]model.OutcomeRecord, error)
}

// ArtifactStore persists opaque trained-model blobs. Artifact writes are
// best-effort: a failed write costs reproducibility, never a training run.
type ArtifactStore interface {
	// Put stores the blob under the given reference, overwriting any previous
	// content.
	Put(ctx context.Context, ref string, data []byte) error

	// Get retrieves the blob stored under the given reference.
	Get(ctx context.Context, ref string) ([]byte, error)
}

// RiskAlert is the notification emitted when a composite score crosses an
// alert band.
type RiskAlert struct {
	AssessmentID   uuid.UUID
	SupplierID     uuid.UUID
	ContractID     uuid.UUID
	CompositeScore float64
	Severity       valueobject.AlertSeverity
	Recommendation valueobject.Recommendation
	EmittedAt      time.Time
}

// AlertSink delivers risk alerts to downstream consumers. Delivery failures
// must not fail the assessment that raised the alert.
type AlertSink interface {
	// EmitRiskAlert sends one alert.
	EmitRiskAlert(ctx context.Context, alert RiskAlert) error
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, evts ...events.DomainEvent) error
}
