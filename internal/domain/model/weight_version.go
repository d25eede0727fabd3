package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/event"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	"github.com/FluentFlier/aegis/pkg/events"
)

// BootstrapVersionTag is recorded on assessments scored before any version has
// been activated, when the engine falls back to equal weights.
const BootstrapVersionTag = "bootstrap-equal-weights"

// ManualWeightsTag is recorded on assessments scored with caller-supplied
// weights instead of a registry version.
const ManualWeightsTag = "manual-override"

var (
	// ErrNotApproved is returned when activating a version that never passed approval.
	ErrNotApproved = errors.New("version is not approved for activation")

	// ErrAlreadyActive is returned when activating the currently active version.
	ErrAlreadyActive = errors.New("version is already active")
)

// ---------------------------------------------------------------------------
// WeightVersion aggregate root (weight registry)
// ---------------------------------------------------------------------------

// Provenance captures how a version's weights were produced. It is recorded at
// creation and never changes afterwards.
type Provenance struct {
	ModelFamily valueobject.ModelFamily
	SampleCount int
	Accuracy    float64
	ROCAUC      float64
	CVAUCMean   float64
	CVAUCStd    float64
	ArtifactRef string
	Description string
}

// WeightVersion is an immutable aggregate. Weights and provenance are fixed at
// creation; only the lifecycle state moves, and every transition returns a new
// copy.
type WeightVersion struct {
	id           uuid.UUID
	versionTag   string
	weights      valueobject.Weights
	state        valueobject.VersionState
	provenance   Provenance
	approvedBy   string
	approvedAt   *time.Time
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents []events.DomainEvent
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// NewWeightVersion creates a new version in DRAFT state, or directly in
// APPROVED when autoApprove is set. A freshly created version is never active.
func NewWeightVersion(
	weights valueobject.Weights,
	provenance Provenance,
	autoApprove bool,
	now time.Time,
) (WeightVersion, error) {
	if weights.IsZero() {
		return WeightVersion{}, errors.New("weights are required")
	}
	if provenance.SampleCount < 0 {
		return WeightVersion{}, errors.New("sample count cannot be negative")
	}

	id := uuid.New()
	state := valueobject.VersionStateDraft
	if autoApprove {
		state = valueobject.VersionStateApproved
	}

	v := WeightVersion{
		id:         id,
		versionTag: newVersionTag(provenance.ModelFamily, now),
		weights:    weights,
		state:      state,
		provenance: provenance,
		createdAt:  now,
		updatedAt:  now,
	}
	if autoApprove {
		v.approvedBy = "auto"
		approvedAt := now
		v.approvedAt = &approvedAt
	}

	v.domainEvents = append(v.domainEvents, event.NewVersionCreated(
		id, v.versionTag, provenance.ModelFamily.String(), state.String(),
	))
	return v, nil
}

// ReconstructWeightVersion rebuilds an aggregate from persistence without
// side-effects.
func ReconstructWeightVersion(
	id uuid.UUID,
	versionTag string,
	weights valueobject.Weights,
	state valueobject.VersionState,
	provenance Provenance,
	approvedBy string,
	approvedAt *time.Time,
	createdAt, updatedAt time.Time,
) WeightVersion {
	return WeightVersion{
		id:         id,
		versionTag: versionTag,
		weights:    weights,
		state:      state,
		provenance: provenance,
		approvedBy: approvedBy,
		approvedAt: approvedAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ---------------------------------------------------------------------------
// State transitions (each returns a new copy)
// ---------------------------------------------------------------------------

// Approve transitions DRAFT -> APPROVED and emits VersionApproved. Approving a
// version that already left DRAFT is a no-op; the second return value reports
// it so callers can surface the condition without failing.
func (v WeightVersion) Approve(approvedBy string, now time.Time) (WeightVersion, bool) {
	if !v.state.Equal(valueobject.VersionStateDraft) {
		return v, true
	}
	next := v
	next.state = valueobject.VersionStateApproved
	next.approvedBy = approvedBy
	approvedAt := now
	next.approvedAt = &approvedAt
	next.updatedAt = now
	next.domainEvents = copyEvents(v.domainEvents)
	next.domainEvents = append(next.domainEvents, event.NewVersionApproved(
		v.id, v.versionTag, approvedBy,
	))
	return next, false
}

// Activate transitions APPROVED or INACTIVE -> ACTIVE. Draft versions must be
// approved first; the currently active version cannot be re-activated.
func (v WeightVersion) Activate(now time.Time) (WeightVersion, error) {
	if v.state.Equal(valueobject.VersionStateActive) {
		return v, ErrAlreadyActive
	}
	if !v.state.IsActivatable() {
		return v, ErrNotApproved
	}
	next := v
	next.state = valueobject.VersionStateActive
	next.updatedAt = now
	next.domainEvents = copyEvents(v.domainEvents)
	return next, nil
}

// Deactivate transitions ACTIVE -> INACTIVE. It happens implicitly whenever
// another version is activated.
func (v WeightVersion) Deactivate(now time.Time) (WeightVersion, error) {
	if !v.state.Equal(valueobject.VersionStateActive) {
		return v, fmt.Errorf("%w: %s -> INACTIVE", valueobject.ErrInvalidStateTransition, v.state)
	}
	next := v
	next.state = valueobject.VersionStateInactive
	next.updatedAt = now
	next.domainEvents = copyEvents(v.domainEvents)
	return next, nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (v WeightVersion) ID() uuid.UUID                     { return v.id }
func (v WeightVersion) VersionTag() string                { return v.versionTag }
func (v WeightVersion) Weights() valueobject.Weights      { return v.weights }
func (v WeightVersion) State() valueobject.VersionState   { return v.state }
func (v WeightVersion) Provenance() Provenance            { return v.provenance }
func (v WeightVersion) ApprovedBy() string                { return v.approvedBy }
func (v WeightVersion) ApprovedAt() *time.Time            { return v.approvedAt }
func (v WeightVersion) CreatedAt() time.Time              { return v.createdAt }
func (v WeightVersion) UpdatedAt() time.Time              { return v.updatedAt }
func (v WeightVersion) DomainEvents() []events.DomainEvent { return v.domainEvents }

// IsActive reports whether this version currently drives scoring.
func (v WeightVersion) IsActive() bool {
	return v.state.Equal(valueobject.VersionStateActive)
}

// ClearEvents returns a copy with an empty event list (call after publishing).
func (v WeightVersion) ClearEvents() WeightVersion {
	next := v
	next.domainEvents = nil
	return next
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// newVersionTag builds the human-readable registry tag, e.g.
// v_ml_logistic_20250312_143055 for trained versions or
// v_manual_20250312_143055 for hand-entered weights.
func newVersionTag(family valueobject.ModelFamily, now time.Time) string {
	ts := now.UTC().Format("20060102_150405")
	if family.IsZero() {
		return fmt.Sprintf("v_manual_%s", ts)
	}
	return fmt.Sprintf("v_ml_%s_%s", family, ts)
}

func copyEvents(src []events.DomainEvent) []events.DomainEvent {
	if len(src) == 0 {
		return nil
	}
	dst := make([]events.DomainEvent, len(src))
	copy(dst, src)
	return dst
}
