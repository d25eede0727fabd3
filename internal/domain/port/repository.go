package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

var (
	// ErrVersionNotFound is returned when no weight version matches the lookup.
	ErrVersionNotFound = errors.New("weight version not found")

	// ErrNoActiveVersion is returned when the registry holds no active version.
	// Callers fall back to the documented equal-weights bootstrap.
	ErrNoActiveVersion = errors.New("no active weight version")

	// ErrAssessmentNotFound is returned when no assessment matches the lookup.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrJobNotFound is returned when no training job matches the lookup.
	ErrJobNotFound = errors.New("training job not found")
)

// VersionFilter narrows List queries over the version ledger.
type VersionFilter struct {
	// States restricts results to the given lifecycle states; empty means all.
	States []valueobject.VersionState
	Limit  int
	Offset int
}

// VersionRepository defines the persistence port for the append-only weight
// version ledger.
type VersionRepository interface {
	// Save persists a newly created version. Versions are never deleted.
	Save(ctx context.Context, version model.WeightVersion) error

	// UpdateState persists a state transition (and approval metadata); the
	// weight vector and provenance columns are write-once.
	UpdateState(ctx context.Context, version model.WeightVersion) error

	// FindByID retrieves a version by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (model.WeightVersion, error)

	// FindByTag retrieves a version by its human-readable tag.
	FindByTag(ctx context.Context, tag string) (model.WeightVersion, error)

	// FindActive retrieves the single active version, or ErrNoActiveVersion.
	FindActive(ctx context.Context) (model.WeightVersion, error)

	// List returns versions matching the filter, newest first.
	List(ctx context.Context, filter VersionFilter) ([]model.WeightVersion, error)

	// ActivateExclusive promotes the target version to ACTIVE and demotes the
	// previously active one in a single transaction, so at most one version is
	// active at any instant. It returns the demoted version's ID, or uuid.Nil
	// when none was active.
	ActivateExclusive(ctx context.Context, id uuid.UUID, now time.Time) (uuid.UUID, error)
}

// AssessmentRepository defines the persistence port for the append-only
// assessment history.
type AssessmentRepository interface {
	// Save persists a scored assessment. Assessments are immutable once saved.
	Save(ctx context.Context, assessment *model.Assessment) error

	// FindByID retrieves an assessment by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error)

	// FindBySupplier retrieves a supplier's assessments, newest first.
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*model.Assessment, error)

	// FindBySupplierSince retrieves a supplier's assessments from the given
	// instant onwards, oldest first, for trend analysis.
	FindBySupplierSince(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*model.Assessment, error)
}

// TrainingJobRepository defines the persistence port for training job records.
type TrainingJobRepository interface {
	// Save persists a newly submitted job.
	Save(ctx context.Context, job *model.TrainingJob) error

	// Update persists a job state transition.
	Update(ctx context.Context, job *model.TrainingJob) error

	// FindByID retrieves a job by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.TrainingJob, error)
}
