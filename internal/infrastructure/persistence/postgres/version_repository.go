package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
	pgpkg "github.com/FluentFlier/aegis/pkg/postgres"
)

// Compile-time interface check.
var _ port.VersionRepository = (*VersionRepository)(nil)

// VersionRepository implements port.VersionRepository using PostgreSQL. The
// weight_versions table is an append-only ledger: rows are inserted once and
// only the state and approval columns move afterwards. A partial unique index
// on state = 'ACTIVE' backs the at-most-one-active invariant at the storage
// layer.
type VersionRepository struct {
	pool *pgxpool.Pool
}

// NewVersionRepository creates a new PostgreSQL-backed version repository.
func NewVersionRepository(pool *pgxpool.Pool) *VersionRepository {
	return &VersionRepository{pool: pool}
}

// Save inserts a newly created version. Versions are never deleted and their
// weight and provenance columns are never rewritten.
func (r *VersionRepository) Save(ctx context.Context, version model.WeightVersion) error {
	query := `
		INSERT INTO weight_versions (
			id, version_tag, weights, state, model_family,
			trained_on_samples, model_accuracy, model_auc, cv_auc_mean, cv_auc_std,
			artifact_ref, description, approved_by, approved_at,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	prov := version.Provenance()
	_, err := r.pool.Exec(ctx, query,
		version.ID(),
		version.VersionTag(),
		version.Weights().StringMap(),
		version.State().String(),
		prov.ModelFamily.String(),
		prov.SampleCount,
		prov.Accuracy,
		prov.ROCAUC,
		prov.CVAUCMean,
		prov.CVAUCStd,
		prov.ArtifactRef,
		prov.Description,
		version.ApprovedBy(),
		version.ApprovedAt(),
		version.CreatedAt(),
		version.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save weight version: %w", err)
	}

	return nil
}

// UpdateState persists a lifecycle transition. Only the state and approval
// columns are touched; everything else is write-once.
func (r *VersionRepository) UpdateState(ctx context.Context, version model.WeightVersion) error {
	query := `
		UPDATE weight_versions
		SET state = $2, approved_by = $3, approved_at = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		version.ID(),
		version.State().String(),
		version.ApprovedBy(),
		version.ApprovedAt(),
		version.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to update version state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return port.ErrVersionNotFound
	}

	return nil
}

// FindByID retrieves a version by its unique identifier.
func (r *VersionRepository) FindByID(ctx context.Context, id uuid.UUID) (model.WeightVersion, error) {
	query := `
		SELECT id, version_tag, weights, state, model_family,
			trained_on_samples, model_accuracy, model_auc, cv_auc_mean, cv_auc_std,
			artifact_ref, description, approved_by, approved_at,
			created_at, updated_at
		FROM weight_versions
		WHERE id = $1
	`

	return r.scanVersion(r.pool.QueryRow(ctx, query, id))
}

// FindByTag retrieves a version by its human-readable tag.
func (r *VersionRepository) FindByTag(ctx context.Context, tag string) (model.WeightVersion, error) {
	query := `
		SELECT id, version_tag, weights, state, model_family,
			trained_on_samples, model_accuracy, model_auc, cv_auc_mean, cv_auc_std,
			artifact_ref, description, approved_by, approved_at,
			created_at, updated_at
		FROM weight_versions
		WHERE version_tag = $1
	`

	return r.scanVersion(r.pool.QueryRow(ctx, query, tag))
}

// FindActive retrieves the single active version, or ErrNoActiveVersion.
func (r *VersionRepository) FindActive(ctx context.Context) (model.WeightVersion, error) {
	query := `
		SELECT id, version_tag, weights, state, model_family,
			trained_on_samples, model_accuracy, model_auc, cv_auc_mean, cv_auc_std,
			artifact_ref, description, approved_by, approved_at,
			created_at, updated_at
		FROM weight_versions
		WHERE state = $1
	`

	version, err := r.scanVersion(r.pool.QueryRow(ctx, query, valueobject.VersionStateActive.String()))
	if err != nil {
		if errors.Is(err, port.ErrVersionNotFound) {
			return model.WeightVersion{}, port.ErrNoActiveVersion
		}
		return model.WeightVersion{}, err
	}

	return version, nil
}

// List returns versions matching the filter, newest first.
func (r *VersionRepository) List(ctx context.Context, filter port.VersionFilter) ([]model.WeightVersion, error) {
	query := `
		SELECT id, version_tag, weights, state, model_family,
			trained_on_samples, model_accuracy, model_auc, cv_auc_mean, cv_auc_std,
			artifact_ref, description, approved_by, approved_at,
			created_at, updated_at
		FROM weight_versions
	`

	args := make([]any, 0, 3)
	if len(filter.States) > 0 {
		states := make([]string, 0, len(filter.States))
		for _, s := range filter.States {
			states = append(states, s.String())
		}
		args = append(args, states)
		query += fmt.Sprintf("WHERE state = ANY($%d)\n", len(args))
	}
	query += "ORDER BY created_at DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weight versions: %w", err)
	}
	defer rows.Close()

	var versions []model.WeightVersion
	for rows.Next() {
		version, err := r.scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}

	return versions, rows.Err()
}

// ActivateExclusive promotes the target version and demotes the previously
// active one in a single transaction. The target row is locked first so
// concurrent activations serialize; the partial unique index catches anything
// that still slips through.
func (r *VersionRepository) ActivateExclusive(ctx context.Context, id uuid.UUID, now time.Time) (uuid.UUID, error) {
	demoted := uuid.Nil

	err := pgpkg.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Lock the target row and verify it may go active.
		var stateStr string
		err := tx.QueryRow(ctx,
			`SELECT state FROM weight_versions WHERE id = $1 FOR UPDATE`, id,
		).Scan(&stateStr)
		if err != nil {
			if err == pgx.ErrNoRows {
				return port.ErrVersionNotFound
			}
			return fmt.Errorf("failed to lock version %s: %w", id, err)
		}

		state, err := valueobject.VersionStateFromString(stateStr)
		if err != nil {
			return fmt.Errorf("failed to parse version state: %w", err)
		}
		if state.Equal(valueobject.VersionStateActive) {
			return model.ErrAlreadyActive
		}
		if !state.IsActivatable() {
			return model.ErrNotApproved
		}

		// Demote whichever version is currently active.
		err = tx.QueryRow(ctx,
			`UPDATE weight_versions SET state = $1, updated_at = $2 WHERE state = $3 RETURNING id`,
			valueobject.VersionStateInactive.String(), now, valueobject.VersionStateActive.String(),
		).Scan(&demoted)
		if err != nil && err != pgx.ErrNoRows {
			return fmt.Errorf("failed to demote active version: %w", err)
		}

		// Promote the target.
		tag, err := tx.Exec(ctx,
			`UPDATE weight_versions SET state = $1, updated_at = $2 WHERE id = $3`,
			valueobject.VersionStateActive.String(), now, id,
		)
		if err != nil {
			return fmt.Errorf("failed to promote version %s: %w", id, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("failed to promote version %s: no row updated", id)
		}

		return nil
	})
	if err != nil {
		if pgpkg.IsUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("concurrent activation of version %s: %w", id, err)
		}
		return uuid.Nil, err
	}

	return demoted, nil
}

func (r *VersionRepository) scanVersion(row pgx.Row) (model.WeightVersion, error) {
	var (
		id          uuid.UUID
		versionTag  string
		weightsRaw  map[string]float64
		stateStr    string
		familyStr   string
		sampleCount int
		accuracy    float64
		rocAUC      float64
		cvAUCMean   float64
		cvAUCStd    float64
		artifactRef string
		description string
		approvedBy  string
		approvedAt  *time.Time
		createdAt   time.Time
		updatedAt   time.Time
	)

	err := row.Scan(
		&id, &versionTag, &weightsRaw, &stateStr, &familyStr,
		&sampleCount, &accuracy, &rocAUC, &cvAUCMean, &cvAUCStd,
		&artifactRef, &description, &approvedBy, &approvedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.WeightVersion{}, port.ErrVersionNotFound
		}
		return model.WeightVersion{}, fmt.Errorf("failed to scan weight version: %w", err)
	}

	weights, err := valueobject.WeightsFromStrings(weightsRaw)
	if err != nil {
		return model.WeightVersion{}, fmt.Errorf("failed to restore weights for version %s: %w", id, err)
	}

	state, err := valueobject.VersionStateFromString(stateStr)
	if err != nil {
		return model.WeightVersion{}, fmt.Errorf("failed to parse version state: %w", err)
	}

	// Manually entered versions carry no model family.
	var family valueobject.ModelFamily
	if familyStr != "" {
		family, err = valueobject.ModelFamilyFromString(familyStr)
		if err != nil {
			return model.WeightVersion{}, fmt.Errorf("failed to parse model family: %w", err)
		}
	}

	prov := model.Provenance{
		ModelFamily: family,
		SampleCount: sampleCount,
		Accuracy:    accuracy,
		ROCAUC:      rocAUC,
		CVAUCMean:   cvAUCMean,
		CVAUCStd:    cvAUCStd,
		ArtifactRef: artifactRef,
		Description: description,
	}

	return model.ReconstructWeightVersion(
		id, versionTag, weights, state, prov,
		approvedBy, approvedAt, createdAt, updatedAt,
	), nil
}
