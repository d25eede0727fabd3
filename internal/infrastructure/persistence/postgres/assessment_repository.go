package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.AssessmentRepository = (*AssessmentRepository)(nil)

// AssessmentRepository implements port.AssessmentRepository using PostgreSQL.
// The assessments table is insert-only: scored assessments form the per-subject
// history and are never rewritten.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new PostgreSQL-backed assessment repository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Save inserts a scored assessment.
func (r *AssessmentRepository) Save(ctx context.Context, assessment *model.Assessment) error {
	query := `
		INSERT INTO assessments (
			id, supplier_id, contract_id, scores, composite_score,
			recommendation, confidence, version_id, version_tag, assessed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		assessment.ID(),
		assessment.SupplierID(),
		nullableUUID(assessment.ContractID()),
		assessment.Scores().StringMap(),
		assessment.Composite(),
		assessment.Recommendation().String(),
		assessment.Confidence(),
		nullableUUID(assessment.VersionID()),
		assessment.VersionTag(),
		assessment.AssessedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// FindByID retrieves an assessment by its unique identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Assessment, error) {
	query := `
		SELECT id, supplier_id, contract_id, scores, composite_score,
			recommendation, confidence, version_id, version_tag, assessed_at
		FROM assessments
		WHERE id = $1
	`

	return r.scanAssessment(r.pool.QueryRow(ctx, query, id))
}

// FindBySupplier retrieves a supplier's assessments, newest first.
func (r *AssessmentRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, limit, offset int) ([]*model.Assessment, error) {
	query := `
		SELECT id, supplier_id, contract_id, scores, composite_score,
			recommendation, confidence, version_id, version_tag, assessed_at
		FROM assessments
		WHERE supplier_id = $1
		ORDER BY assessed_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer rows.Close()

	return r.collectAssessments(rows)
}

// FindBySupplierSince retrieves a supplier's assessments from the given
// instant onwards, oldest first. Trend analysis reads these as a time series.
func (r *AssessmentRepository) FindBySupplierSince(ctx context.Context, supplierID uuid.UUID, since time.Time) ([]*model.Assessment, error) {
	query := `
		SELECT id, supplier_id, contract_id, scores, composite_score,
			recommendation, confidence, version_id, version_tag, assessed_at
		FROM assessments
		WHERE supplier_id = $1 AND assessed_at >= $2
		ORDER BY assessed_at ASC
	`

	rows, err := r.pool.Query(ctx, query, supplierID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments since %s: %w", since, err)
	}
	defer rows.Close()

	return r.collectAssessments(rows)
}

func (r *AssessmentRepository) collectAssessments(rows pgx.Rows) ([]*model.Assessment, error) {
	var assessments []*model.Assessment
	for rows.Next() {
		assessment, err := r.scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}

	return assessments, rows.Err()
}

func (r *AssessmentRepository) scanAssessment(row pgx.Row) (*model.Assessment, error) {
	var (
		id                uuid.UUID
		supplierID        uuid.UUID
		contractID        *uuid.UUID
		scoresRaw         map[string]float64
		composite         float64
		recommendationStr string
		confidence        *float64
		versionID         *uuid.UUID
		versionTag        string
		assessedAt        time.Time
	)

	err := row.Scan(
		&id, &supplierID, &contractID, &scoresRaw, &composite,
		&recommendationStr, &confidence, &versionID, &versionTag, &assessedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, port.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to scan assessment: %w", err)
	}

	scores, err := valueobject.CategoryScoresFromStrings(scoresRaw)
	if err != nil {
		return nil, fmt.Errorf("failed to restore scores for assessment %s: %w", id, err)
	}

	recommendation, err := valueobject.RecommendationFromString(recommendationStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recommendation: %w", err)
	}

	return model.ReconstructAssessment(
		id, supplierID, derefUUID(contractID),
		scores, composite, recommendation, confidence,
		derefUUID(versionID), versionTag, assessedAt,
	), nil
}

// nullableUUID maps uuid.Nil to SQL NULL, keeping sentinel zero values out of
// foreign-key style columns.
func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func derefUUID(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
