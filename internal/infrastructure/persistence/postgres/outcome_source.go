package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// Compile-time interface check.
var _ port.OutcomeSource = (*OutcomeSource)(nil)

// OutcomeSource implements port.OutcomeSource over the contract_outcomes
// table, which holds one row per concluded engagement with the category
// scores the supplier carried at the time.
type OutcomeSource struct {
	pool *pgxpool.Pool
}

// NewOutcomeSource creates a new PostgreSQL-backed outcome source.
func NewOutcomeSource(pool *pgxpool.Pool) *OutcomeSource {
	return &OutcomeSource{pool: pool}
}

// FetchLabeled returns every concluded engagement on record. Rows whose
// outcome or score map cannot be parsed come back zero-valued in those
// fields; dataset assembly skips and counts them rather than guessing a
// label here.
func (s *OutcomeSource) FetchLabeled(ctx context.Context) ([]model.OutcomeRecord, error) {
	query := `
		SELECT supplier_id, contract_number, scores, outcome,
			contract_value, loss_amount, COALESCE(term_features, '{}'::jsonb), concluded_at
		FROM contract_outcomes
		ORDER BY concluded_at
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contract outcomes: %w", err)
	}
	defer rows.Close()

	var records []model.OutcomeRecord
	for rows.Next() {
		var (
			supplierID     uuid.UUID
			contractNumber string
			scoresRaw      map[string]float64
			outcomeStr     string
			contractValue  decimal.Decimal
			lossAmount     decimal.Decimal
			termFeatures   map[string]float64
			concludedAt    time.Time
		)

		err := rows.Scan(
			&supplierID, &contractNumber, &scoresRaw, &outcomeStr,
			&contractValue, &lossAmount, &termFeatures, &concludedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outcome record: %w", err)
		}

		rec := model.OutcomeRecord{
			SupplierID:     supplierID,
			ContractNumber: contractNumber,
			ContractValue:  contractValue,
			LossAmount:     lossAmount,
			ConcludedAt:    concludedAt,
		}
		if len(termFeatures) > 0 {
			rec.TermFeatures = termFeatures
		}
		if outcome, err := valueobject.OutcomeFromString(outcomeStr); err == nil {
			rec.Outcome = outcome
		}
		if scores, err := valueobject.CategoryScoresFromStrings(scoresRaw); err == nil {
			rec.Scores = scores
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}
