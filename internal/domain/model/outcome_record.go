package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FluentFlier/aegis/internal/domain/valueobject"
)

// OutcomeRecord is one concluded contract engagement: the category scores the
// supplier carried at the time plus how the contract actually ended. Records
// are read-only inputs to dataset assembly.
type OutcomeRecord struct {
	SupplierID     uuid.UUID
	ContractNumber string
	Scores         valueobject.CategoryScores
	Outcome        valueobject.Outcome
	ContractValue  decimal.Decimal
	LossAmount     decimal.Decimal
	ConcludedAt    time.Time

	// TermFeatures holds numeric contract-term features captured when the
	// contract text was analyzed. Optional; nil when no analysis ran.
	TermFeatures map[string]float64
}
