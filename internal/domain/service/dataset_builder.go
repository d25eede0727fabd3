package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/FluentFlier/aegis/internal/domain/model"
	"github.com/FluentFlier/aegis/internal/domain/port"
	"github.com/FluentFlier/aegis/internal/ml"
)

// ErrInsufficientData is returned when fewer usable outcome rows exist than
// the configured training minimum.
var ErrInsufficientData = errors.New("insufficient training data")

// DatasetSummary describes one dataset assembly run. It is valid even when
// Build fails with ErrInsufficientData, which is what the training-readiness
// endpoint reports from.
type DatasetSummary struct {
	TotalRecords  int
	UsableRows    int
	SkippedRows   int
	GoodOutcomes  int
	BadOutcomes   int
	ByOutcome     map[string]int
	ContractValue decimal.Decimal
	LossAmount    decimal.Decimal

	// TermFeatures names the contract-term columns appended after the
	// category scores, in matrix order. Empty when the matrix is scores only.
	TermFeatures []string
}

// DatasetBuilder turns concluded contract engagements into a training
// dataset: one feature row of category scores per engagement, labeled by how
// the contract ended.
type DatasetBuilder struct {
	source     port.OutcomeSource
	minSamples int
	logger     *slog.Logger
}

func NewDatasetBuilder(source port.OutcomeSource, minSamples int, logger *slog.Logger) *DatasetBuilder {
	return &DatasetBuilder{
		source:     source,
		minSamples: minSamples,
		logger:     logger,
	}
}

// MinSamples returns the configured row minimum.
func (b *DatasetBuilder) MinSamples() int { return b.minSamples }

// Build fetches the labeled outcomes and assembles the feature matrix.
// Records missing scores or a recognized outcome are skipped and counted,
// never guessed at. Contract-term features widen the matrix only when every
// usable row carries them; a column missing from any row is left out rather
// than imputed. Fewer usable rows than the minimum fails with
// ErrInsufficientData and an empty dataset; the summary still describes what
// was found. A minSamples of zero or less falls back to the configured
// default.
func (b *DatasetBuilder) Build(ctx context.Context, minSamples int) (ml.Dataset, DatasetSummary, error) {
	if minSamples <= 0 {
		minSamples = b.minSamples
	}
	records, err := b.source.FetchLabeled(ctx)
	if err != nil {
		return ml.Dataset{}, DatasetSummary{}, fmt.Errorf("fetching outcome records: %w", err)
	}

	summary := DatasetSummary{
		TotalRecords:  len(records),
		ByOutcome:     make(map[string]int),
		ContractValue: decimal.Zero,
		LossAmount:    decimal.Zero,
	}

	usable := make([]model.OutcomeRecord, 0, len(records))
	y := make([]int, 0, len(records))
	for _, rec := range records {
		if rec.Scores.IsZero() || rec.Outcome.IsZero() {
			summary.SkippedRows++
			continue
		}

		label := rec.Outcome.Label()
		usable = append(usable, rec)
		y = append(y, label)

		summary.UsableRows++
		summary.ByOutcome[rec.Outcome.String()]++
		if label == 1 {
			summary.BadOutcomes++
		} else {
			summary.GoodOutcomes++
		}
		summary.ContractValue = summary.ContractValue.Add(rec.ContractValue)
		summary.LossAmount = summary.LossAmount.Add(rec.LossAmount)
	}

	if summary.SkippedRows > 0 {
		b.logger.Debug("skipped outcome records without scores or outcome",
			"skipped", summary.SkippedRows,
			"total", summary.TotalRecords)
	}

	if summary.UsableRows < minSamples {
		return ml.Dataset{}, summary, fmt.Errorf("%w: %d usable rows, need at least %d",
			ErrInsufficientData, summary.UsableRows, minSamples)
	}

	summary.TermFeatures = b.commonTermFeatures(usable)

	x := make([][]float64, len(usable))
	for i, rec := range usable {
		row := rec.Scores.Vector()
		for _, name := range summary.TermFeatures {
			row = append(row, rec.TermFeatures[name])
		}
		x[i] = row
	}

	ds, err := ml.NewDataset(x, y)
	if err != nil {
		return ml.Dataset{}, summary, fmt.Errorf("assembling dataset: %w", err)
	}
	return ds, summary, nil
}

// commonTermFeatures returns the sorted term-feature names present on every
// usable record. One record without a feature excludes that column for the
// whole run.
func (b *DatasetBuilder) commonTermFeatures(usable []model.OutcomeRecord) []string {
	if len(usable) == 0 || len(usable[0].TermFeatures) == 0 {
		return nil
	}

	common := make([]string, 0, len(usable[0].TermFeatures))
	for name := range usable[0].TermFeatures {
		common = append(common, name)
	}
	for _, rec := range usable[1:] {
		if len(rec.TermFeatures) == 0 {
			return nil
		}
		kept := common[:0]
		for _, name := range common {
			if _, ok := rec.TermFeatures[name]; ok {
				kept = append(kept, name)
			}
		}
		common = kept
		if len(common) == 0 {
			return nil
		}
	}
	sort.Strings(common)

	b.logger.Debug("contract-term features included in training matrix",
		"features", len(common))
	return common
}
