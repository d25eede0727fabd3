package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/FluentFlier/aegis/internal/application/dto"
	"github.com/FluentFlier/aegis/internal/domain/port"
)

const (
	// defaultTrendWindowDays is the lookback window when the request does not
	// set one.
	defaultTrendWindowDays = 90

	// trendDirectionBand is the minimum composite movement between the first
	// and last assessment before the trend reads as a direction rather than
	// noise.
	trendDirectionBand = 5.0
)

// GetRiskTrend is the use case for reading how a supplier's composite score
// moved over a recent window.
type GetRiskTrend struct {
	assessmentRepo port.AssessmentRepository
}

// NewGetRiskTrend creates a new GetRiskTrend use case.
func NewGetRiskTrend(assessmentRepo port.AssessmentRepository) *GetRiskTrend {
	return &GetRiskTrend{assessmentRepo: assessmentRepo}
}

// Execute returns the supplier's assessments in the window, oldest first,
// with the mean composite and the overall direction.
func (uc *GetRiskTrend) Execute(ctx context.Context, req dto.RiskTrendRequest) (dto.RiskTrendResponse, error) {
	days := req.Days
	if days <= 0 {
		days = defaultTrendWindowDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	assessments, err := uc.assessmentRepo.FindBySupplierSince(ctx, req.SupplierID, since)
	if err != nil {
		return dto.RiskTrendResponse{}, fmt.Errorf("failed to get assessments: %w", err)
	}

	points := make([]dto.TrendPoint, 0, len(assessments))
	sum := 0.0
	for _, a := range assessments {
		points = append(points, dto.TrendPoint{
			AssessmentID:   a.ID(),
			Composite:      a.Composite(),
			Recommendation: a.Recommendation().String(),
			AssessedAt:     a.AssessedAt(),
		})
		sum += a.Composite()
	}

	mean := 0.0
	if len(points) > 0 {
		mean = round2(sum / float64(len(points)))
	}

	return dto.RiskTrendResponse{
		SupplierID:    req.SupplierID,
		WindowDays:    days,
		Points:        points,
		MeanComposite: mean,
		Direction:     trendDirection(points),
	}, nil
}

// trendDirection reads the window's overall movement from its endpoints.
// Composite scores measure risk, so a falling score is an improving trend.
func trendDirection(points []dto.TrendPoint) string {
	if len(points) < 2 {
		return "stable"
	}
	delta := points[len(points)-1].Composite - points[0].Composite
	switch {
	case delta <= -trendDirectionBand:
		return "improving"
	case delta >= trendDirectionBand:
		return "deteriorating"
	default:
		return "stable"
	}
}
