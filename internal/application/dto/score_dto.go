package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/domain/model"
)

// ScoreRequest is the input DTO for scoring a supplier. Scores must cover
// every category; Weights, when present, override the active version for
// this call only.
type ScoreRequest struct {
	Scores     map[string]float64 `json:"scores"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	Confidence *float64           `json:"confidence,omitempty"`
	SupplierID uuid.UUID          `json:"supplier_id"`
	ContractID uuid.UUID          `json:"contract_id"`
}

// ScoreResponse is the output DTO for a persisted assessment.
type ScoreResponse struct {
	AssessedAt     time.Time          `json:"assessed_at"`
	Contributions  map[string]float64 `json:"contributions"`
	AssessmentID   uuid.UUID          `json:"assessment_id"`
	SupplierID     uuid.UUID          `json:"supplier_id"`
	ContractID     uuid.UUID          `json:"contract_id"`
	VersionID      uuid.UUID          `json:"version_id"`
	VersionTag     string             `json:"version_tag"`
	Recommendation string             `json:"recommendation"`
	AlertSeverity  string             `json:"alert_severity,omitempty"`
	Composite      float64            `json:"composite"`
}

// ScoreResponseFromModel maps a scored assessment to the response DTO.
func ScoreResponseFromModel(a *model.Assessment, contributions map[string]float64) ScoreResponse {
	resp := ScoreResponse{
		AssessmentID:   a.ID(),
		SupplierID:     a.SupplierID(),
		ContractID:     a.ContractID(),
		Composite:      a.Composite(),
		Recommendation: a.Recommendation().String(),
		VersionID:      a.VersionID(),
		VersionTag:     a.VersionTag(),
		AssessedAt:     a.AssessedAt(),
		Contributions:  contributions,
	}
	if severity, ok := a.AlertSeverity(); ok {
		resp.AlertSeverity = severity.String()
	}
	return resp
}

// GetAssessmentRequest is the input DTO for reading one assessment.
type GetAssessmentRequest struct {
	AssessmentID uuid.UUID `json:"assessment_id"`
}

// ListAssessmentsRequest is the input DTO for browsing a supplier's
// assessment history.
type ListAssessmentsRequest struct {
	SupplierID uuid.UUID `json:"supplier_id"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}

// AssessmentResponse is the output DTO for assessment history reads.
type AssessmentResponse struct {
	AssessedAt     time.Time          `json:"assessed_at"`
	Scores         map[string]float64 `json:"scores"`
	Confidence     *float64           `json:"confidence,omitempty"`
	AssessmentID   uuid.UUID          `json:"assessment_id"`
	SupplierID     uuid.UUID          `json:"supplier_id"`
	ContractID     uuid.UUID          `json:"contract_id"`
	VersionID      uuid.UUID          `json:"version_id"`
	VersionTag     string             `json:"version_tag"`
	Recommendation string             `json:"recommendation"`
	AlertSeverity  string             `json:"alert_severity,omitempty"`
	Composite      float64            `json:"composite"`
}

// AssessmentFromModel maps a persisted assessment to the response DTO.
func AssessmentFromModel(a *model.Assessment) AssessmentResponse {
	resp := AssessmentResponse{
		AssessmentID:   a.ID(),
		SupplierID:     a.SupplierID(),
		ContractID:     a.ContractID(),
		Scores:         a.Scores().StringMap(),
		Composite:      a.Composite(),
		Recommendation: a.Recommendation().String(),
		Confidence:     a.Confidence(),
		VersionID:      a.VersionID(),
		VersionTag:     a.VersionTag(),
		AssessedAt:     a.AssessedAt(),
	}
	if severity, ok := a.AlertSeverity(); ok {
		resp.AlertSeverity = severity.String()
	}
	return resp
}

// ListAssessmentsResponse is the output DTO for a supplier's assessment
// history, newest first.
type ListAssessmentsResponse struct {
	Assessments []AssessmentResponse `json:"assessments"`
}

// RiskTrendRequest is the input DTO for a supplier's score history. Days 0
// falls back to the default window.
type RiskTrendRequest struct {
	SupplierID uuid.UUID `json:"supplier_id"`
	Days       int       `json:"days,omitempty"`
}

// TrendPoint is one assessment in a supplier's history, oldest first.
type TrendPoint struct {
	AssessedAt     time.Time `json:"assessed_at"`
	AssessmentID   uuid.UUID `json:"assessment_id"`
	Composite      float64   `json:"composite"`
	Recommendation string    `json:"recommendation"`
}

// RiskTrendResponse is the output DTO for a supplier's score history.
type RiskTrendResponse struct {
	Points        []TrendPoint `json:"points"`
	SupplierID    uuid.UUID    `json:"supplier_id"`
	WindowDays    int          `json:"window_days"`
	Direction     string       `json:"direction"`
	MeanComposite float64      `json:"mean_composite"`
}
