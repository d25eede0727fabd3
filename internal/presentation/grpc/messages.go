package grpc

import (
	"time"

	"github.com/google/uuid"

	"github.com/FluentFlier/aegis/internal/application/dto"
)

// Proto-aligned request/response message types. Timestamps travel as RFC 3339
// strings and ids as canonical uuid strings.

// TrainModelRequest represents the proto TrainModelRequest message.
type TrainModelRequest struct {
	ModelFamily string `json:"model_family"`
	Description string `json:"description,omitempty"`
	MinSamples  int32  `json:"min_samples,omitempty"`
	AutoApprove *bool  `json:"auto_approve,omitempty"`
}

// TrainModelResponse represents the proto TrainModelResponse message.
type TrainModelResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// GetTrainingJobRequest represents the proto GetTrainingJobRequest message.
type GetTrainingJobRequest struct {
	JobID string `json:"job_id"`
}

// TrainingJobMsg represents the proto TrainingJob message.
type TrainingJobMsg struct {
	JobID       string `json:"job_id"`
	ModelFamily string `json:"model_family"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	VersionID   string `json:"version_id,omitempty"`
	SubmittedAt string `json:"submitted_at"`
	StartedAt   string `json:"started_at,omitempty"`
	FinishedAt  string `json:"finished_at,omitempty"`
}

// GetTrainingJobResponse represents the proto GetTrainingJobResponse message.
type GetTrainingJobResponse struct {
	Job *TrainingJobMsg `json:"job"`
}

// GetTrainingReadinessRequest represents the proto GetTrainingReadinessRequest message.
type GetTrainingReadinessRequest struct{}

// GetTrainingReadinessResponse represents the proto GetTrainingReadinessResponse message.
type GetTrainingReadinessResponse struct {
	Ready           bool             `json:"ready"`
	TotalRecords    int32            `json:"total_records"`
	UsableRows      int32            `json:"usable_rows"`
	SkippedRows     int32            `json:"skipped_rows"`
	MinimumRequired int32            `json:"minimum_required"`
	Outcomes        map[string]int32 `json:"outcomes,omitempty"`
	ContractValue   string           `json:"contract_value,omitempty"`
	LossAmount      string           `json:"loss_amount,omitempty"`
}

// WeightVersionMsg represents the proto WeightVersion message.
type WeightVersionMsg struct {
	ID          string             `json:"id,omitempty"`
	VersionTag  string             `json:"version_tag"`
	State       string             `json:"state,omitempty"`
	Weights     map[string]float64 `json:"weights"`
	ModelFamily string             `json:"model_family,omitempty"`
	SampleCount int32              `json:"sample_count,omitempty"`
	Accuracy    float64            `json:"accuracy,omitempty"`
	ROCAUC      float64            `json:"roc_auc,omitempty"`
	CVAUCMean   float64            `json:"cv_auc_mean,omitempty"`
	CVAUCStd    float64            `json:"cv_auc_std,omitempty"`
	ArtifactRef string             `json:"artifact_ref,omitempty"`
	Description string             `json:"description,omitempty"`
	ApprovedBy  string             `json:"approved_by,omitempty"`
	ApprovedAt  string             `json:"approved_at,omitempty"`
	CreatedAt   string             `json:"created_at,omitempty"`
	UpdatedAt   string             `json:"updated_at,omitempty"`
	Bootstrap   bool               `json:"bootstrap,omitempty"`
}

// ApproveVersionRequest represents the proto ApproveVersionRequest message.
type ApproveVersionRequest struct {
	VersionID  string `json:"version_id"`
	ApprovedBy string `json:"approved_by,omitempty"`
}

// ApproveVersionResponse represents the proto ApproveVersionResponse message.
type ApproveVersionResponse struct {
	Version         *WeightVersionMsg `json:"version"`
	AlreadyApproved bool              `json:"already_approved,omitempty"`
}

// ActivateVersionRequest represents the proto ActivateVersionRequest message.
type ActivateVersionRequest struct {
	VersionID string `json:"version_id"`
}

// ActivateVersionResponse represents the proto ActivateVersionResponse message.
type ActivateVersionResponse struct {
	Version           *WeightVersionMsg `json:"version"`
	PreviousVersionID string            `json:"previous_version_id,omitempty"`
}

// RollbackVersionRequest represents the proto RollbackVersionRequest message.
type RollbackVersionRequest struct {
	VersionID string `json:"version_id"`
}

// RollbackVersionResponse represents the proto RollbackVersionResponse message.
type RollbackVersionResponse struct {
	Version           *WeightVersionMsg `json:"version"`
	PreviousVersionID string            `json:"previous_version_id,omitempty"`
}

// GetActiveVersionRequest represents the proto GetActiveVersionRequest message.
type GetActiveVersionRequest struct{}

// GetActiveVersionResponse represents the proto GetActiveVersionResponse message.
type GetActiveVersionResponse struct {
	Version *WeightVersionMsg `json:"version"`
}

// ListVersionsRequest represents the proto ListVersionsRequest message.
type ListVersionsRequest struct {
	States []string `json:"states,omitempty"`
	Limit  int32    `json:"limit,omitempty"`
	Offset int32    `json:"offset,omitempty"`
}

// ListVersionsResponse represents the proto ListVersionsResponse message.
type ListVersionsResponse struct {
	Versions []*WeightVersionMsg `json:"versions"`
}

// CompareVersionsRequest represents the proto CompareVersionsRequest message.
type CompareVersionsRequest struct {
	VersionA string `json:"version_a"`
	VersionB string `json:"version_b"`
}

// WeightDeltaMsg represents the proto WeightDelta message.
type WeightDeltaMsg struct {
	Category  string  `json:"category"`
	WeightA   float64 `json:"weight_a"`
	WeightB   float64 `json:"weight_b"`
	Delta     float64 `json:"delta"`
	PctChange float64 `json:"pct_change"`
}

// CompareVersionsResponse represents the proto CompareVersionsResponse message.
type CompareVersionsResponse struct {
	VersionA      *WeightVersionMsg `json:"version_a"`
	VersionB      *WeightVersionMsg `json:"version_b"`
	WeightDeltas  []*WeightDeltaMsg `json:"weight_deltas"`
	AccuracyDelta float64           `json:"accuracy_delta"`
	AUCDelta      float64           `json:"auc_delta"`
}

// GetWeightEvolutionRequest represents the proto GetWeightEvolutionRequest message.
type GetWeightEvolutionRequest struct {
	Category string `json:"category,omitempty"`
}

// EvolutionPointMsg represents the proto EvolutionPoint message.
type EvolutionPointMsg struct {
	VersionID  string             `json:"version_id"`
	VersionTag string             `json:"version_tag"`
	State      string             `json:"state"`
	CreatedAt  string             `json:"created_at"`
	Accuracy   float64            `json:"accuracy,omitempty"`
	ROCAUC     float64            `json:"roc_auc,omitempty"`
	Weight     *float64           `json:"weight,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
}

// GetWeightEvolutionResponse represents the proto GetWeightEvolutionResponse message.
type GetWeightEvolutionResponse struct {
	Category string               `json:"category,omitempty"`
	Points   []*EvolutionPointMsg `json:"points"`
}

// ScoreRequest represents the proto ScoreRequest message.
type ScoreRequest struct {
	SupplierID string             `json:"supplier_id"`
	ContractID string             `json:"contract_id,omitempty"`
	Scores     map[string]float64 `json:"scores"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	Confidence *float64           `json:"confidence,omitempty"`
}

// AssessmentMsg represents the proto Assessment message.
type AssessmentMsg struct {
	ID             string             `json:"id"`
	SupplierID     string             `json:"supplier_id"`
	ContractID     string             `json:"contract_id,omitempty"`
	Scores         map[string]float64 `json:"scores,omitempty"`
	CompositeScore float64            `json:"composite_score"`
	Recommendation string             `json:"recommendation"`
	Confidence     *float64           `json:"confidence,omitempty"`
	AlertSeverity  string             `json:"alert_severity,omitempty"`
	VersionID      string             `json:"version_id,omitempty"`
	VersionTag     string             `json:"version_tag"`
	AssessedAt     string             `json:"assessed_at"`
}

// ScoreResponse represents the proto ScoreResponse message.
type ScoreResponse struct {
	Assessment    *AssessmentMsg     `json:"assessment"`
	Contributions map[string]float64 `json:"contributions,omitempty"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ListAssessmentsRequest represents the proto ListAssessmentsRequest message.
type ListAssessmentsRequest struct {
	SupplierID string `json:"supplier_id"`
	Limit      int32  `json:"limit,omitempty"`
	Offset     int32  `json:"offset,omitempty"`
}

// ListAssessmentsResponse represents the proto ListAssessmentsResponse message.
type ListAssessmentsResponse struct {
	Assessments []*AssessmentMsg `json:"assessments"`
}

// GetRiskTrendRequest represents the proto GetRiskTrendRequest message.
type GetRiskTrendRequest struct {
	SupplierID string `json:"supplier_id"`
	Days       int32  `json:"days,omitempty"`
}

// TrendPointMsg represents the proto TrendPoint message.
type TrendPointMsg struct {
	AssessmentID   string  `json:"assessment_id"`
	CompositeScore float64 `json:"composite_score"`
	Recommendation string  `json:"recommendation"`
	AssessedAt     string  `json:"assessed_at"`
}

// GetRiskTrendResponse represents the proto GetRiskTrendResponse message.
type GetRiskTrendResponse struct {
	SupplierID    string           `json:"supplier_id"`
	WindowDays    int32            `json:"window_days"`
	Direction     string           `json:"direction"`
	MeanComposite float64          `json:"mean_composite"`
	Points        []*TrendPointMsg `json:"points"`
}

// AnalyzeContractRequest represents the proto AnalyzeContractRequest message.
type AnalyzeContractRequest struct {
	Text        string `json:"text"`
	Perspective string `json:"perspective,omitempty"`
}

// IdentifiedTermMsg represents the proto IdentifiedTerm message.
type IdentifiedTermMsg struct {
	Name           string   `json:"name"`
	Group          string   `json:"group"`
	Risk           int32    `json:"risk"`
	Description    string   `json:"description,omitempty"`
	Rationale      string   `json:"rationale,omitempty"`
	MatchedPhrases []string `json:"matched_phrases,omitempty"`
}

// GroupAnalysisMsg represents the proto GroupAnalysis message.
type GroupAnalysisMsg struct {
	AverageRisk float64  `json:"average_risk"`
	TermCount   int32    `json:"term_count"`
	Terms       []string `json:"terms,omitempty"`
}

// AnalyzeContractResponse represents the proto AnalyzeContractResponse message.
type AnalyzeContractResponse struct {
	Perspective     string                       `json:"perspective"`
	OverallRisk     float64                      `json:"overall_risk"`
	Coverage        float64                      `json:"coverage"`
	IdentifiedTerms []*IdentifiedTermMsg         `json:"identified_terms"`
	HighRiskTerms   []*IdentifiedTermMsg         `json:"high_risk_terms,omitempty"`
	Groups          map[string]*GroupAnalysisMsg `json:"groups,omitempty"`
	Recommendations []string                     `json:"recommendations,omitempty"`
	Features        map[string]float64           `json:"features,omitempty"`
}

// --- DTO to wire conversions ---

func uuidString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func timeString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func timePtrString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timeString(*t)
}

func versionMsg(v dto.VersionResponse) *WeightVersionMsg {
	return &WeightVersionMsg{
		ID:          uuidString(v.ID),
		VersionTag:  v.VersionTag,
		State:       v.State,
		Weights:     v.Weights,
		ModelFamily: v.ModelFamily,
		SampleCount: int32(v.SampleCount),
		Accuracy:    v.Accuracy,
		ROCAUC:      v.ROCAUC,
		CVAUCMean:   v.CVAUCMean,
		CVAUCStd:    v.CVAUCStd,
		ArtifactRef: v.ArtifactRef,
		Description: v.Description,
		ApprovedBy:  v.ApprovedBy,
		ApprovedAt:  timePtrString(v.ApprovedAt),
		CreatedAt:   timeString(v.CreatedAt),
		UpdatedAt:   timeString(v.UpdatedAt),
		Bootstrap:   v.Bootstrap,
	}
}

func jobMsg(j dto.TrainingJobResponse) *TrainingJobMsg {
	return &TrainingJobMsg{
		JobID:       j.JobID.String(),
		ModelFamily: j.ModelFamily,
		Status:      j.Status,
		Error:       j.Error,
		VersionID:   uuidString(j.VersionID),
		SubmittedAt: timeString(j.SubmittedAt),
		StartedAt:   timePtrString(j.StartedAt),
		FinishedAt:  timePtrString(j.FinishedAt),
	}
}

func assessmentMsg(a dto.AssessmentResponse) *AssessmentMsg {
	return &AssessmentMsg{
		ID:             a.AssessmentID.String(),
		SupplierID:     a.SupplierID.String(),
		ContractID:     uuidString(a.ContractID),
		Scores:         a.Scores,
		CompositeScore: a.Composite,
		Recommendation: a.Recommendation,
		Confidence:     a.Confidence,
		AlertSeverity:  a.AlertSeverity,
		VersionID:      uuidString(a.VersionID),
		VersionTag:     a.VersionTag,
		AssessedAt:     timeString(a.AssessedAt),
	}
}

func scoredAssessmentMsg(s dto.ScoreResponse) *AssessmentMsg {
	return &AssessmentMsg{
		ID:             s.AssessmentID.String(),
		SupplierID:     s.SupplierID.String(),
		ContractID:     uuidString(s.ContractID),
		CompositeScore: s.Composite,
		Recommendation: s.Recommendation,
		AlertSeverity:  s.AlertSeverity,
		VersionID:      uuidString(s.VersionID),
		VersionTag:     s.VersionTag,
		AssessedAt:     timeString(s.AssessedAt),
	}
}

func identifiedTermMsgs(terms []dto.IdentifiedTermDTO) []*IdentifiedTermMsg {
	out := make([]*IdentifiedTermMsg, 0, len(terms))
	for _, t := range terms {
		out = append(out, &IdentifiedTermMsg{
			Name:           t.Name,
			Group:          t.Group,
			Risk:           int32(t.Risk),
			Description:    t.Description,
			Rationale:      t.Rationale,
			MatchedPhrases: t.MatchedPhrases,
		})
	}
	return out
}
